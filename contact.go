package contactx

import "context"

// Contact is a single person extracted from email text. Empty fields mean
// the value was not present in the source text.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Title string `json:"title"`
	Phone string `json:"phone"`
}

// ExtractionResult is the ordered list of contacts returned by an Extractor.
// Order is whatever the extraction service returned.
type ExtractionResult struct {
	Contacts []Contact `json:"contacts"`
}

// Extractor extracts contacts from free-form text.
type Extractor interface {
	// Extract sends text to the extraction service and returns the contacts
	// found in it. A response that cannot be decoded yields an empty result
	// rather than an error. Returns EUNAVAILABLE, EUNAUTHORIZED or EINVALID
	// when the service call itself fails.
	Extract(ctx context.Context, text string) (*ExtractionResult, error)
}
