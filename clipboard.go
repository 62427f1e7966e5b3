package contactx

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	// Copy writes text, paired with an HTML representation when html is not
	// empty. Failures are not returned; the result reports whether anything
	// was written.
	Copy(text, html string) bool
}

// TextClipboard writes plain text to the system clipboard.
type TextClipboard interface {
	WriteText(text string) error
}

// RichClipboard writes plain text and HTML to the system clipboard as a
// single payload, so that rich targets paste the HTML and plain targets
// paste the text.
type RichClipboard interface {
	WriteRich(text, html string) error
}
