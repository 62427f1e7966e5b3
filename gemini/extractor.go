// Package gemini implements contact extraction on top of the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fwojciec/contactx"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Ensure Extractor implements contactx.Extractor at compile time.
var _ contactx.Extractor = (*Extractor)(nil)

// KeyFunc returns the API key for a single request. It is called on every
// Extract so the key can come from the environment at call time.
type KeyFunc func() string

// Extractor implements contactx.Extractor using Google Gemini structured
// output. A client is constructed per call; there is no retry or caching.
type Extractor struct {
	key         KeyFunc
	model       string
	baseURL     string
	temperature float32
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithBaseURL overrides the Gemini API endpoint.
func WithBaseURL(url string) Option {
	return func(e *Extractor) {
		e.baseURL = url
	}
}

// WithTemperature sets the sampling temperature. Defaults to 0.
func WithTemperature(t float32) Option {
	return func(e *Extractor) {
		e.temperature = t
	}
}

// WithLogger sets the logger used to report undecodable responses.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor that authenticates with the key
// returned by key.
func NewExtractor(key KeyFunc, opts ...Option) *Extractor {
	e := &Extractor{
		key:    key,
		model:  DefaultModel,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract sends text to Gemini and decodes the structured response.
func (e *Extractor) Extract(ctx context.Context, text string) (*contactx.ExtractionResult, error) {
	var apiKey string
	if e.key != nil {
		apiKey = e.key()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: e.baseURL},
	})
	if err != nil {
		return nil, contactx.Errorf(contactx.EUNAUTHORIZED, "failed to create Gemini client: %s", err)
	}

	result, err := client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Role:  string(genai.RoleUser),
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(e.temperature),
	)
	if err != nil {
		return nil, classifyError(err)
	}
	if result == nil {
		return nil, contactx.Errorf(contactx.EINTERNAL, "gemini returned nil result")
	}

	raw := result.Text()
	parsed, err := ParseResult(raw)
	if err != nil {
		e.logger.Warn("undecodable extraction response", "bytes", len(raw), "err", err)
	}
	return parsed, nil
}

// systemInstruction describes the extraction task to the model.
const systemInstruction = `You extract contact information from email text such as headers (From, To, Cc, Reply-To) and signatures.
For every distinguishable person in the text, return their full name, email address, professional title and phone number.
If a field is missing, use an empty string. Only return contacts actually present in the text.
Normalize names to Title Case. Handle non-Latin scripts and diacritics correctly: keep accents and native characters, never strip them and never convert names to all capitals.`

// BuildConfig returns the GenerateContentConfig requesting JSON output that
// matches ResponseSchema.
func BuildConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
}

// ResponseSchema returns the schema of an extraction response: an object
// with a required contacts array whose items have four required strings.
func ResponseSchema() *genai.Schema {
	field := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"contacts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":  field("Full name of the person"),
						"email": field("Email address"),
						"title": field("Job title or role"),
						"phone": field("Phone number"),
					},
					Required:         []string{"name", "email", "title", "phone"},
					PropertyOrdering: []string{"name", "email", "title", "phone"},
				},
			},
		},
		Required: []string{"contacts"},
	}
}

// BuildUserPrompt wraps the pasted email text in the user prompt.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Extract all contact information from the following email text.\n\n")
	sb.WriteString("<email>\n")
	sb.WriteString(text)
	sb.WriteString("\n</email>")
	return sb.String()
}

// ParseResult decodes a model response. Anything that is not a JSON object
// matching the schema yields an empty result together with the decode
// error, which callers may log but should not surface.
func ParseResult(raw string) (*contactx.ExtractionResult, error) {
	var result contactx.ExtractionResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return &contactx.ExtractionResult{Contacts: []contactx.Contact{}}, err
	}
	if result.Contacts == nil {
		result.Contacts = []contactx.Contact{}
	}
	return &result, nil
}

// classifyError maps a GenerateContent failure to an application error
// carrying the service's message when there is one.
func classifyError(err error) error {
	if apiErr, ok := asAPIError(err); ok {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return contactx.Errorf(contactx.EUNAUTHORIZED, "%s", msg)
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
			return contactx.Errorf(contactx.EUNAUTHORIZED, "%s", msg)
		case apiErr.Code == http.StatusBadRequest:
			return contactx.Errorf(contactx.EINVALID, "%s", msg)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return contactx.Errorf(contactx.EUNAVAILABLE, "%s", msg)
		default:
			return contactx.Errorf(contactx.EINTERNAL, "%s", msg)
		}
	}
	return contactx.Errorf(contactx.EUNAVAILABLE, "gemini request failed: %v", err)
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}
