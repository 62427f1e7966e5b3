package contactx

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms rendered detail markup into Markdown.
	Convert(html string) (string, error)
}
