package mock

import "github.com/fwojciec/contactx"

var (
	_ contactx.Clipboard     = (*Clipboard)(nil)
	_ contactx.TextClipboard = (*TextClipboard)(nil)
	_ contactx.RichClipboard = (*RichClipboard)(nil)
)

// Clipboard is a mock implementation of contactx.Clipboard.
type Clipboard struct {
	CopyFn func(text, html string) bool
}

func (c *Clipboard) Copy(text, html string) bool {
	return c.CopyFn(text, html)
}

// TextClipboard is a mock implementation of contactx.TextClipboard.
type TextClipboard struct {
	WriteTextFn func(text string) error
}

func (c *TextClipboard) WriteText(text string) error {
	return c.WriteTextFn(text)
}

// RichClipboard is a mock implementation of contactx.RichClipboard.
type RichClipboard struct {
	WriteRichFn func(text, html string) error
}

func (c *RichClipboard) WriteRich(text, html string) error {
	return c.WriteRichFn(text, html)
}
