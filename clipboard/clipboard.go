// Package clipboard provides clipboard operations backed by
// github.com/atotto/clipboard for plain text and platform commands for
// rich (HTML) content.
package clipboard

import (
	"log/slog"

	"github.com/fwojciec/contactx"
)

// Ensure Writer implements the Clipboard interface.
var _ contactx.Clipboard = (*Writer)(nil)

// Writer copies content with a rich-first, plain-fallback policy. Failures
// are logged and never returned to the caller.
type Writer struct {
	text   contactx.TextClipboard
	rich   contactx.RichClipboard
	logger *slog.Logger
}

// NewWriter returns a Writer. rich may be nil when the platform has no
// multi-representation clipboard.
func NewWriter(text contactx.TextClipboard, rich contactx.RichClipboard, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{text: text, rich: rich, logger: logger}
}

// Copy writes text and html as one payload when html is set and a rich
// clipboard is available, otherwise (or when that fails) text only.
func (w *Writer) Copy(text, html string) bool {
	if html != "" && w.rich != nil {
		err := w.rich.WriteRich(text, html)
		if err == nil {
			return true
		}
		w.logger.Warn("rich copy failed, falling back to plain text", "err", err)
	}

	if err := w.text.WriteText(text); err != nil {
		w.logger.Error("copy failed", "bytes", len(text), "err", err)
		return false
	}
	return true
}
