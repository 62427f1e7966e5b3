package clipboard

import (
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/contactx"
)

// Ensure System implements the TextClipboard interface.
var _ contactx.TextClipboard = (*System)(nil)

// System writes plain text to the OS clipboard.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// WriteText writes text to the system clipboard.
func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return contactx.Errorf(contactx.EUNAVAILABLE, "clipboard not supported on %s (install xclip, xsel or wl-clipboard)", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}
