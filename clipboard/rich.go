package clipboard

import (
	"context"
	"encoding/hex"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fwojciec/contactx"
)

// Ensure Rich implements the RichClipboard interface.
var _ contactx.RichClipboard = (*Rich)(nil)

// Runner executes name with args and returns combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Rich writes plain text and HTML together. Only macOS offers a
// command-line way to set both flavors in a single pasteboard write; on
// other platforms WriteRich reports EUNAVAILABLE so callers fall back to
// plain text.
type Rich struct {
	goos string
	run  Runner
}

// RichOption configures a Rich clipboard.
type RichOption func(*Rich)

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) RichOption {
	return func(r *Rich) {
		r.goos = goos
	}
}

// WithRunner overrides how commands are executed.
func WithRunner(run Runner) RichOption {
	return func(r *Rich) {
		r.run = run
	}
}

// NewRich returns a Rich clipboard for the current platform.
func NewRich(opts ...RichOption) *Rich {
	r := &Rich{
		goos: runtime.GOOS,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WriteRich writes both representations in one pasteboard update.
func (r *Rich) WriteRich(text, html string) error {
	if r.goos != "darwin" {
		return contactx.Errorf(contactx.EUNAVAILABLE, "rich clipboard not supported on %s", r.goos)
	}

	out, err := r.run(context.Background(), "osascript", "-e", AppleScript(text, html))
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("osascript failed: %w: %s", err, out)
		}
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// AppleScript returns a script that sets the pasteboard to a record holding
// both HTML and UTF-8 text flavors. Both payloads are hex encoded so no
// quoting of user data is needed.
func AppleScript(text, html string) string {
	return fmt.Sprintf("set the clipboard to {«class HTML»:«data HTML%s», «class utf8»:«data utf8%s»}",
		hex.EncodeToString([]byte(html)), hex.EncodeToString([]byte(text)))
}
