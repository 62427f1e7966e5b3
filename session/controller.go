// Package session holds the per-user application state shared by the web
// and terminal front ends: pasted input, the extraction lifecycle, the
// current contact list, the selected detail style and the theme.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/contactx"
)

// CopiedWindow is how long a copy target reports itself as copied.
const CopiedWindow = 2 * time.Second

// Messages shown when an extraction attempt does not produce contacts.
const (
	NoContactsMessage = "No contacts could be extracted from the provided text."
	FailureMessage    = "An error occurred while extracting contacts. Please check your API key and network connection."
)

// State is the extraction lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Target identifies a copyable output.
type Target string

// Copy targets. The table view has no copy action.
const (
	TargetRecipients Target = "recipients"
	TargetDetails    Target = "details"
)

// ParseTarget parses s as a copy Target.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetRecipients, TargetDetails:
		return Target(s), nil
	}
	return "", contactx.Errorf(contactx.EINVALID, "unknown copy target %q", s)
}

// Attempt is a started extraction. Its result is applied only if no Clear
// or newer attempt happened in the meantime.
type Attempt struct {
	Text  string
	epoch uint64
}

// Controller owns the state of one session. It is safe for concurrent use.
type Controller struct {
	Extractor   contactx.Extractor
	Preferences contactx.PreferenceService
	Clipboard   contactx.Clipboard
	Renderer    contactx.Renderer
	Logger      *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	input    string
	loading  bool
	contacts []contactx.Contact
	errMsg   string
	errCode  string
	style    contactx.DetailStyle
	theme    contactx.Theme
	epoch    uint64
	copiedAt map[Target]time.Time
}

// SetInput replaces the pasted text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Loading reports whether an extraction is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// CanExtract reports whether an extraction may start.
func (c *Controller) CanExtract() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canExtract()
}

func (c *Controller) canExtract() bool {
	return !c.loading && strings.TrimSpace(c.input) != ""
}

// Start moves the session into the loading state. It returns false, and
// changes nothing, if the input is blank or an extraction is in flight.
func (c *Controller) Start() (Attempt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canExtract() {
		return Attempt{}, false
	}

	c.epoch++
	c.loading = true
	c.errMsg = ""
	c.errCode = ""
	return Attempt{Text: strings.TrimSpace(c.input), epoch: c.epoch}, true
}

// Run calls the extractor for a started attempt and applies the outcome.
func (c *Controller) Run(ctx context.Context, a Attempt) bool {
	res, err := c.Extractor.Extract(ctx, a.Text)
	return c.Complete(a, res, err)
}

// Extract starts an attempt and runs it to completion. It returns false if
// the attempt could not start.
func (c *Controller) Extract(ctx context.Context) bool {
	a, ok := c.Start()
	if !ok {
		return false
	}
	c.Run(ctx, a)
	return true
}

// Complete applies the result of an attempt. Results of attempts that were
// superseded by Clear are discarded and Complete returns false.
func (c *Controller) Complete(a Attempt, res *contactx.ExtractionResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a.epoch != c.epoch || !c.loading {
		c.logger().Debug("discarding stale extraction result", "attempt", a.epoch, "current", c.epoch)
		return false
	}
	c.loading = false

	switch {
	case err != nil:
		c.logger().Error("extraction failed", "code", contactx.ErrorCode(err), "err", err)
		c.contacts = nil
		c.errMsg = failureMessage(err)
		c.errCode = contactx.ErrorCode(err)
	case res == nil || len(res.Contacts) == 0:
		c.contacts = nil
		c.errMsg = NoContactsMessage
		c.errCode = contactx.ENOTFOUND
	default:
		c.contacts = append([]contactx.Contact(nil), res.Contacts...)
		c.errMsg = ""
		c.errCode = ""
	}
	return true
}

func failureMessage(err error) string {
	if contactx.ErrorCode(err) == contactx.EINTERNAL {
		return FailureMessage
	}
	msg := strings.TrimRight(contactx.ErrorMessage(err), ". ")
	if msg == "" {
		return FailureMessage
	}
	return "Extraction failed: " + msg + ". Please check your API key and network connection."
}

// Clear resets input, contacts and error together. An extraction still in
// flight keeps running but its result is dropped.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.input = ""
	c.loading = false
	c.contacts = nil
	c.errMsg = ""
	c.errCode = ""
}

// SelectStyle sets the detail list style.
func (c *Controller) SelectStyle(style contactx.DetailStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = style
}

// InitTheme resolves the theme at startup: the stored preference, else
// hint, else light. Nothing is written.
func (c *Controller) InitTheme(ctx context.Context, hint contactx.Theme) contactx.Theme {
	theme := contactx.ThemeLight
	if _, err := contactx.ParseTheme(string(hint)); err == nil {
		theme = hint
	}

	if c.Preferences != nil {
		stored, err := c.Preferences.Load(ctx)
		switch {
		case err == nil:
			theme = stored
		case contactx.ErrorCode(err) != contactx.ENOTFOUND:
			c.logger().Warn("failed to load theme preference", "err", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	return theme
}

// ToggleTheme flips the theme and persists it. The in-memory theme changes
// even if saving fails.
func (c *Controller) ToggleTheme(ctx context.Context) (contactx.Theme, error) {
	c.mu.Lock()
	c.theme = c.currentTheme().Toggle()
	theme := c.theme
	c.mu.Unlock()

	if c.Preferences == nil {
		return theme, nil
	}
	if err := c.Preferences.Save(ctx, theme); err != nil {
		c.logger().Warn("failed to save theme preference", "theme", theme, "err", err)
		return theme, err
	}
	return theme, nil
}

// Theme returns the current theme.
func (c *Controller) Theme() contactx.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTheme()
}

func (c *Controller) currentTheme() contactx.Theme {
	if c.theme == "" {
		return contactx.ThemeLight
	}
	return c.theme
}

// Copy writes the output for target to the clipboard. Details are copied
// with their markup so rich targets keep the bold names. It returns false
// if there is nothing to copy or the clipboard write failed.
func (c *Controller) Copy(target Target) bool {
	c.mu.Lock()
	contacts := c.contacts
	style := c.currentStyle()
	c.mu.Unlock()

	if len(contacts) == 0 || c.Clipboard == nil {
		return false
	}

	var text, markup string
	switch target {
	case TargetRecipients:
		text = contactx.RecipientList(contacts)
	case TargetDetails:
		d := contactx.BuildDetail(contacts, style)
		text = d.Text()
		markup = c.render(d)
	default:
		return false
	}

	if !c.Clipboard.Copy(text, markup) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.copiedAt == nil {
		c.copiedAt = make(map[Target]time.Time)
	}
	c.copiedAt[target] = c.now()
	return true
}

// Copied reports whether target was copied within the last CopiedWindow.
func (c *Controller) Copied(target Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied(target)
}

func (c *Controller) copied(target Target) bool {
	at, ok := c.copiedAt[target]
	return ok && c.now().Sub(at) < CopiedWindow
}

// View is a consistent snapshot of the session with every output format
// already computed.
type View struct {
	State      State
	Input      string
	Loading    bool
	CanExtract bool
	Error      string
	// ErrorCode is the application error code behind Error: ENOTFOUND for
	// an empty result, otherwise the extractor's code.
	ErrorCode string
	Contacts  []contactx.Contact
	Style     contactx.DetailStyle
	Theme     contactx.Theme

	Recipients  string
	Details     string
	DetailsHTML string
	DetailLines string

	RecipientsCopied bool
	DetailsCopied    bool
}

// Snapshot returns the current View.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:            c.state(),
		Input:            c.input,
		Loading:          c.loading,
		CanExtract:       c.canExtract(),
		Error:            c.errMsg,
		ErrorCode:        c.errCode,
		Contacts:         append([]contactx.Contact(nil), c.contacts...),
		Style:            c.currentStyle(),
		Theme:            c.currentTheme(),
		RecipientsCopied: c.copied(TargetRecipients),
		DetailsCopied:    c.copied(TargetDetails),
	}
	if len(c.contacts) > 0 {
		d := contactx.BuildDetail(c.contacts, v.Style)
		v.Recipients = contactx.RecipientList(c.contacts)
		v.Details = d.Text()
		v.DetailsHTML = c.render(d)
		v.DetailLines = contactx.DetailLines(c.contacts)
	}
	return v
}

func (c *Controller) state() State {
	switch {
	case c.loading:
		return StateLoading
	case c.errMsg != "":
		return StateError
	case len(c.contacts) > 0:
		return StateSuccess
	default:
		return StateIdle
	}
}

func (c *Controller) currentStyle() contactx.DetailStyle {
	if c.style == "" {
		return contactx.DetailSimple
	}
	return c.style
}

func (c *Controller) render(d *contactx.Detail) string {
	if c.Renderer == nil {
		return ""
	}
	markup, err := c.Renderer.Render(d)
	if err != nil {
		c.logger().Warn("failed to render detail markup", "err", err)
		return ""
	}
	return markup
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
