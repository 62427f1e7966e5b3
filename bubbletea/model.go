// Package bubbletea implements the terminal front end on top of
// session.Controller using Bubble Tea, Bubbles and Lip Gloss.
package bubbletea

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 8
	// Title, status and help lines plus spacing around the input.
	chromeHeight = 6
)

type extractedMsg struct{ applied bool }

type copiedExpiredMsg struct{}

type focus int

const (
	focusInput focus = iota
	focusResults
)

// Model is the Bubble Tea model of the terminal UI.
type Model struct {
	ctx     context.Context
	ctrl    *session.Controller
	input   textarea.Model
	spinner spinner.Model
	results viewport.Model
	help    help.Model
	styles  styles
	focus   focus
	status  string
}

// New returns a Model driving ctrl. The controller's theme should already
// be initialized.
func New(ctx context.Context, ctrl *session.Controller) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste email text (headers, signatures)..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		input:   ta,
		spinner: sp,
		results: viewport.New(defaultWidth, defaultHeight-inputHeight-chromeHeight),
		help:    help.New(),
	}
	m.input.SetValue(ctrl.Snapshot().Input)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width)
		m.results.Width = msg.Width
		m.results.Height = max(msg.Height-inputHeight-chromeHeight, 1)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Extract):
			return m.startExtract()
		case key.Matches(msg, keys.Clear):
			m.ctrl.Clear()
			m.input.Reset()
			m.status = ""
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Style):
			m.ctrl.SelectStyle(nextStyle(m.ctrl.Snapshot().Style))
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Theme):
			m.status = ""
			if _, err := m.ctrl.ToggleTheme(m.ctx); err != nil {
				m.status = "Theme changed but could not be saved: " + contactx.ErrorMessage(err)
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.CopyRecipients):
			return m.copy(session.TargetRecipients)
		case key.Matches(msg, keys.CopyDetails):
			return m.copy(session.TargetDetails)
		case key.Matches(msg, keys.Focus):
			if m.focus == focusInput {
				m.focus = focusResults
				m.input.Blur()
				return m, nil
			}
			m.focus = focusInput
			return m, m.input.Focus()
		}

	case extractedMsg:
		m.refresh()
		return m, nil

	case copiedExpiredMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetInput(m.input.Value())
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) startExtract() (tea.Model, tea.Cmd) {
	a, ok := m.ctrl.Start()
	if !ok {
		return m, nil
	}
	m.status = ""
	m.refresh()

	ctrl, ctx := m.ctrl, m.ctx
	run := func() tea.Msg {
		return extractedMsg{applied: ctrl.Run(ctx, a)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) copy(target session.Target) (tea.Model, tea.Cmd) {
	if len(m.ctrl.Snapshot().Contacts) == 0 {
		return m, nil
	}
	if !m.ctrl.Copy(target) {
		m.status = "Copy failed."
		return m, nil
	}
	m.status = ""
	m.refresh()
	return m, tea.Tick(session.CopiedWindow, func(time.Time) tea.Msg {
		return copiedExpiredMsg{}
	})
}

func (m *Model) refresh() {
	v := m.ctrl.Snapshot()
	m.styles = newStyles(v.Theme)
	m.results.SetContent(m.renderResults(v))
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.ctrl.Snapshot()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.title.Render("Email Contact Extractor"))
	b.WriteString(s.muted.Render("  " + string(v.Theme) + " theme"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case v.Loading:
		b.WriteString(m.spinner.View() + " Extracting contacts...")
	case v.Error != "":
		b.WriteString(s.err.Render(v.Error))
	case m.status != "":
		b.WriteString(s.muted.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.results.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) renderResults(v session.View) string {
	if len(v.Contacts) == 0 {
		return ""
	}
	s := m.styles

	var b strings.Builder
	b.WriteString(s.heading.Render("Recipient list") + m.copiedLabel(v.RecipientsCopied))
	b.WriteString("\n")
	b.WriteString(v.Recipients)
	b.WriteString("\n")

	b.WriteString(s.heading.Render("Contact details ("+string(v.Style)+")") + m.copiedLabel(v.DetailsCopied))
	b.WriteString("\n")
	d := contactx.BuildDetail(v.Contacts, v.Style)
	entries := make([]string, 0, len(d.Entries))
	for i, e := range d.Entries {
		var line string
		switch d.Style {
		case contactx.DetailBullet:
			line = "• "
		case contactx.DetailNumber:
			line = strconv.Itoa(i+1) + ". "
		}
		if e.Bold != "" {
			line += s.bold.Render(e.Bold)
			if e.Rest != "" {
				line += " "
			}
		}
		entries = append(entries, line+e.Rest)
	}
	b.WriteString(strings.Join(entries, "\n\n"))
	b.WriteString("\n")

	b.WriteString(s.heading.Render("Table"))
	b.WriteString("\n")
	b.WriteString(m.renderTable(v.Contacts))
	return b.String()
}

func (m Model) renderTable(contacts []contactx.Contact) string {
	s := m.styles
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{dash(c.Name), dash(c.Email), dash(c.Title), dash(c.Phone)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		Headers("Name", "Email", "Title", "Phone").
		Rows(rows...).
		String()
}

func (m Model) copiedLabel(copied bool) string {
	if !copied {
		return ""
	}
	return "  " + m.styles.ok.Render("Copied!")
}

func nextStyle(current contactx.DetailStyle) contactx.DetailStyle {
	for i, style := range contactx.DetailStyles {
		if style == current {
			return contactx.DetailStyles[(i+1)%len(contactx.DetailStyles)]
		}
	}
	return contactx.DetailSimple
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// ThemeHint reports the terminal background as a theme.
func ThemeHint() contactx.Theme {
	if lipgloss.HasDarkBackground() {
		return contactx.ThemeDark
	}
	return contactx.ThemeLight
}
