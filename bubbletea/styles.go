package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/contactx"
)

type palette struct {
	fg, muted, accent, err, ok, border lipgloss.Color
}

var palettes = map[contactx.Theme]palette{
	contactx.ThemeLight: {fg: "235", muted: "244", accent: "25", err: "160", ok: "28", border: "250"},
	contactx.ThemeDark:  {fg: "252", muted: "243", accent: "75", err: "203", ok: "114", border: "238"},
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
	ok      lipgloss.Style
	bold    lipgloss.Style
	border  lipgloss.Style
	cell    lipgloss.Style
	header  lipgloss.Style
}

func newStyles(theme contactx.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[contactx.ThemeLight]
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		heading: lipgloss.NewStyle().Bold(true).Foreground(p.fg).MarginTop(1),
		muted:   lipgloss.NewStyle().Foreground(p.muted),
		err:     lipgloss.NewStyle().Foreground(p.err),
		ok:      lipgloss.NewStyle().Foreground(p.ok),
		bold:    lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		border:  lipgloss.NewStyle().Foreground(p.border),
		cell:    lipgloss.NewStyle().Foreground(p.fg).Padding(0, 1),
		header:  lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
	}
}
