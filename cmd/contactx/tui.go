package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/contactx/bubbletea"
	"github.com/fwojciec/contactx/session"
)

// Run executes the tui command.
func (c *TUICmd) Run(deps *Dependencies) error {
	ctrl := &session.Controller{
		Extractor:   deps.Extractor,
		Preferences: deps.Preferences,
		Clipboard:   deps.Clipboard,
		Renderer:    deps.Renderer,
		Logger:      deps.logger(),
	}
	ctrl.InitTheme(deps.Ctx, bubbletea.ThemeHint())

	p := tea.NewProgram(bubbletea.New(deps.Ctx, ctrl),
		tea.WithAltScreen(),
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
	)
	_, err := p.Run()
	return err
}
