package main

import (
	"fmt"

	"github.com/fwojciec/contactx"
)

// Run executes the theme command.
func (c *ThemeCmd) Run(deps *Dependencies) error {
	switch c.Value {
	case "", "show":
		theme, err := deps.Preferences.Load(deps.Ctx)
		if contactx.ErrorCode(err) == contactx.ENOTFOUND {
			fmt.Fprintf(deps.Stdout, "%s (not set)\n", contactx.ThemeLight)
			return nil
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, theme)
		return nil

	case "toggle":
		theme, err := deps.Preferences.Load(deps.Ctx)
		if contactx.ErrorCode(err) == contactx.ENOTFOUND {
			theme = contactx.ThemeLight
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
			return err
		}
		return c.save(deps, theme.Toggle())

	default:
		theme, err := contactx.ParseTheme(c.Value)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
			return err
		}
		return c.save(deps, theme)
	}
}

func (c *ThemeCmd) save(deps *Dependencies, theme contactx.Theme) error {
	if err := deps.Preferences.Save(deps.Ctx, theme); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, theme)
	return nil
}
