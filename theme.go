package contactx

import "context"

// Theme is the color scheme of a user interface.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses s as a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", Errorf(EINVALID, "unknown theme %q", s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// PreferenceService persists the user's theme preference in a single slot.
type PreferenceService interface {
	// Load returns the stored theme.
	// Returns ENOTFOUND if no theme has been saved yet.
	Load(ctx context.Context) (Theme, error)

	// Save stores the theme, replacing any previous value.
	Save(ctx context.Context, theme Theme) error
}
