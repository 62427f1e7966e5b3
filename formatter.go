package contactx

import (
	"strconv"
	"strings"
)

// RecipientList formats contacts for the To/Cc field of an email client:
// "Name <email>; " for every contact. Returns an empty string for no contacts.
func RecipientList(contacts []Contact) string {
	if len(contacts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(contacts))
	for _, c := range contacts {
		parts = append(parts, c.Name+" <"+c.Email+">")
	}

	return strings.Join(parts, "; ") + "; "
}

// DetailLines formats one contact per line as "Name, Email, Title, Phone",
// omitting empty fields.
func DetailLines(contacts []Contact) string {
	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		lines = append(lines, joinNonEmpty(", ", c.Name, c.Email, c.Title, c.Phone))
	}
	return strings.Join(lines, "\n")
}

// DetailStyle selects how entries of a detail list are decorated.
type DetailStyle string

// Supported detail styles.
const (
	DetailSimple DetailStyle = "simple"
	DetailBullet DetailStyle = "bullet"
	DetailNumber DetailStyle = "number"
)

// DetailStyles lists the supported styles in display order.
var DetailStyles = []DetailStyle{DetailSimple, DetailBullet, DetailNumber}

// ParseDetailStyle parses s as a DetailStyle.
func ParseDetailStyle(s string) (DetailStyle, error) {
	for _, style := range DetailStyles {
		if string(style) == s {
			return style, nil
		}
	}
	return "", Errorf(EINVALID, "unknown detail style %q", s)
}

// DetailEntry is one contact of a detail list. Bold holds the name, which
// rich renderings emphasize; Rest holds the remaining non-empty fields.
type DetailEntry struct {
	Bold string
	Rest string
}

// Text returns the entry as plain text.
func (e DetailEntry) Text() string {
	return joinNonEmpty(" ", e.Bold, e.Rest)
}

// Detail is a labeled contact list that can be rendered as plain text or
// handed to a Renderer for markup.
type Detail struct {
	Style   DetailStyle
	Entries []DetailEntry
}

// BuildDetail builds a labeled detail list. Contacts with no fields still
// produce an (empty) entry so positions match the input.
func BuildDetail(contacts []Contact, style DetailStyle) *Detail {
	d := &Detail{Style: style, Entries: make([]DetailEntry, 0, len(contacts))}
	for _, c := range contacts {
		var name, title string
		if strings.TrimSpace(c.Name) != "" {
			name = c.Name
		}
		if strings.TrimSpace(c.Title) != "" {
			title = "(" + c.Title + ")"
		}
		d.Entries = append(d.Entries, DetailEntry{
			Bold: name,
			Rest: joinNonEmpty(" ", title, c.Email, c.Phone),
		})
	}
	return d
}

// Text renders the detail list as plain text. Entries are separated by a
// blank line; bullet and number styles prefix each entry with "• " or a
// 1-based index.
func (d *Detail) Text() string {
	parts := make([]string, 0, len(d.Entries))
	for i, e := range d.Entries {
		switch d.Style {
		case DetailBullet:
			parts = append(parts, "• "+e.Text())
		case DetailNumber:
			parts = append(parts, strconv.Itoa(i+1)+". "+e.Text())
		default:
			parts = append(parts, e.Text())
		}
	}
	return strings.Join(parts, "\n\n")
}

// Renderer renders a detail list as markup suitable for rich clipboard
// content. Implementations must escape contact data.
type Renderer interface {
	Render(d *Detail) (string, error)
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
