package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/contactx"
)

// themeKey is the preference slot holding the UI theme.
const themeKey = "theme"

// Compile-time interface verification.
var _ contactx.PreferenceService = (*PreferenceService)(nil)

// PreferenceService implements contactx.PreferenceService using SQLite.
type PreferenceService struct {
	db *DB
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(db *DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Load retrieves the stored theme.
func (s *PreferenceService) Load(ctx context.Context) (contactx.Theme, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE key = ?
	`, themeKey).Scan(&value)

	if err == sql.ErrNoRows {
		return "", contactx.Errorf(contactx.ENOTFOUND, "theme preference not found")
	}
	if err != nil {
		return "", err
	}

	return contactx.ParseTheme(value)
}

// Save stores the theme, replacing any previous value.
func (s *PreferenceService) Save(ctx context.Context, theme contactx.Theme) error {
	if _, err := contactx.ParseTheme(string(theme)); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, themeKey, string(theme), time.Now().UTC().Format(time.RFC3339))

	return err
}
