// Package fs provides a file-based store for the theme preference.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/contactx"
)

// Ensure PreferenceService implements contactx.PreferenceService at compile time.
var _ contactx.PreferenceService = (*PreferenceService)(nil)

// PreferenceService keeps the theme in a single small file.
type PreferenceService struct {
	path string
}

// NewPreferenceService creates a PreferenceService backed by the file at path.
func NewPreferenceService(path string) *PreferenceService {
	return &PreferenceService{path: path}
}

// Load returns the stored theme, or ENOTFOUND if the file does not exist.
func (s *PreferenceService) Load(ctx context.Context) (contactx.Theme, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", contactx.Errorf(contactx.ENOTFOUND, "theme preference not found")
	}
	if err != nil {
		return "", err
	}
	return contactx.ParseTheme(strings.TrimSpace(string(data)))
}

// Save writes the theme, replacing the file atomically.
func (s *PreferenceService) Save(ctx context.Context, theme contactx.Theme) error {
	if _, err := contactx.ParseTheme(string(theme)); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".theme-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(string(theme) + "\n"); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
