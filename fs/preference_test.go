package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when file is missing", func(t *testing.T) {
		t.Parallel()

		svc := fs.NewPreferenceService(filepath.Join(t.TempDir(), "theme"))

		_, err := svc.Load(context.Background())

		assert.Equal(t, contactx.ENOTFOUND, contactx.ErrorCode(err))
	})

	t.Run("rejects corrupted content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "theme")
		require.NoError(t, os.WriteFile(path, []byte("purple"), 0644))

		_, err := fs.NewPreferenceService(path).Load(context.Background())

		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
	})
}

func TestPreferenceService_Save(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories and round-trips", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "theme")
		svc := fs.NewPreferenceService(path)

		require.NoError(t, svc.Save(context.Background(), contactx.ThemeDark))
		theme, err := svc.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeDark, theme)
	})

	t.Run("overwrites previous value without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		svc := fs.NewPreferenceService(filepath.Join(dir, "theme"))

		require.NoError(t, svc.Save(context.Background(), contactx.ThemeDark))
		require.NoError(t, svc.Save(context.Background(), contactx.ThemeLight))

		theme, err := fs.NewPreferenceService(filepath.Join(dir, "theme")).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeLight, theme)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rejects invalid theme", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "theme")

		err := fs.NewPreferenceService(path).Save(context.Background(), contactx.Theme("purple"))

		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}
