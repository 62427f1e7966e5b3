package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND before anything is saved", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(openTestDB(t))

		_, err := svc.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, contactx.ENOTFOUND, contactx.ErrorCode(err))
	})

	t.Run("returns saved theme", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewPreferenceService(openTestDB(t))
		require.NoError(t, svc.Save(ctx, contactx.ThemeDark))

		theme, err := svc.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeDark, theme)
	})
}

func TestPreferenceService_Save(t *testing.T) {
	t.Parallel()

	t.Run("overwrites previous value", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openTestDB(t)
		svc := sqlite.NewPreferenceService(db)

		require.NoError(t, svc.Save(ctx, contactx.ThemeDark))
		require.NoError(t, svc.Save(ctx, contactx.ThemeLight))

		theme, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeLight, theme)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM preferences").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(openTestDB(t))

		err := svc.Save(context.Background(), contactx.Theme("neon"))

		require.Error(t, err)
		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
	})

	t.Run("persists across reopen", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := t.TempDir() + "/prefs.db"

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewPreferenceService(db).Save(ctx, contactx.ThemeDark))
		require.NoError(t, db.Close())

		reopened := sqlite.NewDB(path)
		require.NoError(t, reopened.Open())
		defer reopened.Close()

		theme, err := sqlite.NewPreferenceService(reopened).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeDark, theme)
	})
}
