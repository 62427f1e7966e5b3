package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fwojciec/contactx"
	cxredis "github.com/fwojciec/contactx/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*cxredis.PreferenceService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := cxredis.NewPreferenceService(client, "test:")
	t.Cleanup(func() { svc.Close() })

	return svc, mr
}

func TestPreferenceService_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND before anything is saved", func(t *testing.T) {
		t.Parallel()

		svc, _ := setupTestRedis(t)

		_, err := svc.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, contactx.ENOTFOUND, contactx.ErrorCode(err))
	})

	t.Run("returns EINVALID for corrupted value", func(t *testing.T) {
		t.Parallel()

		svc, mr := setupTestRedis(t)
		require.NoError(t, mr.Set("test:theme", "purple"))

		_, err := svc.Load(context.Background())

		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
	})

	t.Run("returns error when redis is down", func(t *testing.T) {
		t.Parallel()

		svc, mr := setupTestRedis(t)
		mr.Close()

		_, err := svc.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, contactx.EINTERNAL, contactx.ErrorCode(err))
	})
}

func TestPreferenceService_Save(t *testing.T) {
	t.Parallel()

	t.Run("stores theme under prefixed key without TTL", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc, mr := setupTestRedis(t)

		require.NoError(t, svc.Save(ctx, contactx.ThemeDark))

		value, err := mr.Get("test:theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
		assert.Zero(t, mr.TTL("test:theme"))

		theme, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeDark, theme)
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		t.Parallel()

		svc, mr := setupTestRedis(t)

		err := svc.Save(context.Background(), contactx.Theme(""))

		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
		assert.False(t, mr.Exists("test:theme"))
	})
}

func TestNewPreferenceServiceFromURL(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	svc, err := cxredis.NewPreferenceServiceFromURL("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Ping(context.Background()))
	require.NoError(t, svc.Save(context.Background(), contactx.ThemeLight))
	assert.True(t, mr.Exists(cxredis.DefaultPrefix+"theme"))

	_, err = cxredis.NewPreferenceServiceFromURL("://bad", "")
	assert.Error(t, err)
}
