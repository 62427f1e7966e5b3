package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/contactx/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNew_IsValid(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.BackendSQLite, cfg.Preferences.Backend)
	assert.Equal(t, config.DefaultModel, cfg.Gemini.Model)
	assert.True(t, cfg.Server.RateLimit.IsEnabled())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults from yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
  rate_limit:
    requests: 10
    window: 30s
gemini:
  model: gemini-2.5-flash
  temperature: 0.2
preferences:
  backend: redis
  redis_url: redis://localhost:6379/0
log:
  level: debug
  format: json
`)

		cfg, err := config.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, config.DefaultWriteTimeout, cfg.Server.WriteTimeout)
		assert.Equal(t, 10, cfg.Server.RateLimit.Requests)
		assert.Equal(t, 30*time.Second, cfg.Server.RateLimit.Window)
		assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
		assert.InDelta(t, 0.2, cfg.Gemini.Temperature, 1e-6)
		assert.Equal(t, config.BackendRedis, cfg.Preferences.Backend)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("rate limiting can be disabled", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadConfig(writeConfig(t, "server:\n  rate_limit:\n    requests: 0\n"))

		require.NoError(t, err)
		assert.False(t, cfg.Server.RateLimit.IsEnabled())
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadConfig(writeConfig(t, "preferences:\n  backend: redis\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis_url")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadConfig(writeConfig(t, "server: [unclosed"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CONTACTX_DB":   "/tmp/prefs.db",
		"CONTACTX_ADDR": ":7070",
		"LOG_LEVEL":     "warn",
	}
	cfg := config.New()

	cfg.ApplyEnv(func(key string) string { return env[key] })

	assert.Equal(t, "/tmp/prefs.db", cfg.Preferences.Path)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, config.BackendSQLite, cfg.Preferences.Backend)
}

func TestConfig_ApplyEnv_RedisURLSelectsRedis(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	cfg.ApplyEnv(func(key string) string {
		if key == "REDIS_URL" {
			return "redis://cache:6379/1"
		}
		return ""
	})

	assert.Equal(t, config.BackendRedis, cfg.Preferences.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Preferences.RedisURL)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Server.Addr = "" }, "addr"},
		{"negative timeout", func(c *config.Config) { c.Server.ReadTimeout = -time.Second }, "negative"},
		{"zero session ttl", func(c *config.Config) { c.Server.SessionTTL = 0 }, "session_ttl"},
		{"rate window missing", func(c *config.Config) { c.Server.RateLimit.Window = 0 }, "window"},
		{"empty model", func(c *config.Config) { c.Gemini.Model = "" }, "model"},
		{"temperature too high", func(c *config.Config) { c.Gemini.Temperature = 3 }, "temperature"},
		{"unknown backend", func(c *config.Config) { c.Preferences.Backend = "etcd" }, "backend"},
		{"sqlite without path", func(c *config.Config) { c.Preferences.Path = "" }, "path"},
		{"file without path", func(c *config.Config) {
			c.Preferences.Backend = config.BackendFile
			c.Preferences.Path = ""
		}, "path"},
		{"unknown level", func(c *config.Config) { c.Log.Level = "loud" }, "level"},
		{"unknown format", func(c *config.Config) { c.Log.Format = "xml" }, "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
