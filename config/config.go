// Package config loads contactx settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v2"
)

const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultModel        = "gemini-3-flash-preview"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 120 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
	DefaultRateRequests = 30
	DefaultRateWindow   = time.Minute
	DefaultSessionTTL   = 12 * time.Hour
)

// Preference backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// Config is the top-level configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig configures the web front end.
type ServerConfig struct {
	Addr         string          `yaml:"addr,omitempty"`
	ReadTimeout  time.Duration   `yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration   `yaml:"write_timeout,omitempty"`
	IdleTimeout  time.Duration   `yaml:"idle_timeout,omitempty"`
	SessionTTL   time.Duration   `yaml:"session_ttl,omitempty"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig limits extraction requests per client IP. Requests of
// zero disables limiting.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window,omitempty"`
}

// IsEnabled returns true if rate limiting is enabled.
func (r *RateLimitConfig) IsEnabled() bool {
	return r.Requests > 0
}

// GeminiConfig configures the extraction model. The API key is never part
// of the configuration; it is read from GEMINI_API_KEY on every call.
type GeminiConfig struct {
	Model       string  `yaml:"model,omitempty"`
	Temperature float32 `yaml:"temperature"`
	BaseURL     string  `yaml:"base_url,omitempty"`
}

// PreferencesConfig selects where the theme preference is stored.
type PreferencesConfig struct {
	Backend  string `yaml:"backend,omitempty"`
	Path     string `yaml:"path,omitempty"`
	RedisURL string `yaml:"redis_url,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
			SessionTTL:   DefaultSessionTTL,
			RateLimit: RateLimitConfig{
				Requests: DefaultRateRequests,
				Window:   DefaultRateWindow,
			},
		},
		Gemini: GeminiConfig{
			Model: DefaultModel,
		},
		Preferences: PreferencesConfig{
			Backend: BackendSQLite,
			Path:    DefaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("CONTACTX_DB"); v != "" {
		c.Preferences.Path = v
	}
	if v := getenv("REDIS_URL"); v != "" {
		c.Preferences.RedisURL = v
		c.Preferences.Backend = BackendRedis
	}
	if v := getenv("CONTACTX_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server: addr cannot be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server: timeouts cannot be negative")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server: session_ttl must be positive")
	}
	if c.Server.RateLimit.Requests < 0 {
		return fmt.Errorf("server.rate_limit: requests cannot be negative")
	}
	if c.Server.RateLimit.IsEnabled() && c.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("server.rate_limit: window must be positive when requests is set")
	}

	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini: model cannot be empty")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini: temperature must be between 0 and 2")
	}

	switch c.Preferences.Backend {
	case BackendSQLite, BackendFile:
		if c.Preferences.Path == "" {
			return fmt.Errorf("preferences: path is required for the %s backend", c.Preferences.Backend)
		}
	case BackendRedis:
		if c.Preferences.RedisURL == "" {
			return fmt.Errorf("preferences: redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("preferences: unknown backend %q", c.Preferences.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

// DefaultDBPath returns ~/.contactx/contactx.db, creating the directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "contactx.db"
	}
	dir := filepath.Join(home, ".contactx")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "contactx.db")
}

// DefaultPath returns the config file location, honoring CONTACTX_CONFIG.
func DefaultPath() string {
	if path := os.Getenv("CONTACTX_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "contactx.yaml"
	}
	return filepath.Join(home, ".contactx", "config.yaml")
}
