package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/clipboard"
	"github.com/fwojciec/contactx/config"
	cxfs "github.com/fwojciec/contactx/fs"
	"github.com/fwojciec/contactx/gemini"
	"github.com/fwojciec/contactx/html"
	"github.com/fwojciec/contactx/htmltomarkdown"
	cxredis "github.com/fwojciec/contactx/redis"
	cxslog "github.com/fwojciec/contactx/slog"
	"github.com/fwojciec/contactx/sqlite"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run(); a missing file means
	// defaults.
	ConfigPath string

	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string

	// Stdin is read by the extract command when no file is given.
	Stdin io.Reader

	// SQLite database used by the sqlite preference store.
	DB *sqlite.DB

	// Services for end-to-end testing. Wired from config when nil.
	Extractor   contactx.Extractor
	Preferences contactx.PreferenceService
	Clipboard   contactx.Clipboard

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: config.DefaultPath(),
		Getenv:     os.Getenv,
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("contactx"),
		kong.Description("Extract contact lists from pasted email text."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'contactx --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set CONTACTX_CONFIG to use a different config file\n")
		return err
	}

	// The terminal UI owns the screen; log lines would corrupt it.
	logOut := stderr
	if cmd == "tui" {
		logOut = io.Discard
	}
	logger, err := cxslog.NewLogger(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Config = cfg
	deps.Logger = logger
	deps.Renderer = html.NewRenderer()
	deps.Converter = htmltomarkdown.NewConverter()

	if m.Extractor == nil {
		getenv := m.Getenv
		m.Extractor = cxslog.NewLoggingExtractor(gemini.NewExtractor(
			func() string { return getenv("GEMINI_API_KEY") },
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithTemperature(cfg.Gemini.Temperature),
			gemini.WithBaseURL(cfg.Gemini.BaseURL),
			gemini.WithLogger(logger),
		), logger)
	}
	deps.Extractor = m.Extractor

	if m.Clipboard == nil {
		m.Clipboard = clipboard.NewWriter(clipboard.NewSystem(), clipboard.NewRich(), logger)
	}
	deps.Clipboard = m.Clipboard

	// The extract command never touches the theme preference.
	if cmd != "extract" {
		if m.Preferences == nil {
			prefs, err := m.openPreferences(ctx, cfg.Preferences)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Set CONTACTX_DB or REDIS_URL to choose where the theme is stored")
				return err
			}
			m.Preferences = cxslog.NewLoggingPreferenceService(prefs, logger)
		}
		deps.Preferences = m.Preferences
	}

	if cmd == "serve" && cfg.Preferences.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.Preferences.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client := goredis.NewClient(opts)
		m.closers = append(m.closers, client)
		deps.RedisClient = client
	}

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig() (*config.Config, error) {
	cfg := config.New()
	if m.ConfigPath != "" {
		loaded, err := config.LoadConfig(m.ConfigPath)
		switch {
		case err == nil:
			cfg = loaded
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (m *Main) openPreferences(ctx context.Context, cfg config.PreferencesConfig) (contactx.PreferenceService, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		prefs, err := cxredis.NewPreferenceServiceFromURL(cfg.RedisURL, cxredis.DefaultPrefix)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, prefs)
		if err := prefs.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return prefs, nil
	case config.BackendFile:
		return cxfs.NewPreferenceService(cfg.Path), nil
	default:
		m.DB = sqlite.NewDB(cfg.Path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", cfg.Path, err)
		}
		return sqlite.NewPreferenceService(m.DB), nil
	}
}
