// Package http serves the contactx web interface and JSON API using chi.
package http

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Config holds the dependencies and settings of a Server.
type Config struct {
	Extractor   contactx.Extractor
	Preferences contactx.PreferenceService
	Clipboard   contactx.Clipboard
	Renderer    contactx.Renderer
	Logger      *slog.Logger

	// SessionTTL is how long an idle session is kept.
	SessionTTL time.Duration

	// RateLimitRequests per RateLimitWindow per client IP on extraction
	// routes. Zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// RedisClient makes rate limit counters shared between instances.
	RedisClient *redis.Client

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server is the HTTP server for the web interface.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	router   *chi.Mux
	sessions *SessionStore
	tmpl     *template.Template
}

// NewServer creates a new Server with chi router and middleware stack.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 12 * time.Hour
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		tmpl:   tmpl,
	}
	s.sessions = NewSessionStore(s.newController, cfg.SessionTTL)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	limit := RateLimit(RateLimitConfig{
		RequestLimit:   cfg.RateLimitRequests,
		WindowDuration: cfg.RateLimitWindow,
		RedisClient:    cfg.RedisClient,
	})

	r.Get("/", s.handleIndex)
	r.Post("/clear", s.handleClear)
	r.Post("/theme", s.handleTheme)
	r.Post("/format", s.handleFormat)
	r.Post("/copy/{target}", s.handleCopy)
	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Post("/extract", s.handleExtract)
		r.Post("/api/extract", s.handleAPIExtract)
	})

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) newController(r *http.Request) *session.Controller {
	c := &session.Controller{
		Extractor:   s.cfg.Extractor,
		Preferences: s.cfg.Preferences,
		Clipboard:   s.cfg.Clipboard,
		Renderer:    s.cfg.Renderer,
		Logger:      s.logger,
	}
	c.InitTheme(r.Context(), ThemeHint(r))
	return c
}

// ThemeHint returns the color scheme the browser reports through the
// Sec-CH-Prefers-Color-Scheme client hint, or "" if it sent none.
func ThemeHint(r *http.Request) contactx.Theme {
	switch r.Header.Get("Sec-CH-Prefers-Color-Scheme") {
	case "dark", `"dark"`:
		return contactx.ThemeDark
	case "light", `"light"`:
		return contactx.ThemeLight
	}
	return ""
}
