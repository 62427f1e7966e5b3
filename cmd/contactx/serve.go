package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/contactx/config"
	cxhttp "github.com/fwojciec/contactx/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.New()
	}
	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	server, err := cxhttp.NewServer(cxhttp.Config{
		Extractor:         deps.Extractor,
		Preferences:       deps.Preferences,
		Clipboard:         deps.Clipboard,
		Renderer:          deps.Renderer,
		Logger:            deps.logger(),
		SessionTTL:        cfg.Server.SessionTTL,
		RateLimitRequests: cfg.Server.RateLimit.Requests,
		RateLimitWindow:   cfg.Server.RateLimit.Window,
		RedisClient:       deps.RedisClient,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		deps.logger().Info("stopping", "sessions", server.Sessions().Len())
		return nil
	})
	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
