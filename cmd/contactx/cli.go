package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/config"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Config      *config.Config
	Logger      *slog.Logger
	Extractor   contactx.Extractor
	Preferences contactx.PreferenceService
	Clipboard   contactx.Clipboard
	Renderer    contactx.Renderer
	Converter   contactx.Converter
	RedisClient *redis.Client
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the web interface"`
	TUI     TUICmd     `cmd:"" name:"tui" help:"Run the terminal interface"`
	Extract ExtractCmd `cmd:"" help:"Extract contacts from a file or stdin"`
	Theme   ThemeCmd   `cmd:"" help:"Show or change the stored theme"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides config)"`
}

// TUICmd is the "tui" subcommand.
type TUICmd struct{}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" optional:"" help:"File with email text (default: stdin, or -)"`
	Style    string `short:"s" default:"simple" enum:"simple,bullet,number" help:"Detail list style (simple, bullet, number)"`
	Markdown bool   `short:"m" help:"Print the detail list as Markdown"`
	Baseline bool   `short:"b" help:"Print one contact per line instead of the labeled list"`
	Copy     string `short:"c" default:"none" enum:"none,recipients,details" help:"Copy a format to the clipboard (recipients, details)"`
	JSON     bool   `help:"Print contacts as JSON"`
}

// ThemeCmd is the "theme" subcommand.
type ThemeCmd struct {
	Value string `arg:"" optional:"" default:"show" enum:"show,light,dark,toggle" help:"show, light, dark or toggle"`
}
