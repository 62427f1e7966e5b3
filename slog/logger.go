// Package slog provides log/slog decorators for contactx services and the
// logger constructor used by the binary.
package slog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/contactx"
)

// NewLogger returns a logger writing to w at the given level ("debug",
// "info", "warn", "error") in the given format ("text" or "json").
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, contactx.Errorf(contactx.EINVALID, "invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, contactx.Errorf(contactx.EINVALID, "invalid log format %q", format)
	}
}
