package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactx"
)

// Ensure LoggingPreferenceService implements contactx.PreferenceService.
var _ contactx.PreferenceService = (*LoggingPreferenceService)(nil)

// LoggingPreferenceService wraps a PreferenceService with debug logging.
type LoggingPreferenceService struct {
	next   contactx.PreferenceService
	logger *slog.Logger
}

// NewLoggingPreferenceService creates a new LoggingPreferenceService.
func NewLoggingPreferenceService(next contactx.PreferenceService, logger *slog.Logger) *LoggingPreferenceService {
	return &LoggingPreferenceService{next: next, logger: logger}
}

// Load delegates to the wrapped service and logs the operation.
func (s *LoggingPreferenceService) Load(ctx context.Context) (theme contactx.Theme, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("theme load",
			"theme", theme,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped service and logs the operation.
func (s *LoggingPreferenceService) Save(ctx context.Context, theme contactx.Theme) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("theme save",
			"theme", theme,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, theme)
}
