package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactx"
)

// Ensure LoggingExtractor implements contactx.Extractor.
var _ contactx.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   contactx.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next contactx.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation. The
// input text is never logged, only its size.
func (e *LoggingExtractor) Extract(ctx context.Context, text string) (res *contactx.ExtractionResult, err error) {
	defer func(begin time.Time) {
		count := 0
		if res != nil {
			count = len(res.Contacts)
		}
		e.logger.Info("contact extraction",
			"bytes", len(text),
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, text)
}
