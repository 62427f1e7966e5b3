package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/mock"
	cxslog "github.com/fwojciec/contactx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extraction with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, text string) (*contactx.ExtractionResult, error) {
				return &contactx.ExtractionResult{Contacts: []contactx.Contact{{Name: "A"}, {Name: "B"}}}, nil
			},
		}

		res, err := cxslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), "secret text")

		require.NoError(t, err)
		assert.Len(t, res.Contacts, 2)
		output := buf.String()
		assert.Contains(t, output, "contact extraction")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "bytes=11")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "secret text")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, text string) (*contactx.ExtractionResult, error) {
				return nil, errors.New("connection failed")
			},
		}

		_, err := cxslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), "text")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}

func TestLoggingPreferenceService(t *testing.T) {
	t.Parallel()

	t.Run("logs load at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.PreferenceService{
			LoadFn: func(ctx context.Context) (contactx.Theme, error) {
				return contactx.ThemeDark, nil
			},
		}

		theme, err := cxslog.NewLoggingPreferenceService(inner, logger).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, contactx.ThemeDark, theme)
		assert.Contains(t, buf.String(), "theme load")
		assert.Contains(t, buf.String(), "theme=dark")
	})

	t.Run("logs save error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.PreferenceService{
			SaveFn: func(ctx context.Context, theme contactx.Theme) error {
				return errors.New("read-only")
			},
		}

		err := cxslog.NewLoggingPreferenceService(inner, logger).Save(context.Background(), contactx.ThemeLight)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "theme save")
		assert.Contains(t, buf.String(), "err=read-only")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PreferenceService{
			SaveFn: func(ctx context.Context, theme contactx.Theme) error { return nil },
		}

		require.NoError(t, cxslog.NewLoggingPreferenceService(inner, logger).Save(context.Background(), contactx.ThemeDark))
		assert.Empty(t, buf.String())
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := cxslog.NewLogger(&buf, "warn", "json")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		t.Parallel()

		_, err := cxslog.NewLogger(&bytes.Buffer{}, "loud", "text")
		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := cxslog.NewLogger(&bytes.Buffer{}, "info", "xml")
		assert.Equal(t, contactx.EINVALID, contactx.ErrorCode(err))
	})
}
