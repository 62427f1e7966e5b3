package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	httprateredis "github.com/go-chi/httprate-redis"
	"github.com/redis/go-redis/v9"
)

// RequestLogger returns a middleware that logs HTTP requests with method,
// path, status, duration and request ID.
func RequestLogger(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.With(
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			next.ServeHTTP(ww, r)

			reqLog.Info("request completed",
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// RateLimitConfig holds configuration for the rate limiter.
type RateLimitConfig struct {
	RequestLimit   int
	WindowDuration time.Duration
	RedisClient    *redis.Client // shares counters between instances when set
}

// RateLimit returns a middleware that limits requests per client IP. A zero
// RequestLimit returns a pass-through middleware.
func RateLimit(config RateLimitConfig) func(next http.Handler) http.Handler {
	if config.RequestLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if config.WindowDuration <= 0 {
		config.WindowDuration = time.Minute
	}

	limitHandler := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ErrorResponse{
			Error:      "rate limit exceeded",
			StatusCode: http.StatusTooManyRequests,
		}, http.StatusTooManyRequests)
	}

	options := []httprate.Option{
		httprate.WithLimitHandler(limitHandler),
		httprate.WithKeyByRealIP(),
	}
	if config.RedisClient != nil {
		options = append(options, httprateredis.WithRedisLimitCounter(&httprateredis.Config{
			Client:    config.RedisClient,
			PrefixKey: "contactx:ratelimit",
		}))
	}

	return httprate.NewRateLimiter(config.RequestLimit, config.WindowDuration, options...).Handler
}
