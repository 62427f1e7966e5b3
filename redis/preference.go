// Package redis provides Redis-backed implementations of contactx services,
// for deployments where several server processes share one preference.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/contactx"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "contactx:"

// Compile-time interface verification.
var _ contactx.PreferenceService = (*PreferenceService)(nil)

// PreferenceService implements contactx.PreferenceService using a single
// Redis string key.
type PreferenceService struct {
	client *redis.Client
	prefix string
}

// NewPreferenceService creates a PreferenceService with an existing client.
func NewPreferenceService(client *redis.Client, prefix string) *PreferenceService {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &PreferenceService{client: client, prefix: prefix}
}

// NewPreferenceServiceFromURL creates a PreferenceService from a Redis URL.
// URL format: redis://[user[:password]@]host[:port][/db][?option=value]
func NewPreferenceServiceFromURL(redisURL, prefix string) (*PreferenceService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return NewPreferenceService(redis.NewClient(opts), prefix), nil
}

// Load retrieves the stored theme.
func (s *PreferenceService) Load(ctx context.Context) (contactx.Theme, error) {
	value, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", contactx.Errorf(contactx.ENOTFOUND, "theme preference not found")
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return contactx.ParseTheme(value)
}

// Save stores the theme without expiration.
func (s *PreferenceService) Save(ctx context.Context, theme contactx.Theme) error {
	if _, err := contactx.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(), string(theme), 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Ping checks if the Redis connection is healthy.
func (s *PreferenceService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *PreferenceService) Close() error {
	return s.client.Close()
}

func (s *PreferenceService) key() string {
	return s.prefix + "theme"
}
