package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opendaan/donation-client/internal/core/domain"
)

const connectTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisTokenStore keeps the token in Redis, for shared-device deployments
// where several kiosks present the same operator session.
// Key format: donation:token:<device>
type RedisTokenStore struct {
	client *redis.Client
	device string
}

// NewRedisTokenStore creates a RedisTokenStore wrapping the given client.
func NewRedisTokenStore(client *redis.Client, device string) *RedisTokenStore {
	if device == "" {
		device = "default"
	}
	return &RedisTokenStore{client: client, device: device}
}

func (s *RedisTokenStore) key() string {
	return "donation:token:" + s.device
}

// Get returns the stored token, or domain.ErrTokenNotFound when absent.
func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("token store: read: %w", err)
	}
	return token, nil
}

// Set writes the token with no expiry; the backend decides token lifetime.
func (s *RedisTokenStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(), token, 0).Err(); err != nil {
		return fmt.Errorf("token store: write: %w", err)
	}
	return nil
}

// Remove deletes the token. Removing an absent token is not an error.
func (s *RedisTokenStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("token store: remove: %w", err)
	}
	return nil
}

// Clear removes every key in this device's namespace.
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, "donation:*:"+s.device, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("token store: clear: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("token store: clear: %w", err)
	}
	return nil
}
