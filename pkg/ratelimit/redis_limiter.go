package ratelimit

import (
	"context"
	"fmt"
	"time"

	redisClient "github.com/redis/go-redis/v9"
)

// RedisRateLimiter implements RateLimiter using Redis fixed windows,
// so limits hold across multiple proxy instances.
type RedisRateLimiter struct {
	client *redisClient.Client
	config *Config
	ctx    context.Context
}

// NewRedisRateLimiter creates a Redis-backed rate limiter. The Redis
// client is shared and not closed by the limiter.
func NewRedisRateLimiter(client *redisClient.Client, config *Config) *RedisRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}

	return &RedisRateLimiter{
		client: client,
		config: config,
		ctx:    context.Background(),
	}
}

// Allow increments the client's window counter and checks it against
// the limit. The first request of a window sets the window expiry.
func (r *RedisRateLimiter) Allow(clientID string) (bool, time.Duration, error) {
	key := r.config.KeyPrefix + clientID

	count, err := r.client.Incr(r.ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(r.ctx, key, r.config.WindowSize).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count > int64(r.config.RequestsPerWindow) {
		ttl, err := r.client.PTTL(r.ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = r.config.WindowSize
		}
		return false, ttl, nil
	}

	return true, 0, nil
}

// Close is a no-op; the shared Redis client is closed by its owner.
func (r *RedisRateLimiter) Close() error {
	return nil
}
