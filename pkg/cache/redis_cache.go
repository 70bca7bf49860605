package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisClient "github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis. TTL enforcement is left to
// Redis itself, which also gives operators a memory eviction policy
// the in-memory store deliberately does not have.
type RedisStore struct {
	client *redisClient.Client
	prefix string
	ctx    context.Context
}

// NewRedisStore creates a Redis-backed store. The Redis client is
// shared with other components and is not closed by this store.
func NewRedisStore(client *redisClient.Client, config CacheConfig) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: config.KeyPrefix,
		ctx:    context.Background(),
	}
}

// Get retrieves a value by key.
func (r *RedisStore) Get(key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(r.ctx, r.prefix+key).Result()
	if err != nil {
		if err == redisClient.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return true, nil
}

// Set stores a value with the given TTL.
func (r *RedisStore) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	if err := r.client.Set(r.ctx, r.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}

	return nil
}

// Delete removes a key.
func (r *RedisStore) Delete(key string) error {
	return r.client.Del(r.ctx, r.prefix+key).Err()
}

// Clear removes all keys under this store's prefix.
func (r *RedisStore) Clear() error {
	iter := r.client.Scan(r.ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(r.ctx) {
		if err := r.client.Del(r.ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Close is a no-op; the shared Redis client is closed by its owner.
func (r *RedisStore) Close() error {
	return nil
}
