package cache

import (
	"fmt"

	redisClient "github.com/redis/go-redis/v9"
)

// NewStore creates a cache store for the configured backend. The Redis
// client may be nil when the memory backend is selected.
func NewStore(config CacheConfig, client *redisClient.Client) (Store, error) {
	switch config.Backend {
	case BackendMemory, "":
		return NewMemoryStore(config), nil
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis cache backend requires a redis client")
		}
		return NewRedisStore(client, config), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Backend)
	}
}
