package cache

import "time"

// Backend selects the cache implementation.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// CacheConfig holds configuration for cache behavior.
type CacheConfig struct {
	Backend    string        `json:"backend"`    // "memory" or "redis"
	DefaultTTL time.Duration `json:"defaultTTL"` // TTL applied by callers that have no better value
	KeyPrefix  string        `json:"keyPrefix"`  // prefix for all cache keys
}

// DefaultCacheConfig returns default cache configuration. The five
// minute TTL matches the RDW open-data refresh cadence.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Backend:    BackendMemory,
		DefaultTTL: 5 * time.Minute,
		KeyPrefix:  "rdw:",
	}
}
