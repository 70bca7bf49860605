package ratelimit

import "time"

// RateLimiter defines the interface for request rate limiting
type RateLimiter interface {
	// Allow reports whether clientID may make another request. When
	// the limit is exceeded it also returns the time until the
	// current window resets.
	Allow(clientID string) (bool, time.Duration, error)

	// Close releases limiter resources.
	Close() error
}
