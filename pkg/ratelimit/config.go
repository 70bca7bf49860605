package ratelimit

import "time"

// Config holds rate limiter configuration.
type Config struct {
	RequestsPerWindow int           `json:"requestsPerWindow"`
	WindowSize        time.Duration `json:"windowSize"`
	KeyPrefix         string        `json:"keyPrefix"`
}

// DefaultConfig returns the default limit of 100 requests per minute
// per client.
func DefaultConfig() *Config {
	return &Config{
		RequestsPerWindow: 100,
		WindowSize:        time.Minute,
		KeyPrefix:         "ratelimit:",
	}
}
