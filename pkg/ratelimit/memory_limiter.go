package ratelimit

import (
	"context"
	"sync"
	"time"
)

// clientWindow tracks request counts for one client in the current
// fixed window.
type clientWindow struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter implements RateLimiter using in-memory fixed
// windows per client.
type MemoryRateLimiter struct {
	config  *Config
	windows map[string]*clientWindow
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryRateLimiter creates a new in-memory rate limiter.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	limiter := &MemoryRateLimiter{
		config:  config,
		windows: make(map[string]*clientWindow),
		ctx:     ctx,
		cancel:  cancel,
	}

	go limiter.cleanupExpiredWindows()

	return limiter
}

// Allow checks the client against its current window.
func (m *MemoryRateLimiter) Allow(clientID string) (bool, time.Duration, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	window, exists := m.windows[clientID]
	if !exists || now.After(window.resetAt) {
		m.windows[clientID] = &clientWindow{
			count:   1,
			resetAt: now.Add(m.config.WindowSize),
		}
		return true, 0, nil
	}

	if window.count >= m.config.RequestsPerWindow {
		return false, time.Until(window.resetAt), nil
	}

	window.count++
	return true, 0, nil
}

// Close stops the cleanup goroutine.
func (m *MemoryRateLimiter) Close() error {
	m.cancel()
	return nil
}

// cleanupExpiredWindows periodically drops windows that have reset,
// so idle clients do not accumulate forever.
func (m *MemoryRateLimiter) cleanupExpiredWindows() {
	ticker := time.NewTicker(m.config.WindowSize)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for clientID, window := range m.windows {
				if now.After(window.resetAt) {
					delete(m.windows, clientID)
				}
			}
			m.mu.Unlock()
		}
	}
}
