package redis

import (
	"context"
	"sync"
	"time"

	"rdw-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client shared by the cache and rate
// limiter backends.
type Client struct {
	client *redis.Client
	config config.RedisConfig
	mu     sync.RWMutex
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	LastPing       time.Time     `json:"lastPing"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

// NewClient creates a new Redis client.
func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		config: cfg,
	}
}

// GetClient returns the underlying Redis client (thread-safe)
func (c *Client) GetClient() *redis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// HealthCheck performs a ping and returns detailed status
func (c *Client) HealthCheck() HealthStatus {
	status := HealthStatus{
		ConnectionInfo: c.config.Addr,
		LastPing:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := c.GetClient().Ping(ctx).Err()
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.IsConnected = true
	return status
}

// Close shuts down the underlying connection pool.
func (c *Client) Close() error {
	return c.GetClient().Close()
}
