package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "https://opendata.rdw.nl", cfg.RDWBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RDW_CACHE_TTL_MS", "60000")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://example.com")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.AllowedOrigins)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim("a, b"))
	assert.Equal(t, []string{"*"}, splitAndTrim("*"))
}
