package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host               string        `validate:"required"`
	Port               int           `validate:"min=1,max=65535"`
	RDWBaseURL         string        `validate:"required,url"`
	CacheTTL           time.Duration `validate:"min=1"`
	CacheBackend       string        `validate:"oneof=memory redis"`
	RateLimitPerMinute int           `validate:"min=1"`
	AllowedOrigins     []string
	LogLevel           string
	LogPretty          bool
	Redis              RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from the environment. A missing .env file
// is fine; invalid values abort startup.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Host:               getEnv("HOST", "0.0.0.0"),
		Port:               getEnvInt("PORT", 3000),
		RDWBaseURL:         getEnv("RDW_BASE_URL", "https://opendata.rdw.nl"),
		CacheTTL:           time.Duration(getEnvInt("RDW_CACHE_TTL_MS", 5*60*1000)) * time.Millisecond,
		CacheBackend:       getEnv("CACHE_BACKEND", "memory"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		AllowedOrigins:     splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnv("LOG_PRETTY", "false") == "true",
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s value: %q", key, value)
	}
	return n
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
