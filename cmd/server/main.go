package main

import (
	"context"
	"fmt"
	"time"

	"rdw-backend/internal/api/middleware"
	"rdw-backend/internal/api/routes"
	"rdw-backend/internal/config"
	"rdw-backend/internal/rdw"
	"rdw-backend/pkg/cache"
	"rdw-backend/pkg/logging"
	"rdw-backend/pkg/ratelimit"
	"rdw-backend/pkg/redis"
	"rdw-backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	// A Redis connection is only needed when the Redis cache backend
	// is selected; the rate limiter shares it.
	var redisConn *redisClient.Client
	if cfg.CacheBackend == cache.BackendRedis {
		client := redis.NewClient(cfg.Redis)
		defer client.Close()

		status := client.HealthCheck()
		if status.IsConnected {
			logger.Info().Str("addr", status.ConnectionInfo).Msg("Redis connected")
		} else {
			logger.Warn().Str("error", status.Error).Msg("Redis connection failed")
		}
		redisConn = client.GetClient()
	}

	// Build the cache store and the RDW client on top of it
	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.Backend = cfg.CacheBackend
	cacheConfig.DefaultTTL = cfg.CacheTTL

	store, err := cache.NewStore(cacheConfig, redisConn)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create cache store")
	}
	defer store.Close()

	rdwClient := rdw.NewClient(rdw.Config{
		BaseURL:  cfg.RDWBaseURL,
		CacheTTL: cfg.CacheTTL,
	}, store)

	// Test RDW API availability before starting
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if !rdwClient.Ping(pingCtx) {
		logger.Warn().Msg("Could not reach RDW API. Server will start anyway.")
	}
	cancel()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		utils.ErrorResponse(c, 500, "Er is een onverwachte fout opgetreden")
		c.Abort()
	}))

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Rate limiting, Redis-backed when a connection is available
	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.RequestsPerWindow = cfg.RateLimitPerMinute

	var limiter ratelimit.RateLimiter
	if redisConn != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisConn, limiterConfig)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter(limiterConfig)
	}
	defer limiter.Close()

	router.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimitPerMinute))

	// Setup routes
	routes.SetupRoutes(router, rdwClient)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Info().Msgf("RDW API server is running on http://%s", addr)
	logger.Info().Msgf("Health check: http://%s/health", addr)

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
