package middleware

import (
	"time"

	"rdw-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request with method, path, status and
// duration.
func RequestLogger() gin.HandlerFunc {
	logger := logging.NewLogger("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}
