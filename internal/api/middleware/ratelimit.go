package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rdw-backend/pkg/ratelimit"
	"rdw-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(limiter ratelimit.RateLimiter, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := getClientIP(c)

		allowed, resetIn, err := limiter.Allow(clientID)
		if err != nil {
			// Don't block requests on rate limiter failure
			c.Header("X-RateLimit-Error", "Rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerMinute))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Seconds())+1))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Te veel verzoeken, probeer het later opnieuw")
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientIP extracts the real client IP address
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// Take the first IP in the chain
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}
