package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/service"
)

// RateLimitMiddleware corta con 429 cuando la clave (sujeto del token o IP) supera el limite.
func RateLimitMiddleware(limiter service.RateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := c.ClientIP()
		if claims, ok := GetAuthClaims(c); ok && claims.Subject != "" {
			key = claims.Subject
		}
		if !limiter.Allow(key) {
			logger.Warn("rate limit exceeded", zap.String("key", key), zap.String("path", c.FullPath()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
