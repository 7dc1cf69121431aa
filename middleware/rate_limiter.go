package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/ratelimit"
)

// KeyFunc derives the rate-limit identifier for a request.
type KeyFunc func(c *gin.Context) string

// MemberOrIP keys the limiter on the authenticated member, falling back
// to the client address for unauthenticated requests.
func MemberOrIP(c *gin.Context) string {
	if memberID := c.GetString("memberID"); memberID != "" {
		return memberID
	}
	return c.ClientIP()
}

// RateLimiter rejects requests above limit per window with 429 and sets
// X-RateLimit headers on every response. A store failure rejects the
// request rather than letting traffic through unmetered.
func RateLimiter(store ratelimit.Store, limit int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := key(c)
		result, err := store.Check(c.Request.Context(), identifier, limit, window)
		if err != nil {
			logger.Error("Rate limiting failed", zap.Error(err), zap.String("identifier", identifier))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limiting failed"})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("identifier", identifier),
				zap.Int("limit", limit),
				zap.Duration("window", window))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
