package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-tracker/pkg/metrics"
	"recruit-tracker/pkg/redis"
	"recruit-tracker/pkg/response"
)

// RateLimiter fixed-window counter
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) redis.RateDecision
}

// RateLimit throttles per client IP and route.
// A nil limiter lets everything through, same as JWTAuth without a blacklist.
func RateLimit(limiter RateLimiter, limit int, window time.Duration, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		route := c.FullPath()
		key := fmt.Sprintf("%s:%s", c.ClientIP(), route)
		decision := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			m.RateLimited(route)
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryIn.Round(time.Second).Seconds())))
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
