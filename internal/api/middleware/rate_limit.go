package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/pkg/redis"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// RateLimit throttles a route with a fixed window counter in Redis.
// The counter is keyed by member when JWTAuth ran earlier in the chain,
// otherwise by client IP. A nil rdb or a Redis error lets the request
// through, matching the processing-lock degradation policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		caller := c.GetString("member_id")
		if caller == "" {
			caller = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", caller, c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
