package middleware

import (
	"fmt"
	"net/http"
	"time"

	pkgredis "github.com/carpediction/server/internal/pkg/redis"
	"github.com/gin-gonic/gin"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit enforces a per-IP fixed-window limit on anonymous requests.
// Without Redis (nil client) or on Redis errors it lets traffic through;
// the limiter is protection, not a dependency.
func RateLimit(rc *pkgredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := rc.Raw()
		if rdb == nil {
			c.Next()
			return
		}
		if _, err := c.Cookie(TokenCookie); err == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s:%d", ip, time.Now().Unix())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"msg": "Too many requests, slow down.",
			})
			return
		}

		c.Next()
	}
}
