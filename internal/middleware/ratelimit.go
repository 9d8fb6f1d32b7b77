package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/project-samarth/core/internal/pkg/jwt"
)

const (
	rateLimitMax    = 30
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a per-IP rate limit backed by
// redis. With no redis client, or when redis is unreachable, requests pass.
// Requests carrying a valid admin token are exempt; the limiter runs before
// route-level auth, so the token is verified here rather than read from
// context.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || hasValidToken(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix()
		key := fmt.Sprintf("samarth:rate_limit:%s:%d", ip, windowKey)

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
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "Too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}

func hasValidToken(c *gin.Context) bool {
	token := extractToken(c)
	if token == "" {
		return false
	}
	_, err := jwt.Parse(token)
	return err == nil
}
