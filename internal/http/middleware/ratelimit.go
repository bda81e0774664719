package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimit counts requests per client identity in Redis so the limit holds
// across service instances; an in-process map would reset on deploy and
// undercount behind a load balancer. Fails open when Redis is down: the API
// stays up, just unthrottled.
func RateLimit(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		n, err := client.Incr(ctx, key).Result()
		if err != nil {
			logrus.WithError(err).Warn("rate limit counter unavailable")
			c.Next()
			return
		}
		if n == 1 {
			client.Expire(ctx, key, window)
		}
		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":   false,
				"message":   "too many requests, slow down",
				"timestamp": timestamp(),
			})
			return
		}
		c.Next()
	}
}
