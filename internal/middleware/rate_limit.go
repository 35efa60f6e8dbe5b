package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPeriod = time.Minute

// RateLimiter is a fixed-window per-IP limiter on Redis. It degrades to a
// pass-through when no client is configured or Redis is unreachable, so a
// cache outage never takes the API down with it.
func RateLimiter(client *redis.Client, perMinute int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || perMinute <= 0 {
			return c.Next()
		}

		key := "rate_limit:" + c.IP()
		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.Context(), key, rateLimitPeriod)
		}
		if count > int64(perMinute) {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests")
		}
		return c.Next()
	}
}
