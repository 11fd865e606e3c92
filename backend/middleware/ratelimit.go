package middleware

import (
	"strconv"

	"eurolens/backend/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimitMiddleware enforces a fixed-window limit per client address.
// Rejected requests get a 429 with a Retry-After header and a machine-readable
// retryAfter body; allowed requests carry the remaining quota.
func RateLimitMiddleware(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := limiter.Allow(c.IP())

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Rate limit exceeded",
				"retryAfter": retryAfter,
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		return c.Next()
	}
}
