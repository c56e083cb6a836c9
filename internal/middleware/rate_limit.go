package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// RateLimit creates a per-client limiter. storage may be nil for the in-memory default.
func RateLimit(identifier string, max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("%s:%s", identifier, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			observability.AuthFailures().WithLabelValues("rate_limited").Inc()
			return utils.SendError(c, fiber.StatusTooManyRequests, "Too many attempts, try again later")
		},
	})
}
