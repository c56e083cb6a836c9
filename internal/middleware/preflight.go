package middleware

import "github.com/gofiber/fiber/v2"

const (
	corsAllowOrigins = "*"
	corsAllowHeaders = "Origin, Content-Type, Accept, Authorization"
	corsAllowMethods = "GET,POST,OPTIONS"
)

// Preflight answers every OPTIONS request with {"ok":true} before authentication runs.
func Preflight() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigins)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}
}
