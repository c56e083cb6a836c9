package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aviation-erp-api/internal/service"
)

const principalKey = "principal"

// Authenticator resolves an Authorization header into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (service.Principal, error)
}

// SessionAuth validates the bearer session token and slides its expiry.
// Failures are returned to the app ErrorHandler as 401 {detail}.
func SessionAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFromContext returns the principal stored by SessionAuth.
func PrincipalFromContext(c *fiber.Ctx) (service.Principal, bool) {
	principal, ok := c.Locals(principalKey).(service.Principal)
	return principal, ok
}
