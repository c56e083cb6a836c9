package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
)

// RequireRole admits only principals holding one of roles. It must run after SessionAuth.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if normalized := normalizeRole(role); normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.UserID == "" {
			return apperror.Unauthorized("")
		}
		if _, ok := allowed[normalizeRole(principal.Role)]; !ok {
			return apperror.Forbidden()
		}
		return c.Next()
	}
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
