package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderCorrelationID carries the request's correlation id in both directions.
const HeaderCorrelationID = "X-Correlation-ID"

const (
	correlationLocal    = "correlation_id"
	maxCorrelationIDLen = 128
)

type correlationCtxKey struct{}

// CorrelationID adopts the caller's X-Correlation-ID or X-Request-ID, or mints a uuid, and
// echoes it on the response. The id is also bound to the request's user context.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderCorrelationID))
		if id == "" {
			id = strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		}
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(HeaderCorrelationID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationCtxKey{}, id))
		return c.Next()
	}
}

// CorrelationIDFrom returns the id bound by CorrelationID, or "".
func CorrelationIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationCtxKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation id of the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok {
		return id
	}
	return CorrelationIDFrom(c.UserContext())
}
