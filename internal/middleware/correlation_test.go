package middleware_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/middleware"
)

func TestCorrelationIDPropagation(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CorrelationIDFrom(c.UserContext()))
	})

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "correlation header", headers: map[string]string{"X-Correlation-ID": "abc-123"}, want: "abc-123"},
		{name: "request id fallback", headers: map[string]string{"X-Request-ID": "req-9"}, want: "req-9"},
		{name: "generated", want: ""},
		{name: "oversized replaced", headers: map[string]string{"X-Correlation-ID": strings.Repeat("x", 200)}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			echoed := resp.Header.Get("X-Correlation-ID")
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, echoed, string(body))
			if tc.want != "" {
				require.Equal(t, tc.want, echoed)
			} else {
				require.Len(t, echoed, 36)
			}
		})
	}
}
