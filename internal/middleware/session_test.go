package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/service"
)

type stubAuthenticator struct {
	tokens map[string]string
}

func (s stubAuthenticator) Authenticate(_ context.Context, header string) (service.Principal, error) {
	if header == "" {
		return service.Principal{}, apperror.Unauthorized("")
	}
	user, ok := s.tokens[header]
	if !ok {
		return service.Principal{}, apperror.SessionExpired()
	}
	return service.NewPrincipal(user, header), nil
}

func TestSessionAuthStoresPrincipal(t *testing.T) {
	app := newTestApp()
	app.Use(SessionAuth(stubAuthenticator{tokens: map[string]string{"Bearer abc": "AAI101"}}))
	app.Get("/me", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"user": principal.UserID, "role": principal.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "AAI101", body["user"])
	require.Equal(t, "student", body["role"])
}

func TestSessionAuthRejectsExpiredTokens(t *testing.T) {
	app := newTestApp()
	app.Use(SessionAuth(stubAuthenticator{}))
	app.Get("/me", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer gone")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Session expired", body["detail"])
}

func TestPreflightShortCircuitsBeforeAuth(t *testing.T) {
	app := newTestApp()
	app.Use(Preflight())
	app.Use(SessionAuth(stubAuthenticator{}))
	app.Post("/api/students", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodOptions, "/api/students", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body["ok"])
}

func TestRateLimitUsesRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := newTestApp()
	app.Post("/login", RateLimit("login", 2, time.Minute, database.NewRedisStorage(client, "limiter:")), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, mr.Keys())
}
