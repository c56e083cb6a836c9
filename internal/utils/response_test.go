package utils_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(zerolog.New(io.Discard))})
}

func TestSendOKMergesExtraFields(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendOK(c, "Student added", fiber.Map{"student_id": "AAI123"})
	})

	resp := performRequest(t, app, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var payload map[string]string
	decode(t, resp, &payload)
	require.Equal(t, "ok", payload["status"])
	require.Equal(t, "Student added", payload["message"])
	require.Equal(t, "AAI123", payload["student_id"])
}

func TestErrorHandlerUsesTypedStatus(t *testing.T) {
	app := newApp()
	app.Get("/typed", func(c *fiber.Ctx) error {
		return fmt.Errorf("wrapped: %w", apperror.Forbidden())
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("database is locked")
	})
	app.Get("/validation", func(c *fiber.Ctx) error {
		type payload struct {
			Title string `validate:"required"`
		}
		return validator.New().Struct(payload{})
	})

	resp := performRequest(t, app, "/typed")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	var body utils.ErrorResponse
	decode(t, resp, &body)
	require.Equal(t, "Forbidden", body.Detail)

	resp = performRequest(t, app, "/plain")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	decode(t, resp, &body)
	require.Equal(t, "database is locked", body.Detail)

	resp = performRequest(t, app, "/validation")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = performRequest(t, app, "/missing")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	decode(t, resp, &body)
	require.Equal(t, "Not found", body.Detail)
}

func performRequest(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
