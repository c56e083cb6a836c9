package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/middleware"
)

func TestObservabilityLabelsSurviveLaterRequests(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Observability(zerolog.New(io.Discard)))
	app.Get("/api/labels/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/api/labels/:id/notes", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Delete("/api/labels/:id", func(c *fiber.Ctx) error { return fiber.ErrForbidden })

	requests := []struct{ method, path string }{
		{"GET", "/api/labels/1"},
		{"POST", "/api/labels/2/notes"},
		{"DELETE", "/api/labels/3"},
		{"GET", "/api/labels/4"},
		{"PATCH", "/api/labels/5"},
	}
	for i := 0; i < 20; i++ {
		for _, r := range requests {
			resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())
		}
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	seen := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "erp_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["route"] == "/api/labels/:id" || labels["route"] == "/api/labels/:id/notes" {
				seen[labels["method"]+" "+labels["route"]+" "+labels["status"]] = metric.GetCounter().GetValue()
			}
		}
	}

	require.Equal(t, float64(40), seen["GET /api/labels/:id 200"])
	require.Equal(t, float64(20), seen["POST /api/labels/:id/notes 201"])
	require.Equal(t, float64(20), seen["DELETE /api/labels/:id 403"])
}
