package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scrapeOnce    sync.Once
	scrapeHandler fiber.Handler
)

// MetricsHandler serves the ERP collectors together with the Go runtime and process
// collectors of the default registry. A collector that fails to gather is reported in
// the response body instead of failing the scrape.
func MetricsHandler() fiber.Handler {
	scrapeOnce.Do(func() {
		RegisterMetrics()
		handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorHandling:       promhttp.ContinueOnError,
			MaxRequestsInFlight: 4,
		})
		scrapeHandler = adaptor.HTTPHandler(handler)
	})
	return scrapeHandler
}
