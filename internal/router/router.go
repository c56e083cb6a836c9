package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/config"
	"github.com/noah-isme/aviation-erp-api/internal/handler"
	"github.com/noah-isme/aviation-erp-api/internal/middleware"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Authenticator        middleware.Authenticator
	LoginLimiter         fiber.Handler
	AuthHandler          *handler.AuthHandler
	StudentHandler       *handler.StudentHandler
	AttendanceHandler    *handler.AttendanceHandler
	FeeHandler           *handler.FeeHandler
	PaymentHandler       *handler.PaymentHandler
	ReportHandler        *handler.ReportHandler
	ScheduleHandler      *handler.ScheduleHandler
	CommunicationHandler *handler.CommunicationHandler
	AdmissionHandler     *handler.AdmissionHandler
	ActivityHandler      *handler.ActivityHandler
	// ExposeMetrics mounts the Prometheus endpoint at /metrics.
	ExposeMetrics bool
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	if deps.ExposeMetrics {
		app.Get("/metrics", observability.MetricsHandler())
	}

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Public routes are registered before the session gate so they never reach it.
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api, deps.LoginLimiter)
	}
	if deps.CommunicationHandler != nil {
		deps.CommunicationHandler.RegisterPublic(api)
	}
	if deps.AdmissionHandler != nil {
		deps.AdmissionHandler.RegisterPublic(api)
	}

	secured := api.Group("", middleware.SessionAuth(deps.Authenticator))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(secured)
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(secured.Group("/students"))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(secured.Group("/attendance"))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(secured.Group("/fees"))
	}
	if deps.PaymentHandler != nil {
		deps.PaymentHandler.Register(secured.Group("/payments"))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(secured)
	}
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(secured)
	}
	if deps.CommunicationHandler != nil {
		deps.CommunicationHandler.Register(secured)
	}
	if deps.AdmissionHandler != nil {
		deps.AdmissionHandler.Register(secured)
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(secured.Group("/activity", middleware.RequireRole(models.RoleSuperuser)))
	}

	app.Use(func(c *fiber.Ctx) error {
		return apperror.NotFound("")
	})
}
