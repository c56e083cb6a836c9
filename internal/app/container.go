// Package app assembles repositories, services and handlers from a database handle and the
// optional external providers.
package app

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/config"
	"github.com/noah-isme/aviation-erp-api/internal/handler"
	"github.com/noah-isme/aviation-erp-api/internal/middleware"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
	"github.com/noah-isme/aviation-erp-api/internal/router"
	"github.com/noah-isme/aviation-erp-api/internal/service"
)

// Providers are the external integrations. Any of them may be nil.
type Providers struct {
	Cache   *redis.Client
	Blobs   service.BlobStore
	Gateway service.PaymentGateway
	Mailer  service.Mailer
	// LimiterStorage backs the login rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
	// HashCost overrides the bcrypt cost, mainly for tests.
	HashCost int
}

// Container holds the wired services.
type Container struct {
	Config        config.Config
	Logger        zerolog.Logger
	Activity      service.ActivityService
	Auth          service.AuthService
	Finance       service.FinanceService
	Students      service.StudentService
	Attendance    service.AttendanceService
	Fees          service.FeeService
	Payments      service.PaymentService
	Schedule      service.ScheduleService
	Announcements service.AnnouncementService
	Notifications service.NotificationService
	Reports       service.ReportService
	Admissions    service.AdmissionService
	Undo          service.UndoService

	limiterStorage fiber.Storage
}

// Build wires every service against db.
func Build(cfg config.Config, db *gorm.DB, providers Providers, logger zerolog.Logger) *Container {
	validate := validator.New(validator.WithRequiredStructEnabled())

	logs := repository.NewActivityLogRepository(db)
	students := repository.NewStudentRepository(db)
	fees := repository.NewFeeRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	comms := repository.NewCommunicationRepository(db)
	schedules := repository.NewScheduleRepository(db)

	hashCost := providers.HashCost
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}

	ttl := cfg.AnnouncementsCacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	c := &Container{Config: cfg, Logger: logger, limiterStorage: providers.LimiterStorage}
	c.Activity = service.NewActivityService(logs, validate, logger)
	c.Auth = service.NewAuthService(repository.NewSessionRepository(db), students, c.Activity, validate, service.AuthConfig{
		SessionTimeout:    cfg.SessionTimeout,
		SuperuserPassword: cfg.SuperuserPassword,
		HashCost:          hashCost,
	}, logger)
	c.Finance = service.NewFinanceService(students, fees, cfg.CourseFees)
	c.Students = service.NewStudentService(students, attendance, fees, c.Finance, c.Auth, c.Activity, validate, logger)
	c.Attendance = service.NewAttendanceService(attendance, providers.Blobs, c.Activity, validate, logger)
	c.Fees = service.NewFeeService(fees, c.Finance, providers.Blobs, c.Activity, validate, logger)
	c.Payments = service.NewPaymentService(providers.Gateway, c.Finance, fees, c.Activity, validate, logger)
	c.Schedule = service.NewScheduleService(schedules, students, attendance, c.Activity, validate, logger)
	c.Announcements = service.NewAnnouncementService(comms, providers.Cache, ttl, c.Activity, validate, logger)
	c.Notifications = service.NewNotificationService(comms, c.Activity, validate, logger)
	c.Reports = service.NewReportService(students, fees, attendance, c.Fees, c.Announcements, c.Notifications, c.Schedule)
	c.Admissions = service.NewAdmissionService(repository.NewAdmissionRepository(db), c.Finance, providers.Blobs, providers.Mailer,
		cfg.AdmissionsInbox, c.Activity, validate, logger)
	c.Undo = service.NewUndoService(logs, repository.NewUndoRepository(db), c.Activity, c.Announcements, logger)

	return c
}

// Routes returns the handler set for router.Register.
func (c *Container) Routes() router.Dependencies {
	return router.Dependencies{
		Authenticator:        c.Auth,
		LoginLimiter:         middleware.RateLimit("login", c.Config.LoginRateLimit, time.Minute, c.limiterStorage),
		AuthHandler:          handler.NewAuthHandler(c.Auth, c.Logger),
		StudentHandler:       handler.NewStudentHandler(c.Students, c.Logger),
		AttendanceHandler:    handler.NewAttendanceHandler(c.Attendance, c.Logger),
		FeeHandler:           handler.NewFeeHandler(c.Fees, c.Logger),
		PaymentHandler:       handler.NewPaymentHandler(c.Payments, c.Logger),
		ReportHandler:        handler.NewReportHandler(c.Reports),
		ScheduleHandler:      handler.NewScheduleHandler(c.Schedule, c.Logger),
		CommunicationHandler: handler.NewCommunicationHandler(c.Announcements, c.Notifications, c.Logger),
		AdmissionHandler:     handler.NewAdmissionHandler(c.Admissions, c.Logger),
		ActivityHandler:      handler.NewActivityHandler(c.Activity, c.Undo, c.Logger),
		ExposeMetrics:        true,
	}
}
