package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// AdmissionHandler serves the public site and the admissions inbox.
type AdmissionHandler struct {
	service service.AdmissionService
	logger  zerolog.Logger
}

// NewAdmissionHandler constructs the handler.
func NewAdmissionHandler(service service.AdmissionService, logger zerolog.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "admission_handler").Logger(),
	}
}

// RegisterPublic wires the course catalogue and the application form.
func (h *AdmissionHandler) RegisterPublic(router fiber.Router) {
	router.Get("/public/courses", h.courses)
	router.Post("/admissions/apply", h.apply)
}

// Register wires the superuser listing.
func (h *AdmissionHandler) Register(router fiber.Router) {
	router.Get("/admissions", h.list)
}

func (h *AdmissionHandler) courses(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, h.service.Courses())
}

func (h *AdmissionHandler) apply(c *fiber.Ctx) error {
	var req dto.AdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid application")
	}
	document, err := readUpload(c, "document")
	if err != nil {
		return err
	}

	admission, err := h.service.Apply(c.UserContext(), req, document)
	if err != nil {
		return err
	}
	requestLogger(h.logger, c).Info().Uint("admission_id", admission.AdmissionID).Msg("admission received")
	return utils.SendOK(c, "Application submitted", fiber.Map{"admission_id": admission.AdmissionID})
}

func (h *AdmissionHandler) list(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	admissions, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, admissions)
}
