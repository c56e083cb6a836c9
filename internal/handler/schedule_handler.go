package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// ScheduleHandler serves the timetable and interview drives.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register wires the timetable and interview routes.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("/timetable", h.timetable)
	router.Post("/timetable", h.createTimetableEntry)
	router.Get("/interviews", h.interviews)
	router.Post("/interviews", h.createInterview)
}

func (h *ScheduleHandler) timetable(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.service.Timetable(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, entries)
}

func (h *ScheduleHandler) createTimetableEntry(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.TimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	entry, err := h.service.CreateTimetableEntry(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Timetable entry created", fiber.Map{"timetable_id": entry.TimetableID})
}

func (h *ScheduleHandler) interviews(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.Interviews(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *ScheduleHandler) createInterview(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	interview, err := h.service.CreateInterview(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Interview stat created", fiber.Map{"interview_id": interview.InterviewID})
}
