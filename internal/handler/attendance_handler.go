package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// AttendanceHandler records, lists and imports attendance.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires routes for attendance.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("/recent", h.recent)
	router.Get("/by-date", h.byDate)
	router.Post("/record", h.record)
	router.Post("/sync", h.syncHint)
	router.Post("/sync/upload", h.syncUpload)
}

func (h *AttendanceHandler) recent(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.Recent(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *AttendanceHandler) byDate(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.ByDate(c.UserContext(), principal, c.Query("date"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *AttendanceHandler) record(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	result, err := h.service.Record(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Attendance recorded", fiber.Map{
		"count":    result.Count,
		"inserted": len(result.Inserted),
	})
}

func (h *AttendanceHandler) syncHint(c *fiber.Ctx) error {
	return apperror.BadRequest("Use /attendance/sync/upload with a CSV file.")
}

func (h *AttendanceHandler) syncUpload(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	upload, err := readUpload(c, "file")
	if err != nil {
		return err
	}
	if upload == nil {
		return apperror.BadRequest("file is required")
	}

	resp, err := h.service.SyncUpload(c.UserContext(), principal, *upload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Str("filename", upload.Filename).Msg("attendance sync rejected")
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
