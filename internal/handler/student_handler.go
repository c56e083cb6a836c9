package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// StudentHandler serves student records and per-student views.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires routes for students.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id/balance", h.balance)
	router.Get("/:id/attendance", h.attendance)
	router.Get("/:id/fees", h.fees)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	students, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, students)
}

// create accepts the fields either as query parameters or as form values.
func (h *StudentHandler) create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateStudentRequest
	_ = c.QueryParser(&req)
	if strings.TrimSpace(req.StudentName) == "" && len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}

	created, err := h.service.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}

	extra := fiber.Map{"student_id": created.StudentID}
	if created.Password != "" {
		extra["password"] = created.Password
	}
	requestLogger(h.logger, c).Info().Str("student_id", created.StudentID).Msg("student added")
	return utils.SendOK(c, "Student added", extra)
}

func (h *StudentHandler) balance(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Balance(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *StudentHandler) attendance(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.Attendance(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *StudentHandler) fees(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.Fees(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}
