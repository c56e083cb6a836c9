package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// FeeHandler serves the fee ledger.
type FeeHandler struct {
	service service.FeeService
	logger  zerolog.Logger
}

// NewFeeHandler constructs the handler.
func NewFeeHandler(service service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		logger:  logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register wires routes for fees.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Get("/recent", h.recent)
	router.Get("/summary", h.summary)
	router.Post("/record", h.record)
}

func (h *FeeHandler) recent(c *fiber.Ctx) error {
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

func (h *FeeHandler) summary(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Summary(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *FeeHandler) record(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.RecordFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid fee payload")
	}
	receipt, err := readUpload(c, "receipt")
	if err != nil {
		return err
	}

	fee, err := h.service.Record(c.UserContext(), principal, req, receipt)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Fee recorded", fiber.Map{"fee_id": fee.FeeID})
}
