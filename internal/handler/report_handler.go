package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// ReportHandler serves dashboard aggregates.
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Register wires the summary and feed routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/reports/summary", h.summary)
	router.Get("/feed", h.feed)
}

func (h *ReportHandler) summary(c *fiber.Ctx) error {
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

func (h *ReportHandler) feed(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Feed(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
