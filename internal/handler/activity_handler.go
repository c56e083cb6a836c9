package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// ActivityHandler exposes the audit trail and undo.
type ActivityHandler struct {
	activities service.ActivityService
	undo       service.UndoService
	logger     zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(activities service.ActivityService, undo service.UndoService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		undo:       undo,
		logger:     logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires routes for the activity log.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/undo", h.undoActivity)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.ActivityListRequest
	if err := c.QueryParser(&req); err != nil {
		return apperror.BadRequest("invalid query parameters")
	}

	resp, err := h.activities.List(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *ActivityHandler) undoActivity(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	resp, err := h.undo.Undo(c.UserContext(), principal, id)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("activity_id", id).Msg("undo rejected")
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
