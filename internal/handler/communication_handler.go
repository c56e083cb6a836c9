package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// CommunicationHandler serves announcements and notifications.
type CommunicationHandler struct {
	announcements service.AnnouncementService
	notifications service.NotificationService
	logger        zerolog.Logger
}

// NewCommunicationHandler constructs the handler.
func NewCommunicationHandler(announcements service.AnnouncementService, notifications service.NotificationService, logger zerolog.Logger) *CommunicationHandler {
	return &CommunicationHandler{
		announcements: announcements,
		notifications: notifications,
		logger:        logger.With().Str("component", "communication_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated announcement listing.
func (h *CommunicationHandler) RegisterPublic(router fiber.Router) {
	router.Get("/public/announcements", h.publicAnnouncements)
}

// Register wires routes that require a session.
func (h *CommunicationHandler) Register(router fiber.Router) {
	router.Get("/announcements", h.listAnnouncements)
	router.Post("/announcements", h.createAnnouncement)
	router.Get("/notifications", h.listNotifications)
	router.Post("/notifications", h.createNotification)
	router.Post("/notifications/:id<int>/read", h.markRead)
}

func (h *CommunicationHandler) publicAnnouncements(c *fiber.Ctx) error {
	items, err := h.announcements.List(c.UserContext(), service.AnnouncementsPublicLimit)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *CommunicationHandler) listAnnouncements(c *fiber.Ctx) error {
	items, err := h.announcements.List(c.UserContext(), service.AnnouncementsListLimit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list announcements")
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *CommunicationHandler) createAnnouncement(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	announcement, err := h.announcements.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Announcement created", fiber.Map{"announcement_id": announcement.AnnouncementID})
}

func (h *CommunicationHandler) listNotifications(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	views, err := h.notifications.List(c.UserContext(), principal, 0)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, views)
}

func (h *CommunicationHandler) createNotification(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	notification, err := h.notifications.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendOK(c, "Notification created", fiber.Map{"notification_id": notification.NotificationID})
}

func (h *CommunicationHandler) markRead(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), principal, id); err != nil {
		return err
	}
	return utils.SendOK(c, "", nil)
}
