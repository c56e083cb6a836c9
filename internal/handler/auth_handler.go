package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// AuthHandler exposes login, logout and credential provisioning.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated login route. limiter may be nil.
func (h *AuthHandler) RegisterPublic(router fiber.Router, limiter fiber.Handler) {
	if limiter != nil {
		router.Post("/login", limiter, h.login)
		return
	}
	router.Post("/login", h.login)
}

// Register wires routes that require a session.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/auth/me", h.me)
	router.Post("/credentials/bootstrap", h.bootstrap)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ErrInvalidCredentials
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return utils.SendOK(c, "Logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Me(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) bootstrap(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := service.EnsureSuperuser(principal); err != nil {
		return err
	}

	provisioned, err := h.service.Bootstrap(c.UserContext(), principal.UserID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("credential bootstrap failed")
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, dto.BootstrapResponse{
		Status:      "ok",
		Message:     "Credentials bootstrapped",
		Provisioned: provisioned,
	})
}
