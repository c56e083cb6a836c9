package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

// PaymentHandler exposes the online payment flow.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("component", "payment_handler").Logger(),
	}
}

// Register wires routes for payments.
func (h *PaymentHandler) Register(router fiber.Router) {
	router.Get("/gateway-status", h.gatewayStatus)
	router.Post("/razorpay/order", h.createOrder)
	router.Post("/razorpay/verify", h.verify)
}

func (h *PaymentHandler) gatewayStatus(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, h.service.GatewayStatus())
}

func (h *PaymentHandler) createOrder(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperror.BadRequest("Invalid order payload")
		}
	}

	resp, err := h.service.CreateOrder(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *PaymentHandler) verify(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid payment payload")
	}

	resp, err := h.service.Verify(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	requestLogger(h.logger, c).Info().
		Str("student_id", resp.Invoice.StudentID).
		Str("invoice_no", resp.Invoice.InvoiceNo).
		Float64("amount_paid", resp.AmountPaidINR).
		Msg("payment recorded")
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
