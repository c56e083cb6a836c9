package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SendJSON writes payload with the given status and disables caching, matching every API response.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).JSON(payload)
}

// SendOK writes the conventional {"status":"ok","message":...} acknowledgement merged with extra fields.
func SendOK(c *fiber.Ctx, message string, extra fiber.Map) error {
	body := fiber.Map{"status": "ok"}
	if message != "" {
		body["message"] = message
	}
	for key, value := range extra {
		body[key] = value
	}
	return SendJSON(c, fiber.StatusOK, body)
}

// SendError writes a {"detail": message} body with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "Error"
	}
	return SendJSON(c, status, ErrorResponse{Detail: message})
}

// ErrorHandler converts errors returned by handlers into {"detail"} responses.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return SendError(c, appErr.Status, appErr.Detail)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code == fiber.StatusNotFound {
				return SendError(c, fiber.StatusNotFound, "Not found")
			}
			return SendError(c, fiberErr.Code, fiberErr.Message)
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		}

		logger.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("unhandled request error")
		return SendError(c, fiber.StatusInternalServerError, err.Error())
	}
}
