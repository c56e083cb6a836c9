package handler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/middleware"
	"github.com/noah-isme/aviation-erp-api/internal/service"
)

// maxUploadBytes bounds any single multipart file read into memory.
const maxUploadBytes = 20 << 20

func currentPrincipal(c *fiber.Ctx) (service.Principal, error) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return service.Principal{}, apperror.Unauthorized("")
	}
	return principal, nil
}

func paramUint(c *fiber.Ctx, key string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(key)), 10, 64)
	if err != nil || value == 0 {
		return 0, apperror.BadRequest(fmt.Sprintf("invalid %s", key))
	}
	return uint(value), nil
}

// readUpload returns the named multipart file, or nil when the request carries none.
func readUpload(c *fiber.Ctx, field string) (*service.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	header := files[0]
	if header.Size > maxUploadBytes {
		return nil, apperror.BadRequest("Uploaded file is too large")
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", field, err)
	}
	if len(data) > maxUploadBytes {
		return nil, apperror.BadRequest("Uploaded file is too large")
	}

	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
