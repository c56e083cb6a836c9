package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Configured reports whether every credential is present.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Service stores opaque blobs in Cloudinary under caller-chosen keys.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		folder: cfg.Folder,
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Put uploads data under key and returns the asset's secure URL.
func (s *Service) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	params := uploader.UploadParams{
		PublicID:     PublicID(s.folder, key),
		ResourceType: ResourceType(contentType),
	}

	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", key, result.Error.Message)
	}

	s.logger.Info().
		Str("key", key).
		Str("public_id", result.PublicID).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("blob stored in cloudinary")

	return result.SecureURL, nil
}

// PublicID joins the configured folder and the object key into a Cloudinary public id.
func PublicID(folder, key string) string {
	folder = strings.Trim(folder, "/")
	key = strings.TrimLeft(key, "/")
	if folder == "" {
		return key
	}
	return path.Join(folder, key)
}

// ResourceType maps a MIME type to the Cloudinary resource type. PDFs stay "image" so they can be previewed.
func ResourceType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(contentType, "image/"), contentType == "application/pdf":
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	default:
		return "raw"
	}
}
