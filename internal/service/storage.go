package service

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// BlobStore persists opaque bytes under a key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Upload is a file received in a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// safeName replaces anything outside [A-Za-z0-9._-] so the name can be embedded in a key.
func safeName(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// extension returns the lower-cased extension without the dot, or "".
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// detectContentType prefers the sniffed type and falls back to the declared one.
func detectContentType(upload Upload) string {
	if len(upload.Data) > 0 {
		detected := mimetype.Detect(upload.Data)
		if detected != nil && detected.String() != "application/octet-stream" {
			return detected.String()
		}
	}
	if upload.ContentType != "" {
		return upload.ContentType
	}
	return "application/octet-stream"
}

func isPDF(data []byte) bool {
	return len(data) > 0 && mimetype.Detect(data).Is("application/pdf")
}

func randomHex() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
