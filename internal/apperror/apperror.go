// Package apperror defines the typed failures that propagate from services to the HTTP
// boundary unchanged.
package apperror

import (
	"errors"
	"net/http"
)

// Error is a domain failure carrying the HTTP status it surfaces as.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Is matches another *Error with the same status and detail, so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Status == other.Status && e.Detail == other.Detail
}

// New constructs an Error with an explicit status.
func New(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

func Unauthorized(detail string) *Error {
	if detail == "" {
		detail = "Unauthorized"
	}
	return New(http.StatusUnauthorized, detail)
}

// SessionExpired is returned for unknown or lapsed session tokens.
func SessionExpired() *Error {
	return New(http.StatusUnauthorized, "Session expired")
}

func Forbidden() *Error {
	return New(http.StatusForbidden, "Forbidden")
}

func BadRequest(detail string) *Error {
	return New(http.StatusBadRequest, detail)
}

func NotFound(detail string) *Error {
	if detail == "" {
		detail = "Not found"
	}
	return New(http.StatusNotFound, detail)
}

// Upstream reports a failed call to an external provider.
func Upstream(detail string) *Error {
	return New(http.StatusBadGateway, detail)
}

// Unavailable reports an external provider that is not configured.
func Unavailable(detail string) *Error {
	return New(http.StatusServiceUnavailable, detail)
}

// StatusOf returns the status carried by err, or 500 when err is not an *Error.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
