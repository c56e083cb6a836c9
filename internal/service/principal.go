package service

import (
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// Principal is the authenticated caller behind a session token.
type Principal struct {
	UserID string
	Role   string
	Token  string
}

// NewPrincipal classifies userID: the fixed superuser id is the superuser, anyone else a student.
func NewPrincipal(userID, token string) Principal {
	role := models.RoleStudent
	if userID == models.SuperuserID {
		role = models.RoleSuperuser
	}
	return Principal{UserID: userID, Role: role, Token: token}
}

// IsSuperuser reports whether the caller has unrestricted access.
func (p Principal) IsSuperuser() bool {
	return p.Role == models.RoleSuperuser
}

// ScopeID returns the student id rows must be filtered to, or "" for the superuser.
func (p Principal) ScopeID() string {
	if p.IsSuperuser() {
		return ""
	}
	return p.UserID
}

// EnsureSelfOrSuperuser rejects students acting on another student's records.
func EnsureSelfOrSuperuser(p Principal, studentID string) error {
	if p.IsSuperuser() || p.UserID == studentID {
		return nil
	}
	return apperror.Forbidden()
}

// EnsureSuperuser rejects every caller except the superuser.
func EnsureSuperuser(p Principal) error {
	if p.IsSuperuser() {
		return nil
	}
	return apperror.Forbidden()
}
