package models

import "time"

// Roles recognised by the session gate.
const (
	RoleSuperuser = "superuser"
	RoleStudent   = "student"
)

// SuperuserID is the fixed username of the singleton superuser.
const SuperuserID = "superuser"

// Session binds an opaque bearer token to a user until ExpiresAt (epoch seconds).
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	ExpiresAt int64     `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential stores the bcrypt hash for a username.
type Credential struct {
	Username     string    `gorm:"primaryKey;size:64" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
