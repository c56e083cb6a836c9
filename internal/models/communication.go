package models

import "time"

// Announcement is a notice shown to every signed-in user and on the public site.
type Announcement struct {
	AnnouncementID uint      `gorm:"primaryKey" json:"announcement_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	CreatedBy      string    `gorm:"size:64" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// Notification targets a single user, or everyone when TargetUser is nil.
type Notification struct {
	NotificationID uint      `gorm:"primaryKey" json:"notification_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	Level          string    `gorm:"size:16;not null;default:info" json:"level"`
	TargetUser     *string   `gorm:"size:64;index" json:"target_user"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationRead marks a notification as read by one user.
type NotificationRead struct {
	NotificationID uint      `gorm:"primaryKey" json:"notification_id"`
	UserID         string    `gorm:"primaryKey;size:64" json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}
