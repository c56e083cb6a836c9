package dto

import (
	"time"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// AnnouncementRequest creates an announcement.
type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"max=5000"`
}

// AnnouncementItem is an announcement as listed by the API.
type AnnouncementItem struct {
	AnnouncementID uint      `json:"announcement_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewAnnouncementItems converts announcement rows into list items.
func NewAnnouncementItems(items []models.Announcement) []AnnouncementItem {
	out := make([]AnnouncementItem, 0, len(items))
	for _, item := range items {
		out = append(out, AnnouncementItem{
			AnnouncementID: item.AnnouncementID,
			Title:          item.Title,
			Message:        item.Message,
			CreatedBy:      item.CreatedBy,
			CreatedAt:      item.CreatedAt,
		})
	}
	return out
}

// NotificationRequest creates a notification. An empty target broadcasts it.
type NotificationRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Message    string `json:"message" validate:"max=5000"`
	Level      string `json:"level" validate:"omitempty,oneof=info success warning error"`
	TargetUser string `json:"target_user" validate:"max=64"`
}
