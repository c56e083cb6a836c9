package dto

import (
	"time"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// ActivityListRequest filters GET /api/activity.
type ActivityListRequest struct {
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=200"`
	ActionType string `query:"action_type" validate:"omitempty,max=64"`
	Undone     string `query:"undone" validate:"omitempty,oneof=true false"`
}

// ActivityResponse is a serialized activity log entry.
type ActivityResponse struct {
	ID          uint                   `json:"id"`
	ActionType  string                 `json:"action_type"`
	Description string                 `json:"description"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedBy   string                 `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
	Undone      bool                   `json:"undone"`
	UndoneAt    *time.Time             `json:"undone_at"`
	Undoable    bool                   `json:"undoable"`
}

// NewActivityResponse converts a log entry. undoable reports whether the entry can still be reversed.
func NewActivityResponse(entry models.ActivityLog, undoable bool) ActivityResponse {
	payload := map[string]interface{}(entry.Payload)
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return ActivityResponse{
		ID:          entry.ID,
		ActionType:  entry.ActionType,
		Description: entry.Description,
		Payload:     payload,
		CreatedBy:   entry.CreatedBy,
		CreatedAt:   entry.CreatedAt,
		Undone:      entry.Undone,
		UndoneAt:    entry.UndoneAt,
		Undoable:    undoable && !entry.Undone,
	}
}

// PaginationMeta describes a paginated list.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListResponse is a page of activity log entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// UndoResponse confirms a reversed action.
type UndoResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	ActivityID uint   `json:"activity_id"`
	ActionType string `json:"action_type"`
	UndoLogID  uint   `json:"undo_log_id,omitempty"`
}
