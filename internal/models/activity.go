package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of a mutating action. Only the undone flag ever changes.
type ActivityLog struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ActionType  string            `gorm:"size:64;not null;index" json:"action_type"`
	Description string            `gorm:"type:text" json:"description"`
	Payload     datatypes.JSONMap `gorm:"type:json" json:"payload"`
	CreatedBy   string            `gorm:"size:64;not null" json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	Undone      bool              `gorm:"not null;default:false;index" json:"undone"`
	UndoneAt    *time.Time        `json:"undone_at"`
}

// TableName keeps the singular table name used by existing deployments.
func (ActivityLog) TableName() string {
	return "activity_log"
}
