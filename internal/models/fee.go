package models

import "time"

// Fee is a single ledger row: a payment against the student's planned total.
type Fee struct {
	FeeID       uint      `gorm:"primaryKey" json:"fee_id"`
	StudentID   string    `gorm:"size:32;not null;index" json:"student_id"`
	AmountTotal float64   `gorm:"not null;default:0" json:"amount_total"`
	AmountPaid  float64   `gorm:"not null;default:0" json:"amount_paid"`
	DueDate     *string   `gorm:"size:10" json:"due_date"`
	Remarks     string    `gorm:"type:text" json:"remarks"`
	ReceiptPath *string   `gorm:"size:512" json:"receipt_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
