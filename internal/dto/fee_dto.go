package dto

import "github.com/noah-isme/aviation-erp-api/internal/models"

// FeeItem is a fee ledger row as listed by the API.
type FeeItem struct {
	FeeID       uint    `json:"fee_id"`
	StudentID   string  `json:"student_id"`
	AmountTotal float64 `json:"amount_total"`
	AmountPaid  float64 `json:"amount_paid"`
	DueDate     *string `json:"due_date"`
	Remarks     string  `json:"remarks"`
}

// NewFeeItems converts ledger rows into list items.
func NewFeeItems(fees []models.Fee) []FeeItem {
	out := make([]FeeItem, 0, len(fees))
	for _, fee := range fees {
		out = append(out, FeeItem{
			FeeID:       fee.FeeID,
			StudentID:   fee.StudentID,
			AmountTotal: fee.AmountTotal,
			AmountPaid:  fee.AmountPaid,
			DueDate:     fee.DueDate,
			Remarks:     fee.Remarks,
		})
	}
	return out
}

// FeeSummaryResponse aggregates fees institute-wide for the superuser or per student otherwise.
type FeeSummaryResponse struct {
	Total        float64 `json:"total"`
	Paid         float64 `json:"paid"`
	Due          float64 `json:"due"`
	Transactions int64   `json:"transactions"`
	Course       *string `json:"course,omitempty"`
	GSTPercent   *int    `json:"gst_percent,omitempty"`
}

// RecordFeeRequest is read from the multipart form of POST /api/fees/record.
type RecordFeeRequest struct {
	StudentID   string  `form:"student_id" validate:"required,max=32"`
	AmountPaid  float64 `form:"amount_paid" validate:"gt=0"`
	AmountTotal float64 `form:"amount_total" validate:"gte=0"`
	DueDate     string  `form:"due_date" validate:"omitempty,max=10"`
	Remarks     string  `form:"remarks" validate:"max=2000"`
}
