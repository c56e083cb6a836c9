package dto

import "github.com/noah-isme/aviation-erp-api/internal/models"

// CreateStudentRequest is read from the query string or form fields of POST /api/students.
type CreateStudentRequest struct {
	StudentName string `query:"student_name" form:"student_name" validate:"required,max=255"`
	Course      string `query:"course" form:"course" validate:"required,max=128"`
	Batch       string `query:"batch" form:"batch" validate:"required,max=128"`
}

// BalanceResponse reports a student's outstanding balance.
type BalanceResponse struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Course      string  `json:"course"`
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Balance     float64 `json:"balance"`
	GSTPercent  int     `json:"gst_percent"`
}

// StudentAttendanceItem is one row of a student's attendance history.
type StudentAttendanceItem struct {
	Date             string `json:"date"`
	AttendanceStatus string `json:"attendance_status"`
	Remarks          string `json:"remarks"`
}

// NewStudentAttendanceItems converts attendance rows into history items.
func NewStudentAttendanceItems(records []models.AttendanceRecord) []StudentAttendanceItem {
	out := make([]StudentAttendanceItem, 0, len(records))
	for _, record := range records {
		out = append(out, StudentAttendanceItem{
			Date:             record.Date,
			AttendanceStatus: record.AttendanceStatus,
			Remarks:          record.Remarks,
		})
	}
	return out
}
