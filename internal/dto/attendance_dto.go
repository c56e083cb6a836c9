package dto

import "github.com/noah-isme/aviation-erp-api/internal/models"

// AttendanceItem is an attendance row as listed by the recent and by-date endpoints.
type AttendanceItem struct {
	StudentID        string `json:"student_id"`
	StudentName      string `json:"student_name"`
	Date             string `json:"date"`
	AttendanceStatus string `json:"attendance_status"`
	Remarks          string `json:"remarks"`
}

// NewAttendanceItems converts attendance rows into list items.
func NewAttendanceItems(records []models.AttendanceRecord) []AttendanceItem {
	out := make([]AttendanceItem, 0, len(records))
	for _, record := range records {
		out = append(out, AttendanceItem{
			StudentID:        record.StudentID,
			StudentName:      record.StudentName,
			Date:             record.Date,
			AttendanceStatus: record.AttendanceStatus,
			Remarks:          record.Remarks,
		})
	}
	return out
}

// AttendanceMark is one student's entry in a RecordAttendanceRequest.
type AttendanceMark struct {
	StudentID        string `json:"student_id" validate:"required,max=32"`
	StudentName      string `json:"student_name" validate:"max=255"`
	Course           string `json:"course" validate:"max=128"`
	Batch            string `json:"batch" validate:"max=128"`
	AttendanceStatus string `json:"attendance_status" validate:"max=32"`
	Remarks          string `json:"remarks" validate:"max=2000"`
}

// RecordAttendanceRequest marks attendance for a single date.
type RecordAttendanceRequest struct {
	Date    string           `json:"date" validate:"required"`
	Records []AttendanceMark `json:"records" validate:"required,min=1,dive"`
}

// AttendanceSyncResponse reports the outcome of an uploaded attendance source.
type AttendanceSyncResponse struct {
	Status               string `json:"status"`
	SourceKey            string `json:"source_key"`
	Inserted             *int   `json:"inserted,omitempty"`
	Skipped              *int   `json:"skipped,omitempty"`
	Message              string `json:"message"`
	SupportedParseFormat string `json:"supported_parse_format,omitempty"`
}
