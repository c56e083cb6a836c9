package dto

// TimetableRequest creates a timetable slot. Blank course or batch applies to everyone.
type TimetableRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	DayOfWeek  string `json:"day_of_week" validate:"max=16"`
	StartTime  string `json:"start_time" validate:"max=8"`
	EndTime    string `json:"end_time" validate:"max=8"`
	Course     string `json:"course" validate:"max=128"`
	Batch      string `json:"batch" validate:"max=128"`
	Location   string `json:"location" validate:"max=255"`
	Instructor string `json:"instructor" validate:"max=255"`
}

// InterviewRequest records an airline recruitment drive.
type InterviewRequest struct {
	AirlineName   string `json:"airline_name" validate:"required,max=255"`
	InterviewDate string `json:"interview_date" validate:"max=10"`
	Notes         string `json:"notes" validate:"max=2000"`
}

// Interview sources.
const (
	InterviewSourceManual           = "manual"
	InterviewSourceAttendanceRemark = "attendance_remark"
)

// InterviewItem merges manual interview stats with interviews mentioned in attendance remarks.
// Remark-derived items carry an "attendance-<id>" identifier.
type InterviewItem struct {
	InterviewID   string `json:"interview_id"`
	AirlineName   string `json:"airline_name"`
	InterviewDate string `json:"interview_date"`
	Notes         string `json:"notes"`
	Source        string `json:"source"`
	StudentID     string `json:"student_id,omitempty"`
	StudentName   string `json:"student_name,omitempty"`
}
