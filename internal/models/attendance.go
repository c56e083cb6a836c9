package models

// Attendance statuses after normalisation.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// AttendanceRecord is one student's mark for one day; (student_id, date) is unique.
type AttendanceRecord struct {
	AttendanceID     uint   `gorm:"primaryKey" json:"attendance_id"`
	StudentID        string `gorm:"size:32;not null;uniqueIndex:idx_attendance_student_date" json:"student_id"`
	StudentName      string `gorm:"size:255" json:"student_name"`
	Course           string `gorm:"size:128" json:"course"`
	Batch            string `gorm:"size:128" json:"batch"`
	Date             string `gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date;index" json:"date"`
	AttendanceStatus string `gorm:"size:32;not null" json:"attendance_status"`
	Remarks          string `gorm:"type:text" json:"remarks"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}
