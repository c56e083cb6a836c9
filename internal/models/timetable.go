package models

import "time"

// TimetableEntry is a recurring class slot. Blank course/batch applies to everyone.
type TimetableEntry struct {
	TimetableID uint      `gorm:"primaryKey" json:"timetable_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	DayOfWeek   string    `gorm:"size:16" json:"day_of_week"`
	StartTime   string    `gorm:"size:8" json:"start_time"`
	EndTime     string    `gorm:"size:8" json:"end_time"`
	Course      string    `gorm:"size:128" json:"course"`
	Batch       string    `gorm:"size:128" json:"batch"`
	Location    string    `gorm:"size:255" json:"location"`
	Instructor  string    `gorm:"size:255" json:"instructor"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TimetableEntry) TableName() string {
	return "timetable"
}

// InterviewStat records an airline recruitment drive.
type InterviewStat struct {
	InterviewID   uint      `gorm:"primaryKey" json:"interview_id"`
	AirlineName   string    `gorm:"size:255;not null" json:"airline_name"`
	InterviewDate string    `gorm:"size:10" json:"interview_date"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}
