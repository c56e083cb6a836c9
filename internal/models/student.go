package models

import "time"

// Student is an enrolled trainee. Its id doubles as the student's login username.
type Student struct {
	StudentID   string    `gorm:"primaryKey;size:32" json:"student_id"`
	StudentName string    `gorm:"size:255;not null" json:"student_name"`
	Course      string    `gorm:"size:128;index" json:"course"`
	Batch       string    `gorm:"size:128;index" json:"batch"`
	CreatedAt   time.Time `json:"created_at"`
}

// Admission is a public application submitted before enrolment.
type Admission struct {
	AdmissionID uint      `gorm:"primaryKey" json:"admission_id"`
	FullName    string    `gorm:"size:255;not null" json:"full_name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       string    `gorm:"size:32" json:"phone"`
	Course      string    `gorm:"size:128" json:"course"`
	Message     string    `gorm:"type:text" json:"message"`
	DocumentKey *string   `gorm:"size:512" json:"document_key"`
	Status      string    `gorm:"size:32;not null;default:submitted" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Admission statuses.
const (
	AdmissionStatusSubmitted = "submitted"
)
