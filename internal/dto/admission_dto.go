package dto

// AdmissionRequest is read from the multipart form of POST /api/admissions/apply.
type AdmissionRequest struct {
	FullName string `form:"full_name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Phone    string `form:"phone" validate:"omitempty,max=32"`
	Course   string `form:"course" validate:"omitempty,max=128"`
	Message  string `form:"message" validate:"max=5000"`
}

// CourseItem is a course offered on the public site.
type CourseItem struct {
	Name       string  `json:"name"`
	FeeINR     float64 `json:"fee_inr"`
	GSTPercent int     `json:"gst_percent"`
}
