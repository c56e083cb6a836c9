package dto

import "time"

// ReportSummaryResponse is the institute-wide dashboard summary.
type ReportSummaryResponse struct {
	Students          int64   `json:"students"`
	FeesTotal         float64 `json:"fees_total"`
	FeesPaid          float64 `json:"fees_paid"`
	FeesBalance       float64 `json:"fees_balance"`
	AttendancePresent int64   `json:"attendance_present"`
	AttendanceAbsent  int64   `json:"attendance_absent"`
}

// FeedFees is the fee portion of the dashboard feed.
type FeedFees struct {
	Total        float64 `json:"total"`
	Due          float64 `json:"due"`
	Transactions int64   `json:"transactions"`
}

// FeedNotification is a notification in the dashboard feed.
type FeedNotification struct {
	NotificationID uint      `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Level          string    `json:"level"`
	CreatedAt      time.Time `json:"created_at"`
}

// FeedResponse combines fees, announcements, notifications and interviews for the dashboard.
type FeedResponse struct {
	Fees          FeedFees           `json:"fees"`
	Announcements []AnnouncementItem `json:"announcements"`
	Notifications []FeedNotification `json:"notifications"`
	Interviews    []InterviewItem    `json:"interviews"`
}
