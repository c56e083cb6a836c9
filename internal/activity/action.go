// Package activity models the payloads written to the activity log as a closed set of
// action variants. Reversible variants know the exact delete that undoes them.
package activity

import (
	"context"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
)

// Type identifies the kind of mutation an activity log entry describes.
type Type string

const (
	TypeStudentAdded            Type = "student_added"
	TypeAttendanceRecorded      Type = "attendance_recorded"
	TypeFeeRecorded             Type = "fee_recorded"
	TypeTimetableCreated        Type = "timetable_created"
	TypeInterviewCreated        Type = "interview_created"
	TypeAnnouncementCreated     Type = "announcement_created"
	TypeNotificationCreated     Type = "notification_created"
	TypeAdmissionSubmitted      Type = "admission_submitted"
	TypeAttendanceSynced        Type = "attendance_synced"
	TypeCredentialsBootstrapped Type = "credentials_bootstrapped"
	TypeUndo                    Type = "undo_action"
)

var (
	// ErrNotUndoable is returned for log entries whose action has no inverse.
	ErrNotUndoable = apperror.BadRequest("Action cannot be undone")
	// ErrBadPayload is returned when a stored payload lacks the keys its inverse needs.
	ErrBadPayload = apperror.BadRequest("Activity payload is missing required fields")
)

// Action is a loggable mutation. The set of implementations is closed to this package.
type Action interface {
	Type() Type
	Payload() map[string]interface{}
	sealed()
}

// Reverter performs the targeted deletes used by undo.
type Reverter interface {
	DeleteStudent(ctx context.Context, studentID string) error
	DeleteAttendance(ctx context.Context, date string, studentIDs []string) error
	DeleteFee(ctx context.Context, feeID uint) error
	DeleteTimetableEntry(ctx context.Context, timetableID uint) error
	DeleteInterview(ctx context.Context, interviewID uint) error
	DeleteAnnouncement(ctx context.Context, announcementID uint) error
	DeleteNotification(ctx context.Context, notificationID uint) error
	DeleteAdmission(ctx context.Context, admissionID uint) error
}

// Reversible is an Action that a superuser can undo exactly once.
type Reversible interface {
	Action
	Revert(ctx context.Context, r Reverter) error
}
