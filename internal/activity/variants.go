package activity

import "context"

// StudentAdded records a newly created student row.
type StudentAdded struct {
	StudentID string
}

func (StudentAdded) Type() Type { return TypeStudentAdded }
func (StudentAdded) sealed()    {}

func (a StudentAdded) Payload() map[string]interface{} {
	return map[string]interface{}{"student_id": a.StudentID}
}

func (a StudentAdded) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteStudent(ctx, a.StudentID)
}

// AttendanceRecorded lists only the students whose rows were actually inserted for Date.
type AttendanceRecorded struct {
	Date       string
	StudentIDs []string
}

func (AttendanceRecorded) Type() Type { return TypeAttendanceRecorded }
func (AttendanceRecorded) sealed()    {}

func (a AttendanceRecorded) Payload() map[string]interface{} {
	ids := a.StudentIDs
	if ids == nil {
		ids = []string{}
	}
	return map[string]interface{}{"date": a.Date, "student_ids": ids}
}

func (a AttendanceRecorded) Revert(ctx context.Context, r Reverter) error {
	if len(a.StudentIDs) == 0 {
		return nil
	}
	return r.DeleteAttendance(ctx, a.Date, a.StudentIDs)
}

// FeeRecorded records a fee ledger row, from the desk or a verified online payment.
type FeeRecorded struct {
	FeeID      uint
	StudentID  string
	AmountPaid float64
}

func (FeeRecorded) Type() Type { return TypeFeeRecorded }
func (FeeRecorded) sealed()    {}

func (a FeeRecorded) Payload() map[string]interface{} {
	return map[string]interface{}{
		"fee_id":      a.FeeID,
		"student_id":  a.StudentID,
		"amount_paid": a.AmountPaid,
	}
}

func (a FeeRecorded) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteFee(ctx, a.FeeID)
}

type TimetableCreated struct {
	TimetableID uint
}

func (TimetableCreated) Type() Type { return TypeTimetableCreated }
func (TimetableCreated) sealed()    {}

func (a TimetableCreated) Payload() map[string]interface{} {
	return map[string]interface{}{"timetable_id": a.TimetableID}
}

func (a TimetableCreated) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteTimetableEntry(ctx, a.TimetableID)
}

type InterviewCreated struct {
	InterviewID uint
}

func (InterviewCreated) Type() Type { return TypeInterviewCreated }
func (InterviewCreated) sealed()    {}

func (a InterviewCreated) Payload() map[string]interface{} {
	return map[string]interface{}{"interview_id": a.InterviewID}
}

func (a InterviewCreated) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteInterview(ctx, a.InterviewID)
}

type AnnouncementCreated struct {
	AnnouncementID uint
}

func (AnnouncementCreated) Type() Type { return TypeAnnouncementCreated }
func (AnnouncementCreated) sealed()    {}

func (a AnnouncementCreated) Payload() map[string]interface{} {
	return map[string]interface{}{"announcement_id": a.AnnouncementID}
}

func (a AnnouncementCreated) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteAnnouncement(ctx, a.AnnouncementID)
}

type NotificationCreated struct {
	NotificationID uint
}

func (NotificationCreated) Type() Type { return TypeNotificationCreated }
func (NotificationCreated) sealed()    {}

func (a NotificationCreated) Payload() map[string]interface{} {
	return map[string]interface{}{"notification_id": a.NotificationID}
}

func (a NotificationCreated) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteNotification(ctx, a.NotificationID)
}

type AdmissionSubmitted struct {
	AdmissionID uint
	Email       string
}

func (AdmissionSubmitted) Type() Type { return TypeAdmissionSubmitted }
func (AdmissionSubmitted) sealed()    {}

func (a AdmissionSubmitted) Payload() map[string]interface{} {
	return map[string]interface{}{"admission_id": a.AdmissionID, "email": a.Email}
}

func (a AdmissionSubmitted) Revert(ctx context.Context, r Reverter) error {
	return r.DeleteAdmission(ctx, a.AdmissionID)
}

// AttendanceSynced replaces the whole attendance table, so it has no inverse.
type AttendanceSynced struct {
	SourceKey string
	Inserted  int
	Skipped   int
}

func (AttendanceSynced) Type() Type { return TypeAttendanceSynced }
func (AttendanceSynced) sealed()    {}

func (a AttendanceSynced) Payload() map[string]interface{} {
	return map[string]interface{}{
		"source_key": a.SourceKey,
		"inserted":   a.Inserted,
		"skipped":    a.Skipped,
	}
}

type CredentialsBootstrapped struct {
	Usernames []string
}

func (CredentialsBootstrapped) Type() Type { return TypeCredentialsBootstrapped }
func (CredentialsBootstrapped) sealed()    {}

func (a CredentialsBootstrapped) Payload() map[string]interface{} {
	return map[string]interface{}{"usernames": a.Usernames}
}

// Undo is written after a successful undo and is itself never undoable.
type Undo struct {
	OriginalID   uint
	OriginalType Type
}

func (Undo) Type() Type { return TypeUndo }
func (Undo) sealed()    {}

func (a Undo) Payload() map[string]interface{} {
	return map[string]interface{}{
		"original_id":          a.OriginalID,
		"original_action_type": string(a.OriginalType),
	}
}
