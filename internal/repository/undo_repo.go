package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// ErrAlreadyClaimed means another caller flipped the undone flag first.
var ErrAlreadyClaimed = errors.New("activity entry already undone")

// UndoRepository runs an inverse operation and the undone flip as one unit.
type UndoRepository interface {
	Undo(ctx context.Context, activityID uint, at time.Time, revert func(activity.Reverter) error) error
}

type undoRepository struct {
	db *gorm.DB
}

// NewUndoRepository constructs the undo repository.
func NewUndoRepository(db *gorm.DB) UndoRepository {
	return &undoRepository{db: db}
}

// Undo claims the entry with a conditional update and, inside the same transaction, runs revert.
// A failed revert rolls the claim back so the entry stays undoable.
func (r *undoRepository) Undo(ctx context.Context, activityID uint, at time.Time, revert func(activity.Reverter) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ActivityLog{}).
			Where("id = ? AND undone = ?", activityID, false).
			Updates(map[string]interface{}{"undone": true, "undone_at": at})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyClaimed
		}

		return revert(&reverter{db: tx})
	})
}

// reverter implements activity.Reverter against a transaction handle.
type reverter struct {
	db *gorm.DB
}

func (r *reverter) DeleteStudent(ctx context.Context, studentID string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("student_id = ?", studentID).Delete(&models.Student{}).Error; err != nil {
		return err
	}
	if err := db.Where("username = ? AND role = ?", studentID, models.RoleStudent).Delete(&models.Credential{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", studentID).Delete(&models.Session{}).Error
}

func (r *reverter) DeleteAttendance(ctx context.Context, date string, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("date = ? AND student_id IN ?", date, studentIDs).
		Delete(&models.AttendanceRecord{}).Error
}

func (r *reverter) DeleteFee(ctx context.Context, feeID uint) error {
	return r.db.WithContext(ctx).Where("fee_id = ?", feeID).Delete(&models.Fee{}).Error
}

func (r *reverter) DeleteTimetableEntry(ctx context.Context, timetableID uint) error {
	return r.db.WithContext(ctx).Where("timetable_id = ?", timetableID).Delete(&models.TimetableEntry{}).Error
}

func (r *reverter) DeleteInterview(ctx context.Context, interviewID uint) error {
	return r.db.WithContext(ctx).Where("interview_id = ?", interviewID).Delete(&models.InterviewStat{}).Error
}

func (r *reverter) DeleteAnnouncement(ctx context.Context, announcementID uint) error {
	return r.db.WithContext(ctx).Where("announcement_id = ?", announcementID).Delete(&models.Announcement{}).Error
}

func (r *reverter) DeleteNotification(ctx context.Context, notificationID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("notification_id = ?", notificationID).Delete(&models.NotificationRead{}).Error; err != nil {
		return err
	}
	return db.Where("notification_id = ?", notificationID).Delete(&models.Notification{}).Error
}

func (r *reverter) DeleteAdmission(ctx context.Context, admissionID uint) error {
	return r.db.WithContext(ctx).Where("admission_id = ?", admissionID).Delete(&models.Admission{}).Error
}
