package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// AttendanceCounts splits marks into present and absent.
type AttendanceCounts struct {
	Present int64
	Absent  int64
}

// SyncResult reports the outcome of replacing the attendance table.
type SyncResult struct {
	Inserted int
	Skipped  int
}

// AttendanceRepository persists attendance marks.
type AttendanceRepository interface {
	InsertIfAbsent(ctx context.Context, record *models.AttendanceRecord) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
	Recent(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error)
	ByDate(ctx context.Context, date, studentID string) ([]models.AttendanceRecord, error)
	ReplaceAll(ctx context.Context, records []models.AttendanceRecord) (SyncResult, error)
	Counts(ctx context.Context) (AttendanceCounts, error)
	InterviewRemarks(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

var attendanceConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
	DoNothing: true,
}

// InsertIfAbsent keeps the existing mark for (student_id, date) and reports whether a row was added.
func (r *attendanceRepository) InsertIfAbsent(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(attendanceConflict).Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Recent(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.AttendanceRecord{})
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date DESC, attendance_id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ByDate(ctx context.Context, date, studentID string) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Where("date = ?", date)
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var records []models.AttendanceRecord
	if err := query.Order("student_name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceAll clears the table and loads records, adding any unknown students on the way.
// Duplicate (student_id, date) rows after the first are counted as skipped.
func (r *attendanceRepository) ReplaceAll(ctx context.Context, records []models.AttendanceRecord) (SyncResult, error) {
	var result SyncResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}

		for i := range records {
			record := records[i]
			student := models.Student{
				StudentID:   record.StudentID,
				StudentName: record.StudentName,
				Course:      record.Course,
				Batch:       record.Batch,
			}
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "student_id"}}, DoNothing: true}).Create(&student).Error; err != nil {
				return err
			}

			res := tx.Clauses(attendanceConflict).Create(&record)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}
	return result, nil
}

func (r *attendanceRepository) Counts(ctx context.Context) (AttendanceCounts, error) {
	var counts AttendanceCounts
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Select("COALESCE(SUM(CASE WHEN lower(attendance_status) IN ('present','p') THEN 1 ELSE 0 END), 0) AS present, " +
			"COALESCE(SUM(CASE WHEN lower(attendance_status) IN ('absent','a') THEN 1 ELSE 0 END), 0) AS absent").
		Scan(&counts).Error
	return counts, err
}

// InterviewRemarks returns marks whose remarks mention an interview, newest first.
func (r *attendanceRepository) InterviewRemarks(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).
		Where("remarks IS NOT NULL AND trim(remarks) <> '' AND lower(remarks) LIKE ?", "%interview%")
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date DESC, attendance_id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
