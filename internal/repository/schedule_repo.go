package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// ScheduleRepository persists timetable slots and interview drives.
type ScheduleRepository interface {
	CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) error
	ListTimetable(ctx context.Context) ([]models.TimetableEntry, error)
	ListTimetableFor(ctx context.Context, course, batch string) ([]models.TimetableEntry, error)
	CreateInterview(ctx context.Context, interview *models.InterviewStat) error
	ListInterviews(ctx context.Context) ([]models.InterviewStat, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs the schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const timetableOrder = "day_of_week ASC, start_time ASC, timetable_id DESC"

func (r *scheduleRepository) CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepository) ListTimetable(ctx context.Context) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry
	if err := r.db.WithContext(ctx).Order(timetableOrder).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListTimetableFor returns slots matching the course and batch, where a blank column matches anyone.
func (r *scheduleRepository) ListTimetableFor(ctx context.Context, course, batch string) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("(course = ? OR course = '') AND (batch = ? OR batch = '')", course, batch).
		Order(timetableOrder).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scheduleRepository) CreateInterview(ctx context.Context, interview *models.InterviewStat) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *scheduleRepository) ListInterviews(ctx context.Context) ([]models.InterviewStat, error) {
	var interviews []models.InterviewStat
	if err := r.db.WithContext(ctx).Order("interview_date DESC, interview_id DESC").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}
