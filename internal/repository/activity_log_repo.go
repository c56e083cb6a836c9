package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// ActivityLogFilter narrows activity log queries.
type ActivityLogFilter struct {
	Page       int
	PageSize   int
	ActionType string
	Undone     *bool
}

// ActivityLogRepository persists audit trail events.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	FindByID(ctx context.Context, id uint) (models.ActivityLog, error)
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// ensureTable creates the log table on first use when a deployment predates it.
func (r *activityLogRepository) ensureTable(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&models.ActivityLog{}) {
		return nil
	}
	if err := migrator.CreateTable(&models.ActivityLog{}); err != nil {
		if migrator.HasTable(&models.ActivityLog{}) {
			return nil
		}
		return err
	}
	return nil
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) FindByID(ctx context.Context, id uint) (models.ActivityLog, error) {
	if err := r.ensureTable(ctx); err != nil {
		return models.ActivityLog{}, err
	}

	var entry models.ActivityLog
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return models.ActivityLog{}, err
	}
	return entry, nil
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}

	if filter.Undone != nil {
		query = query.Where("undone = ?", *filter.Undone)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []models.ActivityLog
	if err := query.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
