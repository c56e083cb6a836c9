package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// AdmissionRepository persists public applications.
type AdmissionRepository interface {
	Create(ctx context.Context, admission *models.Admission) error
	List(ctx context.Context, limit int) ([]models.Admission, error)
}

type admissionRepository struct {
	db *gorm.DB
}

// NewAdmissionRepository constructs the admission repository.
func NewAdmissionRepository(db *gorm.DB) AdmissionRepository {
	return &admissionRepository{db: db}
}

func (r *admissionRepository) Create(ctx context.Context, admission *models.Admission) error {
	return r.db.WithContext(ctx).Create(admission).Error
}

func (r *admissionRepository) List(ctx context.Context, limit int) ([]models.Admission, error) {
	query := r.db.WithContext(ctx).Order("admission_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.Admission
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
