package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// FeeTotals aggregates ledger rows.
type FeeTotals struct {
	Total        float64
	Paid         float64
	MaxTotal     float64
	Transactions int64
}

// FeeRepository persists fee ledger rows.
type FeeRepository interface {
	Create(ctx context.Context, fee *models.Fee) error
	ListByStudent(ctx context.Context, studentID string) ([]models.Fee, error)
	Recent(ctx context.Context, studentID string, limit int) ([]models.Fee, error)
	StudentTotals(ctx context.Context, studentID string) (FeeTotals, error)
	Totals(ctx context.Context) (FeeTotals, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository constructs the fee repository.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

const feeTotalsSelect = "COALESCE(SUM(amount_total), 0) AS total, COALESCE(SUM(amount_paid), 0) AS paid, " +
	"COALESCE(MAX(amount_total), 0) AS max_total, COUNT(*) AS transactions"

func (r *feeRepository) Create(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *feeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Fee, error) {
	var fees []models.Fee
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("fee_id DESC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// Recent lists the newest rows, scoped to studentID when it is non-empty.
func (r *feeRepository) Recent(ctx context.Context, studentID string, limit int) ([]models.Fee, error) {
	query := r.db.WithContext(ctx).Model(&models.Fee{})
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var fees []models.Fee
	if err := query.Order("fee_id DESC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) StudentTotals(ctx context.Context, studentID string) (FeeTotals, error) {
	var totals FeeTotals
	err := r.db.WithContext(ctx).Model(&models.Fee{}).
		Select(feeTotalsSelect).
		Where("student_id = ?", studentID).
		Scan(&totals).Error
	return totals, err
}

func (r *feeRepository) Totals(ctx context.Context) (FeeTotals, error) {
	var totals FeeTotals
	err := r.db.WithContext(ctx).Model(&models.Fee{}).Select(feeTotalsSelect).Scan(&totals).Error
	return totals, err
}
