package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// StudentRepository persists student records.
type StudentRepository interface {
	List(ctx context.Context, studentID string) ([]models.Student, error)
	Get(ctx context.Context, studentID string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	InsertIfAbsent(ctx context.Context, student *models.Student) (bool, error)
	Exists(ctx context.Context, studentID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// List returns every student, or only studentID when it is non-empty.
func (r *studentRepository) List(ctx context.Context, studentID string) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var students []models.Student
	if err := query.Order("student_id DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Get returns nil without error when the student does not exist.
func (r *studentRepository) Get(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) InsertIfAbsent(ctx context.Context, student *models.Student) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "student_id"}}, DoNothing: true}).
		Create(student)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *studentRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("student_id = ?", studentID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
