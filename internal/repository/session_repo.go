package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// SessionRepository stores bearer tokens and login credentials.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	UpdateExpiry(ctx context.Context, token string, expiresAt int64) error
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error

	FindCredential(ctx context.Context, username string) (*models.Credential, error)
	InsertCredentialIfAbsent(ctx context.Context, credential *models.Credential) (bool, error)
	StudentIDsWithoutCredential(ctx context.Context) ([]string, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs the session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken returns nil without error when the token is unknown.
func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) UpdateExpiry(ctx context.Context, token string, expiresAt int64) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("token = ?", token).
		Update("expires_at", expiresAt).Error
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (r *sessionRepository) FindCredential(ctx context.Context, username string) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

// InsertCredentialIfAbsent reports whether a new row was written. Existing rows are never touched.
func (r *sessionRepository) InsertCredentialIfAbsent(ctx context.Context, credential *models.Credential) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(credential)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) StudentIDsWithoutCredential(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("student_id NOT IN (?)", r.db.Model(&models.Credential{}).Select("username")).
		Order("student_id").
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
