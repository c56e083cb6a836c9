package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/aviation-erp-api/internal/models"
)

// NotificationView is a notification as seen by one user.
type NotificationView struct {
	NotificationID uint      `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Level          string    `json:"level"`
	TargetUser     *string   `json:"target_user"`
	CreatedAt      time.Time `json:"created_at"`
	IsRead         int       `json:"is_read"`
}

// CommunicationRepository persists announcements and notifications.
type CommunicationRepository interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	RecentAnnouncements(ctx context.Context, limit int) ([]models.Announcement, error)
	CreateNotification(ctx context.Context, notification *models.Notification) error
	NotificationsFor(ctx context.Context, userID string, limit int) ([]NotificationView, error)
	MarkNotificationRead(ctx context.Context, notificationID uint, userID string, at time.Time) error
}

type communicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository constructs the communication repository.
func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *communicationRepository) RecentAnnouncements(ctx context.Context, limit int) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Order("announcement_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.Announcement
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *communicationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// NotificationsFor lists broadcasts plus notifications targeted at userID, flagged with the user's read state.
func (r *communicationRepository) NotificationsFor(ctx context.Context, userID string, limit int) ([]NotificationView, error) {
	query := r.db.WithContext(ctx).
		Table("notifications AS n").
		Select("n.notification_id, n.title, n.message, n.level, n.target_user, n.created_at, "+
			"CASE WHEN nr.user_id IS NULL THEN 0 ELSE 1 END AS is_read").
		Joins("LEFT JOIN notification_reads nr ON nr.notification_id = n.notification_id AND nr.user_id = ?", userID).
		Where("n.target_user IS NULL OR n.target_user = ?", userID).
		Order("n.notification_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []NotificationView
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotificationRead is idempotent; the first read time is kept.
func (r *communicationRepository) MarkNotificationRead(ctx context.Context, notificationID uint, userID string, at time.Time) error {
	read := models.NotificationRead{NotificationID: notificationID, UserID: userID, ReadAt: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "notification_id"}, {Name: "user_id"}}, DoNothing: true}).
		Create(&read).Error
}
