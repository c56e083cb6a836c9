package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const notificationsListLimit = 30

// NotificationService delivers targeted or broadcast notifications and tracks reads.
type NotificationService interface {
	List(ctx context.Context, principal Principal, limit int) ([]repository.NotificationView, error)
	Create(ctx context.Context, principal Principal, req dto.NotificationRequest) (models.Notification, error)
	MarkRead(ctx context.Context, principal Principal, notificationID uint) error
}

type notificationService struct {
	repo      repository.CommunicationRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewNotificationService constructs the notification service.
func NewNotificationService(repo repository.CommunicationRepository, activity ActivityRecorder, validator *validator.Validate, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "notification_service").Logger(),
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

func (s *notificationService) List(ctx context.Context, principal Principal, limit int) ([]repository.NotificationView, error) {
	if limit <= 0 {
		limit = notificationsListLimit
	}
	return s.repo.NotificationsFor(ctx, principal.UserID, limit)
}

func (s *notificationService) Create(ctx context.Context, principal Principal, req dto.NotificationRequest) (models.Notification, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return models.Notification{}, err
	}

	req.Title = strings.TrimSpace(s.policy.Sanitize(req.Title))
	req.Message = strings.TrimSpace(s.policy.Sanitize(req.Message))
	req.Level = strings.ToLower(strings.TrimSpace(req.Level))
	req.TargetUser = strings.TrimSpace(req.TargetUser)
	if err := s.validator.Struct(req); err != nil {
		return models.Notification{}, apperror.BadRequest(err.Error())
	}
	if req.Level == "" {
		req.Level = "info"
	}

	notification := models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Level:   req.Level,
	}
	if req.TargetUser != "" {
		notification.TargetUser = &req.TargetUser
	}
	if err := s.repo.CreateNotification(ctx, &notification); err != nil {
		return models.Notification{}, err
	}

	target := "everyone"
	if notification.TargetUser != nil {
		target = *notification.TargetUser
	}
	_, _ = s.activity.Record(ctx, activity.NotificationCreated{NotificationID: notification.NotificationID},
		fmt.Sprintf("Sent notification %q to %s", notification.Title, target), principal.UserID)
	return notification, nil
}

func (s *notificationService) MarkRead(ctx context.Context, principal Principal, notificationID uint) error {
	if notificationID == 0 {
		return apperror.BadRequest("Invalid notification id")
	}
	return s.repo.MarkNotificationRead(ctx, notificationID, principal.UserID, s.now())
}
