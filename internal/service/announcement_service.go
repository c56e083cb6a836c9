package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const announcementsCachePrefix = "announcements:recent:v1:"

// Announcement list sizes for signed-in users and for the public site.
const (
	AnnouncementsListLimit   = 20
	AnnouncementsPublicLimit = 5
)

// AnnouncementService publishes notices and serves them through a Redis read cache.
type AnnouncementService interface {
	CacheInvalidator
	List(ctx context.Context, limit int) ([]dto.AnnouncementItem, error)
	Create(ctx context.Context, principal Principal, req dto.AnnouncementRequest) (models.Announcement, error)
}

type announcementService struct {
	repo      repository.CommunicationRepository
	cache     *redis.Client
	ttl       time.Duration
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewAnnouncementService constructs the announcement service. cache may be nil.
func NewAnnouncementService(repo repository.CommunicationRepository, cache *redis.Client, ttl time.Duration, activity ActivityRecorder, validator *validator.Validate, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &announcementService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
		policy:    bluemonday.StrictPolicy(),
	}
}

func (s *announcementService) List(ctx context.Context, limit int) ([]dto.AnnouncementItem, error) {
	cacheKey := fmt.Sprintf("%s%d", announcementsCachePrefix, limit)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var items []dto.AnnouncementItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				observability.AnnouncementsCache().WithLabelValues("hit").Inc()
				return items, nil
			}
		} else if err != nil && err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read announcements cache")
		}
	}

	rows, err := s.repo.RecentAnnouncements(ctx, limit)
	if err != nil {
		observability.AnnouncementsCache().WithLabelValues("error").Inc()
		return nil, err
	}
	items := dto.NewAnnouncementItems(rows)

	if s.cache != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}
	observability.AnnouncementsCache().WithLabelValues("miss").Inc()

	return items, nil
}

func (s *announcementService) Create(ctx context.Context, principal Principal, req dto.AnnouncementRequest) (models.Announcement, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return models.Announcement{}, err
	}

	req.Title = strings.TrimSpace(s.policy.Sanitize(req.Title))
	req.Message = strings.TrimSpace(s.policy.Sanitize(req.Message))
	if err := s.validator.Struct(req); err != nil {
		return models.Announcement{}, apperror.BadRequest(err.Error())
	}

	announcement := models.Announcement{
		Title:     req.Title,
		Message:   req.Message,
		CreatedBy: principal.UserID,
	}
	if err := s.repo.CreateAnnouncement(ctx, &announcement); err != nil {
		return models.Announcement{}, err
	}
	s.Invalidate(ctx)

	_, _ = s.activity.Record(ctx, activity.AnnouncementCreated{AnnouncementID: announcement.AnnouncementID},
		fmt.Sprintf("Published announcement %q", announcement.Title), principal.UserID)
	return announcement, nil
}

// Invalidate drops every cached announcement list.
func (s *announcementService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, announcementsCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to scan announcements cache")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush announcements cache")
	}
}
