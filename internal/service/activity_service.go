package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

// ActivityRecorder appends audit entries after a mutation has been applied.
type ActivityRecorder interface {
	Record(ctx context.Context, action activity.Action, description, actor string) (*models.ActivityLog, error)
}

// ActivityService records and lists activity log entries.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, principal Principal, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
}

type activityService struct {
	repo      repository.ActivityLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, validator *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

// Record writes one entry for action. The mutation it describes has already happened, so callers
// treat a failure here as commentary lost rather than as a failed request.
func (s *activityService) Record(ctx context.Context, action activity.Action, description, actor string) (*models.ActivityLog, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = "system"
	}

	entry := models.ActivityLog{
		ActionType:  string(action.Type()),
		Description: strings.TrimSpace(description),
		Payload:     datatypes.JSONMap(action.Payload()),
		CreatedBy:   actor,
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		observability.ActivityRecorded().WithLabelValues(entry.ActionType, "error").Inc()
		s.logger.Error().Err(err).Str("action_type", entry.ActionType).Str("actor", actor).Msg("failed to persist activity log")
		return nil, err
	}

	observability.ActivityRecorded().WithLabelValues(entry.ActionType, "ok").Inc()
	return &entry, nil
}

func (s *activityService) List(ctx context.Context, principal Principal, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return dto.ActivityListResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityListResponse{}, apperror.BadRequest(err.Error())
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := maxInt(req.Page, 1)

	filter := repository.ActivityLogFilter{
		Page:       page,
		PageSize:   pageSize,
		ActionType: strings.TrimSpace(req.ActionType),
	}
	if req.Undone != "" {
		undone := req.Undone == "true"
		filter.Undone = &undone
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry, activity.IsReversible(entry.ActionType)))
	}

	return dto.ActivityListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
