package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

var (
	// ErrActivityNotFound is returned when the log entry does not exist.
	ErrActivityNotFound = apperror.NotFound("Activity not found")
	// ErrAlreadyUndone is returned when the entry was already consumed, including by a concurrent caller.
	ErrAlreadyUndone = apperror.BadRequest("Activity already undone")
)

// CacheInvalidator drops cached reads affected by an undone action.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// UndoService reverses recorded creations exactly once.
type UndoService interface {
	Undo(ctx context.Context, principal Principal, activityID uint) (dto.UndoResponse, error)
}

type undoService struct {
	logs          repository.ActivityLogRepository
	undo          repository.UndoRepository
	recorder      ActivityRecorder
	announcements CacheInvalidator
	logger        zerolog.Logger
	now           func() time.Time
}

// NewUndoService constructs the undo engine. announcements may be nil.
func NewUndoService(
	logs repository.ActivityLogRepository,
	undo repository.UndoRepository,
	recorder ActivityRecorder,
	announcements CacheInvalidator,
	logger zerolog.Logger,
) UndoService {
	return &undoService{
		logs:          logs,
		undo:          undo,
		recorder:      recorder,
		announcements: announcements,
		logger:        logger.With().Str("component", "undo_service").Logger(),
		now:           time.Now,
	}
}

func (s *undoService) Undo(ctx context.Context, principal Principal, activityID uint) (dto.UndoResponse, error) {
	tracer := otel.Tracer("github.com/noah-isme/aviation-erp-api/internal/service/undo")
	ctx, span := tracer.Start(ctx, "activity.undo")
	span.SetAttributes(attribute.Int64("activity.id", int64(activityID)))
	defer span.End()

	if err := EnsureSuperuser(principal); err != nil {
		observability.UndoAttempts().WithLabelValues("unknown", "forbidden").Inc()
		return dto.UndoResponse{}, err
	}

	entry, err := s.logs.FindByID(ctx, activityID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		observability.UndoAttempts().WithLabelValues("unknown", "not_found").Inc()
		return dto.UndoResponse{}, ErrActivityNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find_activity_failed")
		return dto.UndoResponse{}, err
	}
	span.SetAttributes(attribute.String("activity.action_type", entry.ActionType))

	if entry.Undone {
		observability.UndoAttempts().WithLabelValues(entry.ActionType, "already_undone").Inc()
		return dto.UndoResponse{}, ErrAlreadyUndone
	}

	action, err := activity.Decode(entry.ActionType, entry.Payload)
	if err != nil {
		observability.UndoAttempts().WithLabelValues(entry.ActionType, "rejected").Inc()
		return dto.UndoResponse{}, err
	}

	err = s.undo.Undo(ctx, entry.ID, s.now(), func(r activity.Reverter) error {
		return action.Revert(ctx, r)
	})
	if errors.Is(err, repository.ErrAlreadyClaimed) {
		observability.UndoAttempts().WithLabelValues(entry.ActionType, "already_undone").Inc()
		return dto.UndoResponse{}, ErrAlreadyUndone
	}
	if err != nil {
		observability.UndoAttempts().WithLabelValues(entry.ActionType, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "revert_failed")
		s.logger.Error().Err(err).Uint("activity_id", entry.ID).Str("action_type", entry.ActionType).Msg("undo failed")
		return dto.UndoResponse{}, err
	}

	observability.UndoAttempts().WithLabelValues(entry.ActionType, "ok").Inc()
	if action.Type() == activity.TypeAnnouncementCreated && s.announcements != nil {
		s.announcements.Invalidate(ctx)
	}

	response := dto.UndoResponse{
		Status:     "ok",
		Message:    "Action undone",
		ActivityID: entry.ID,
		ActionType: entry.ActionType,
	}

	undoEntry, err := s.recorder.Record(ctx, activity.Undo{OriginalID: entry.ID, OriginalType: action.Type()},
		fmt.Sprintf("Undid %s #%d", entry.ActionType, entry.ID), principal.UserID)
	if err == nil && undoEntry != nil {
		response.UndoLogID = undoEntry.ID
	}

	s.logger.Info().Uint("activity_id", entry.ID).Str("action_type", entry.ActionType).Str("actor", principal.UserID).Msg("activity undone")
	return response, nil
}
