package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const recentAttendanceLimit = 20

// RecordedAttendance summarises a RecordAttendance call.
type RecordedAttendance struct {
	Count    int
	Inserted []string
}

// AttendanceService records and lists attendance marks.
type AttendanceService interface {
	Recent(ctx context.Context, principal Principal) ([]dto.AttendanceItem, error)
	ByDate(ctx context.Context, principal Principal, date string) ([]dto.AttendanceItem, error)
	Record(ctx context.Context, principal Principal, req dto.RecordAttendanceRequest) (RecordedAttendance, error)
	SyncUpload(ctx context.Context, principal Principal, upload Upload) (dto.AttendanceSyncResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	blobs     BlobStore
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service. blobs may be nil, in which case uploaded
// sources are parsed but not archived.
func NewAttendanceService(repo repository.AttendanceRepository, blobs BlobStore, activity ActivityRecorder, validator *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		blobs:     blobs,
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		now:       time.Now,
	}
}

func (s *attendanceService) Recent(ctx context.Context, principal Principal) ([]dto.AttendanceItem, error) {
	records, err := s.repo.Recent(ctx, principal.ScopeID(), recentAttendanceLimit)
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceItems(records), nil
}

func (s *attendanceService) ByDate(ctx context.Context, principal Principal, date string) ([]dto.AttendanceItem, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, apperror.BadRequest("date is required")
	}
	records, err := s.repo.ByDate(ctx, date, principal.ScopeID())
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceItems(records), nil
}

func (s *attendanceService) Record(ctx context.Context, principal Principal, req dto.RecordAttendanceRequest) (RecordedAttendance, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return RecordedAttendance{}, err
	}

	req.Date = strings.TrimSpace(req.Date)
	if err := s.validator.Struct(req); err != nil {
		return RecordedAttendance{}, apperror.BadRequest("Invalid payload")
	}

	day, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
	if err != nil {
		return RecordedAttendance{}, apperror.BadRequest("date must be YYYY-MM-DD")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.After(today) {
		return RecordedAttendance{}, apperror.BadRequest("Attendance date cannot be in the future")
	}

	result := RecordedAttendance{Count: len(req.Records)}
	for _, mark := range req.Records {
		record := models.AttendanceRecord{
			StudentID:        strings.TrimSpace(mark.StudentID),
			StudentName:      strings.TrimSpace(mark.StudentName),
			Course:           strings.TrimSpace(mark.Course),
			Batch:            strings.TrimSpace(mark.Batch),
			Date:             req.Date,
			AttendanceStatus: normalizeAttendanceStatus(mark.AttendanceStatus),
			Remarks:          strings.TrimSpace(mark.Remarks),
		}
		inserted, err := s.repo.InsertIfAbsent(ctx, &record)
		if err != nil {
			return RecordedAttendance{}, err
		}
		if inserted {
			result.Inserted = append(result.Inserted, record.StudentID)
		}
	}

	if len(result.Inserted) > 0 {
		_, _ = s.activity.Record(ctx, activity.AttendanceRecorded{Date: req.Date, StudentIDs: result.Inserted},
			fmt.Sprintf("Recorded attendance for %d student(s) on %s", len(result.Inserted), req.Date), principal.UserID)
	}

	return result, nil
}

// SyncUpload archives the uploaded source and, for CSV files, replaces the attendance table with its rows.
func (s *attendanceService) SyncUpload(ctx context.Context, principal Principal, upload Upload) (dto.AttendanceSyncResponse, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return dto.AttendanceSyncResponse{}, err
	}
	if len(upload.Data) == 0 && upload.Filename == "" {
		return dto.AttendanceSyncResponse{}, apperror.BadRequest("file is required")
	}

	name := upload.Filename
	if name == "" {
		name = "attendance.csv"
	}
	key := fmt.Sprintf("attendance-sources/%d_%s", s.now().UnixMilli(), safeName(name))

	if s.blobs != nil {
		if _, err := s.blobs.Put(ctx, key, upload.Data, detectContentType(upload)); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to archive attendance source")
			return dto.AttendanceSyncResponse{}, err
		}
	}

	if extension(name) != "csv" {
		return dto.AttendanceSyncResponse{
			Status:               "uploaded_only",
			SourceKey:            key,
			Message:              "File uploaded. Please upload CSV for automatic parsing.",
			SupportedParseFormat: "csv",
		}, nil
	}

	parsed, err := parseAttendanceCSV(upload.Data)
	if err != nil {
		return dto.AttendanceSyncResponse{}, err
	}

	result, err := s.repo.ReplaceAll(ctx, parsed.Records)
	if err != nil {
		return dto.AttendanceSyncResponse{}, err
	}
	skipped := result.Skipped + parsed.Skipped
	inserted := result.Inserted

	_, _ = s.activity.Record(ctx, activity.AttendanceSynced{SourceKey: key, Inserted: inserted, Skipped: skipped},
		fmt.Sprintf("Synced attendance from %s", name), principal.UserID)

	s.logger.Info().Str("source_key", key).Int("inserted", inserted).Int("skipped", skipped).Msg("attendance synced")

	return dto.AttendanceSyncResponse{
		Status:    "ok",
		SourceKey: key,
		Inserted:  &inserted,
		Skipped:   &skipped,
		Message:   "Attendance synced from uploaded CSV",
	}, nil
}
