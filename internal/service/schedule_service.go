package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

var (
	airlineAfterKeyword  = regexp.MustCompile(`(?i)interview\s*[:\-]\s*([A-Za-z0-9 .&-]+)`)
	airlineBeforeKeyword = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z .&-]{2,})\s+interview`)
)

// airlineFromRemark pulls the airline out of remarks like "Interview: Indigo" or "Air India interview".
func airlineFromRemark(remark string) string {
	text := strings.TrimSpace(remark)
	if m := airlineAfterKeyword.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := airlineBeforeKeyword.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Interview"
}

// ScheduleService manages the timetable and interview drives.
type ScheduleService interface {
	Timetable(ctx context.Context, principal Principal) ([]models.TimetableEntry, error)
	CreateTimetableEntry(ctx context.Context, principal Principal, req dto.TimetableRequest) (models.TimetableEntry, error)
	Interviews(ctx context.Context, principal Principal) ([]dto.InterviewItem, error)
	CreateInterview(ctx context.Context, principal Principal, req dto.InterviewRequest) (models.InterviewStat, error)
}

type scheduleService struct {
	repo       repository.ScheduleRepository
	students   repository.StudentRepository
	attendance repository.AttendanceRepository
	activity   ActivityRecorder
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(
	repo repository.ScheduleRepository,
	students repository.StudentRepository,
	attendance repository.AttendanceRepository,
	activity ActivityRecorder,
	validator *validator.Validate,
	logger zerolog.Logger,
) ScheduleService {
	return &scheduleService{
		repo:       repo,
		students:   students,
		attendance: attendance,
		activity:   activity,
		validator:  validator,
		logger:     logger.With().Str("component", "schedule_service").Logger(),
	}
}

// Timetable returns every slot for the superuser; a student sees slots for their course and batch plus shared ones.
func (s *scheduleService) Timetable(ctx context.Context, principal Principal) ([]models.TimetableEntry, error) {
	if principal.IsSuperuser() {
		return s.repo.ListTimetable(ctx)
	}

	var course, batch string
	student, err := s.students.Get(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if student != nil {
		course, batch = student.Course, student.Batch
	}
	return s.repo.ListTimetableFor(ctx, course, batch)
}

func (s *scheduleService) CreateTimetableEntry(ctx context.Context, principal Principal, req dto.TimetableRequest) (models.TimetableEntry, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return models.TimetableEntry{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.TimetableEntry{}, apperror.BadRequest(err.Error())
	}

	entry := models.TimetableEntry{
		Title:      strings.TrimSpace(req.Title),
		DayOfWeek:  strings.TrimSpace(req.DayOfWeek),
		StartTime:  strings.TrimSpace(req.StartTime),
		EndTime:    strings.TrimSpace(req.EndTime),
		Course:     strings.TrimSpace(req.Course),
		Batch:      strings.TrimSpace(req.Batch),
		Location:   strings.TrimSpace(req.Location),
		Instructor: strings.TrimSpace(req.Instructor),
	}
	if err := s.repo.CreateTimetableEntry(ctx, &entry); err != nil {
		return models.TimetableEntry{}, err
	}

	_, _ = s.activity.Record(ctx, activity.TimetableCreated{TimetableID: entry.TimetableID},
		fmt.Sprintf("Created timetable entry %q", entry.Title), principal.UserID)
	return entry, nil
}

// Interviews merges recorded drives with interviews mentioned in attendance remarks, newest date first.
func (s *scheduleService) Interviews(ctx context.Context, principal Principal) ([]dto.InterviewItem, error) {
	manual, err := s.repo.ListInterviews(ctx)
	if err != nil {
		return nil, err
	}
	remarks, err := s.attendance.InterviewRemarks(ctx, principal.ScopeID())
	if err != nil {
		return nil, err
	}

	items := make([]dto.InterviewItem, 0, len(manual)+len(remarks))
	for _, interview := range manual {
		items = append(items, dto.InterviewItem{
			InterviewID:   strconv.FormatUint(uint64(interview.InterviewID), 10),
			AirlineName:   interview.AirlineName,
			InterviewDate: interview.InterviewDate,
			Notes:         interview.Notes,
			Source:        dto.InterviewSourceManual,
		})
	}
	for _, record := range remarks {
		items = append(items, dto.InterviewItem{
			InterviewID:   fmt.Sprintf("attendance-%d", record.AttendanceID),
			AirlineName:   airlineFromRemark(record.Remarks),
			InterviewDate: record.Date,
			Notes:         record.Remarks,
			Source:        dto.InterviewSourceAttendanceRemark,
			StudentID:     record.StudentID,
			StudentName:   record.StudentName,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].InterviewDate > items[j].InterviewDate
	})
	return items, nil
}

func (s *scheduleService) CreateInterview(ctx context.Context, principal Principal, req dto.InterviewRequest) (models.InterviewStat, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return models.InterviewStat{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.InterviewStat{}, apperror.BadRequest(err.Error())
	}

	interview := models.InterviewStat{
		AirlineName:   strings.TrimSpace(req.AirlineName),
		InterviewDate: normalizeDate(req.InterviewDate),
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := s.repo.CreateInterview(ctx, &interview); err != nil {
		return models.InterviewStat{}, err
	}

	_, _ = s.activity.Record(ctx, activity.InterviewCreated{InterviewID: interview.InterviewID},
		fmt.Sprintf("Recorded %s interview", interview.AirlineName), principal.UserID)
	return interview, nil
}
