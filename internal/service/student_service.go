package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const (
	studentIDPrefix   = "AAI"
	studentIDAttempts = 50
)

// ErrStudentNotFound is returned when a student id is unknown.
var ErrStudentNotFound = apperror.NotFound("Student not found")

// CredentialBootstrapper provisions missing login credentials.
type CredentialBootstrapper interface {
	Bootstrap(ctx context.Context, actor string) ([]dto.ProvisionedCredential, error)
}

// CreatedStudent is the outcome of enrolling a student.
type CreatedStudent struct {
	StudentID string
	Password  string
}

// StudentService manages student records and their per-student views.
type StudentService interface {
	List(ctx context.Context, principal Principal) ([]models.Student, error)
	Create(ctx context.Context, principal Principal, req dto.CreateStudentRequest) (CreatedStudent, error)
	Balance(ctx context.Context, principal Principal, studentID string) (dto.BalanceResponse, error)
	Attendance(ctx context.Context, principal Principal, studentID string) ([]dto.StudentAttendanceItem, error)
	Fees(ctx context.Context, principal Principal, studentID string) ([]dto.FeeItem, error)
}

type studentService struct {
	students   repository.StudentRepository
	attendance repository.AttendanceRepository
	fees       repository.FeeRepository
	finance    FinanceService
	bootstrap  CredentialBootstrapper
	activity   ActivityRecorder
	validator  *validator.Validate
	logger     zerolog.Logger
	newID      func() string
}

// NewStudentService constructs the student service.
func NewStudentService(
	students repository.StudentRepository,
	attendance repository.AttendanceRepository,
	fees repository.FeeRepository,
	finance FinanceService,
	bootstrap CredentialBootstrapper,
	activity ActivityRecorder,
	validator *validator.Validate,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		students:   students,
		attendance: attendance,
		fees:       fees,
		finance:    finance,
		bootstrap:  bootstrap,
		activity:   activity,
		validator:  validator,
		logger:     logger.With().Str("component", "student_service").Logger(),
		newID: func() string {
			return fmt.Sprintf("%s%d", studentIDPrefix, 100+rand.IntN(900))
		},
	}
}

func (s *studentService) List(ctx context.Context, principal Principal) ([]models.Student, error) {
	return s.students.List(ctx, principal.ScopeID())
}

func (s *studentService) Create(ctx context.Context, principal Principal, req dto.CreateStudentRequest) (CreatedStudent, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return CreatedStudent{}, err
	}

	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Course = strings.TrimSpace(req.Course)
	req.Batch = strings.TrimSpace(req.Batch)
	if err := s.validator.Struct(req); err != nil {
		return CreatedStudent{}, apperror.BadRequest("Missing required fields")
	}

	student := models.Student{StudentName: req.StudentName, Course: req.Course, Batch: req.Batch}
	for attempt := 0; attempt < studentIDAttempts && student.StudentID == ""; attempt++ {
		candidate := s.newID()
		inserted, err := s.students.InsertIfAbsent(ctx, &models.Student{
			StudentID:   candidate,
			StudentName: student.StudentName,
			Course:      student.Course,
			Batch:       student.Batch,
		})
		if err != nil {
			return CreatedStudent{}, err
		}
		if inserted {
			student.StudentID = candidate
		}
	}
	if student.StudentID == "" {
		return CreatedStudent{}, apperror.New(http.StatusConflict, "No free student id available")
	}

	_, _ = s.activity.Record(ctx, activity.StudentAdded{StudentID: student.StudentID},
		fmt.Sprintf("Added student %s (%s)", student.StudentName, student.StudentID), principal.UserID)

	created := CreatedStudent{StudentID: student.StudentID}
	provisioned, err := s.bootstrap.Bootstrap(ctx, principal.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("student_id", student.StudentID).Msg("credential bootstrap failed after enrolment")
		return created, nil
	}
	for _, credential := range provisioned {
		if credential.Username == student.StudentID {
			created.Password = credential.Password
		}
	}

	return created, nil
}

func (s *studentService) Balance(ctx context.Context, principal Principal, studentID string) (dto.BalanceResponse, error) {
	if err := EnsureSelfOrSuperuser(principal, studentID); err != nil {
		return dto.BalanceResponse{}, err
	}

	info, err := s.finance.ComputeFinancials(ctx, studentID)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	if info == nil {
		return dto.BalanceResponse{}, ErrStudentNotFound
	}

	return dto.BalanceResponse{
		StudentID:   studentID,
		StudentName: info.Student.StudentName,
		Course:      info.Student.Course,
		Total:       info.Total,
		Paid:        info.Paid,
		Balance:     info.Due,
		GSTPercent:  GSTPercent,
	}, nil
}

func (s *studentService) Attendance(ctx context.Context, principal Principal, studentID string) ([]dto.StudentAttendanceItem, error) {
	if err := EnsureSelfOrSuperuser(principal, studentID); err != nil {
		return nil, err
	}
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentAttendanceItems(records), nil
}

func (s *studentService) Fees(ctx context.Context, principal Principal, studentID string) ([]dto.FeeItem, error) {
	if err := EnsureSelfOrSuperuser(principal, studentID); err != nil {
		return nil, err
	}
	fees, err := s.fees.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewFeeItems(fees), nil
}
