package service

import (
	"context"
	"math"
	"strings"

	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

// GSTPercent is reported alongside every balance.
const GSTPercent = 18

// Financials is a student's fee position.
type Financials struct {
	Student      models.Student
	Total        float64
	Paid         float64
	Due          float64
	Transactions int64
}

// FinanceService derives totals, payments and dues from course pricing and the fee ledger.
type FinanceService interface {
	ComputeFinancials(ctx context.Context, studentID string) (*Financials, error)
	CourseFee(course string) (float64, bool)
	Courses() map[string]float64
}

type financeService struct {
	students repository.StudentRepository
	fees     repository.FeeRepository
	courses  map[string]float64
}

// NewFinanceService constructs the aggregator. courseFees is keyed by lower-cased course name.
func NewFinanceService(students repository.StudentRepository, fees repository.FeeRepository, courseFees map[string]float64) FinanceService {
	courses := make(map[string]float64, len(courseFees))
	for name, amount := range courseFees {
		courses[strings.ToLower(strings.TrimSpace(name))] = amount
	}
	return &financeService{students: students, fees: fees, courses: courses}
}

// ComputeFinancials returns nil without error when the student does not exist.
func (s *financeService) ComputeFinancials(ctx context.Context, studentID string) (*Financials, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}

	totals, err := s.fees.StudentTotals(ctx, studentID)
	if err != nil {
		return nil, err
	}

	total := totals.MaxTotal
	if planned, ok := s.CourseFee(student.Course); ok {
		total = planned
	}

	return &Financials{
		Student:      *student,
		Total:        total,
		Paid:         totals.Paid,
		Due:          math.Max(total-totals.Paid, 0),
		Transactions: totals.Transactions,
	}, nil
}

func (s *financeService) CourseFee(course string) (float64, bool) {
	amount, ok := s.courses[strings.ToLower(strings.TrimSpace(course))]
	return amount, ok
}

func (s *financeService) Courses() map[string]float64 {
	out := make(map[string]float64, len(s.courses))
	for name, amount := range s.courses {
		out[name] = amount
	}
	return out
}
