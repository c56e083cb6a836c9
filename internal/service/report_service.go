package service

import (
	"context"

	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const feedItemLimit = 5

// ReportService builds the dashboard summary and the per-user feed.
type ReportService interface {
	Summary(ctx context.Context, principal Principal) (dto.ReportSummaryResponse, error)
	Feed(ctx context.Context, principal Principal) (dto.FeedResponse, error)
}

type reportService struct {
	students      repository.StudentRepository
	fees          repository.FeeRepository
	attendance    repository.AttendanceRepository
	feeService    FeeService
	announcements AnnouncementService
	notifications NotificationService
	schedule      ScheduleService
}

// NewReportService constructs the report service from the services whose views it combines.
func NewReportService(
	students repository.StudentRepository,
	fees repository.FeeRepository,
	attendance repository.AttendanceRepository,
	feeService FeeService,
	announcements AnnouncementService,
	notifications NotificationService,
	schedule ScheduleService,
) ReportService {
	return &reportService{
		students:      students,
		fees:          fees,
		attendance:    attendance,
		feeService:    feeService,
		announcements: announcements,
		notifications: notifications,
		schedule:      schedule,
	}
}

func (s *reportService) Summary(ctx context.Context, principal Principal) (dto.ReportSummaryResponse, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return dto.ReportSummaryResponse{}, err
	}

	students, err := s.students.Count(ctx)
	if err != nil {
		return dto.ReportSummaryResponse{}, err
	}
	totals, err := s.fees.Totals(ctx)
	if err != nil {
		return dto.ReportSummaryResponse{}, err
	}
	counts, err := s.attendance.Counts(ctx)
	if err != nil {
		return dto.ReportSummaryResponse{}, err
	}

	return dto.ReportSummaryResponse{
		Students:          students,
		FeesTotal:         totals.Total,
		FeesPaid:          totals.Paid,
		FeesBalance:       totals.Total - totals.Paid,
		AttendancePresent: counts.Present,
		AttendanceAbsent:  counts.Absent,
	}, nil
}

func (s *reportService) Feed(ctx context.Context, principal Principal) (dto.FeedResponse, error) {
	summary, err := s.feeService.Summary(ctx, principal)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	announcements, err := s.announcements.List(ctx, feedItemLimit)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	views, err := s.notifications.List(ctx, principal, feedItemLimit)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	interviews, err := s.schedule.Interviews(ctx, principal)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	if len(interviews) > feedItemLimit {
		interviews = interviews[:feedItemLimit]
	}

	notifications := make([]dto.FeedNotification, 0, len(views))
	for _, view := range views {
		notifications = append(notifications, dto.FeedNotification{
			NotificationID: view.NotificationID,
			Title:          view.Title,
			Message:        view.Message,
			Level:          view.Level,
			CreatedAt:      view.CreatedAt,
		})
	}

	return dto.FeedResponse{
		Fees: dto.FeedFees{
			Total:        summary.Total,
			Due:          summary.Due,
			Transactions: summary.Transactions,
		},
		Announcements: announcements,
		Notifications: notifications,
		Interviews:    interviews,
	}, nil
}
