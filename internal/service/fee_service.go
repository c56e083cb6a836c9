package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

const recentFeesLimit = 20

// FeeService records desk payments and reports fee positions.
type FeeService interface {
	Recent(ctx context.Context, principal Principal) ([]dto.FeeItem, error)
	Summary(ctx context.Context, principal Principal) (dto.FeeSummaryResponse, error)
	Record(ctx context.Context, principal Principal, req dto.RecordFeeRequest, receipt *Upload) (models.Fee, error)
}

type feeService struct {
	repo      repository.FeeRepository
	finance   FinanceService
	blobs     BlobStore
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFeeService constructs the fee service. blobs may be nil, in which case receipts are not kept.
func NewFeeService(repo repository.FeeRepository, finance FinanceService, blobs BlobStore, activity ActivityRecorder, validator *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		repo:      repo,
		finance:   finance,
		blobs:     blobs,
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "fee_service").Logger(),
	}
}

func (s *feeService) Recent(ctx context.Context, principal Principal) ([]dto.FeeItem, error) {
	fees, err := s.repo.Recent(ctx, principal.ScopeID(), recentFeesLimit)
	if err != nil {
		return nil, err
	}
	return dto.NewFeeItems(fees), nil
}

// Summary aggregates the whole ledger for the superuser and the caller's own position for a student.
func (s *feeService) Summary(ctx context.Context, principal Principal) (dto.FeeSummaryResponse, error) {
	if principal.IsSuperuser() {
		totals, err := s.repo.Totals(ctx)
		if err != nil {
			return dto.FeeSummaryResponse{}, err
		}
		due := totals.Total - totals.Paid
		if due < 0 {
			due = 0
		}
		return dto.FeeSummaryResponse{
			Total:        totals.Total,
			Paid:         totals.Paid,
			Due:          due,
			Transactions: totals.Transactions,
		}, nil
	}

	info, err := s.finance.ComputeFinancials(ctx, principal.UserID)
	if err != nil {
		return dto.FeeSummaryResponse{}, err
	}
	if info == nil {
		return dto.FeeSummaryResponse{}, nil
	}

	course := info.Student.Course
	gst := GSTPercent
	return dto.FeeSummaryResponse{
		Total:        info.Total,
		Paid:         info.Paid,
		Due:          info.Due,
		Transactions: info.Transactions,
		Course:       &course,
		GSTPercent:   &gst,
	}, nil
}

func (s *feeService) Record(ctx context.Context, principal Principal, req dto.RecordFeeRequest, receipt *Upload) (models.Fee, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return models.Fee{}, err
	}

	req.StudentID = strings.TrimSpace(req.StudentID)
	req.DueDate = strings.TrimSpace(req.DueDate)
	if err := s.validator.Struct(req); err != nil {
		return models.Fee{}, apperror.BadRequest("Invalid fee payload")
	}
	if req.AmountTotal == 0 {
		req.AmountTotal = req.AmountPaid
	}

	fee := models.Fee{
		StudentID:   req.StudentID,
		AmountTotal: req.AmountTotal,
		AmountPaid:  req.AmountPaid,
		Remarks:     strings.TrimSpace(req.Remarks),
	}
	if req.DueDate != "" {
		fee.DueDate = &req.DueDate
	}

	if receipt != nil && len(receipt.Data) > 0 && s.blobs != nil {
		ext := extension(receipt.Filename)
		if ext == "" {
			ext = "bin"
		}
		key := fmt.Sprintf("receipts/%s_%s.%s", safeName(req.StudentID), randomHex(), ext)
		if _, err := s.blobs.Put(ctx, key, receipt.Data, detectContentType(*receipt)); err != nil {
			s.logger.Error().Err(err).Str("student_id", req.StudentID).Msg("failed to store receipt")
			return models.Fee{}, err
		}
		fee.ReceiptPath = &key
	}

	if err := s.repo.Create(ctx, &fee); err != nil {
		return models.Fee{}, err
	}

	_, _ = s.activity.Record(ctx, activity.FeeRecorded{FeeID: fee.FeeID, StudentID: fee.StudentID, AmountPaid: fee.AmountPaid},
		fmt.Sprintf("Recorded fee of %.2f for %s", fee.AmountPaid, fee.StudentID), principal.UserID)

	return fee, nil
}
