package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
	"github.com/noah-isme/aviation-erp-api/pkg/razorpay"
)

// ErrGatewayNotConfigured is returned by payment operations when no gateway keys are set.
var ErrGatewayNotConfigured = apperror.Unavailable("Razorpay is not configured")

// PaymentGateway creates orders and verifies checkout signatures.
type PaymentGateway interface {
	KeyID() string
	CreateOrder(req razorpay.OrderRequest) (map[string]interface{}, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// PaymentService sizes gateway orders against the outstanding balance and records verified payments.
type PaymentService interface {
	GatewayStatus() dto.GatewayStatusResponse
	CreateOrder(ctx context.Context, principal Principal, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	Verify(ctx context.Context, principal Principal, req dto.VerifyPaymentRequest) (dto.VerifyPaymentResponse, error)
}

type paymentService struct {
	gateway   PaymentGateway
	finance   FinanceService
	fees      repository.FeeRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewPaymentService constructs the payment service. gateway is nil when payments are disabled.
func NewPaymentService(gateway PaymentGateway, finance FinanceService, fees repository.FeeRepository, activity ActivityRecorder, validator *validator.Validate, logger zerolog.Logger) PaymentService {
	return &paymentService{
		gateway:   gateway,
		finance:   finance,
		fees:      fees,
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "payment_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/aviation-erp-api/internal/service/payment"),
		now:       time.Now,
	}
}

func (s *paymentService) GatewayStatus() dto.GatewayStatusResponse {
	if s.gateway == nil {
		return dto.GatewayStatusResponse{
			Enabled:  false,
			Provider: "razorpay",
			Message:  "Razorpay keys not configured.",
		}
	}
	keyID := s.gateway.KeyID()
	return dto.GatewayStatusResponse{
		Enabled:  true,
		Provider: "razorpay",
		Message:  "Razorpay ready",
		KeyID:    &keyID,
	}
}

// CreateOrder charges the requested amount capped at the due balance, with a floor of one rupee.
func (s *paymentService) CreateOrder(ctx context.Context, principal Principal, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error) {
	if s.gateway == nil {
		return dto.CreateOrderResponse{}, ErrGatewayNotConfigured
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.CreateOrderResponse{}, apperror.BadRequest("Invalid order payload")
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		studentID = principal.UserID
	}
	if err := EnsureSelfOrSuperuser(principal, studentID); err != nil {
		return dto.CreateOrderResponse{}, err
	}

	info, err := s.finance.ComputeFinancials(ctx, studentID)
	if err != nil {
		return dto.CreateOrderResponse{}, err
	}
	if info == nil {
		return dto.CreateOrderResponse{}, ErrStudentNotFound
	}
	if info.Due <= 0 {
		return dto.CreateOrderResponse{}, apperror.BadRequest("No due amount")
	}

	requested := req.AmountINR
	if requested <= 0 {
		requested = info.Due
	}
	amountINR := math.Max(1, math.Min(requested, info.Due))

	_, span := s.tracer.Start(ctx, "razorpay.create_order", trace.WithAttributes(
		attribute.String("student.id", studentID),
		attribute.Float64("amount.inr", amountINR),
	))
	order, err := s.gateway.CreateOrder(razorpay.OrderRequest{
		Amount:         int64(math.Round(amountINR * 100)),
		Currency:       "INR",
		Receipt:        fmt.Sprintf("fee-%s-%d", studentID, s.now().UnixMilli()),
		Notes:          map[string]string{"student_id": studentID, "course": info.Student.Course},
		PaymentCapture: 1,
	})
	if err != nil {
		span.RecordError(err)
		span.End()
		s.logger.Error().Err(err).Str("student_id", studentID).Msg("razorpay order failed")
		var gatewayErr *razorpay.GatewayError
		if errors.As(err, &gatewayErr) {
			return dto.CreateOrderResponse{}, apperror.Upstream(gatewayErr.Error())
		}
		return dto.CreateOrderResponse{}, apperror.Upstream(fmt.Sprintf("Razorpay order failed: %v", err))
	}
	span.End()

	return dto.CreateOrderResponse{
		KeyID:       s.gateway.KeyID(),
		Order:       order,
		StudentID:   studentID,
		AmountINR:   amountINR,
		DueINR:      info.Due,
		StudentName: info.Student.StudentName,
	}, nil
}

// Verify checks the checkout signature, then records the payment clamped to [0, due] and issues an invoice.
func (s *paymentService) Verify(ctx context.Context, principal Principal, req dto.VerifyPaymentRequest) (dto.VerifyPaymentResponse, error) {
	if s.gateway == nil {
		return dto.VerifyPaymentResponse{}, ErrGatewayNotConfigured
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := EnsureSelfOrSuperuser(principal, req.StudentID); err != nil {
		return dto.VerifyPaymentResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.VerifyPaymentResponse{}, apperror.BadRequest("Invalid payment payload")
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logger.Warn().Str("student_id", req.StudentID).Str("order_id", req.RazorpayOrderID).Msg("payment signature mismatch")
		return dto.VerifyPaymentResponse{}, apperror.BadRequest("Invalid payment signature")
	}

	info, err := s.finance.ComputeFinancials(ctx, req.StudentID)
	if err != nil {
		return dto.VerifyPaymentResponse{}, err
	}
	if info == nil {
		return dto.VerifyPaymentResponse{}, ErrStudentNotFound
	}

	amountPaid := math.Min(math.Max(req.AmountPaidINR, 0), info.Due)
	fee := models.Fee{
		StudentID:   req.StudentID,
		AmountTotal: info.Total,
		AmountPaid:  amountPaid,
		Remarks:     fmt.Sprintf("Razorpay payment_id=%s, order_id=%s", req.RazorpayPaymentID, req.RazorpayOrderID),
	}
	if err := s.fees.Create(ctx, &fee); err != nil {
		return dto.VerifyPaymentResponse{}, err
	}

	_, _ = s.activity.Record(ctx, activity.FeeRecorded{FeeID: fee.FeeID, StudentID: fee.StudentID, AmountPaid: amountPaid},
		fmt.Sprintf("Online payment of %.2f for %s", amountPaid, fee.StudentID), principal.UserID)

	return dto.VerifyPaymentResponse{
		Status:        "ok",
		Message:       "Payment verified and recorded",
		AmountPaidINR: amountPaid,
		Invoice: dto.Invoice{
			InvoiceNo:   fmt.Sprintf("AAI-INV-%d", fee.FeeID),
			Date:        s.now().UTC().Format(time.DateOnly),
			StudentID:   req.StudentID,
			StudentName: info.Student.StudentName,
			Course:      info.Student.Course,
			PaymentID:   req.RazorpayPaymentID,
			OrderID:     req.RazorpayOrderID,
			AmountPaid:  amountPaid,
			AmountTotal: info.Total,
			BalanceDue:  math.Max(info.Due-amountPaid, 0),
		},
	}, nil
}
