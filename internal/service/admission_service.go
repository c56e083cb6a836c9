package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
	"github.com/noah-isme/aviation-erp-api/pkg/mailer"
)

const (
	admissionsListLimit  = 100
	maxAdmissionDocument = 5 << 20
	publicActor          = "public"
)

// Mailer sends outbound email.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// AdmissionService accepts public applications and lists them for the office.
type AdmissionService interface {
	Apply(ctx context.Context, req dto.AdmissionRequest, document *Upload) (models.Admission, error)
	List(ctx context.Context, principal Principal) ([]models.Admission, error)
	Courses() []dto.CourseItem
}

type admissionService struct {
	repo      repository.AdmissionRepository
	finance   FinanceService
	blobs     BlobStore
	mailer    Mailer
	inbox     string
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewAdmissionService constructs the admission service. blobs and mailer may be nil.
func NewAdmissionService(
	repo repository.AdmissionRepository,
	finance FinanceService,
	blobs BlobStore,
	mailer Mailer,
	inbox string,
	activity ActivityRecorder,
	validator *validator.Validate,
	logger zerolog.Logger,
) AdmissionService {
	return &admissionService{
		repo:      repo,
		finance:   finance,
		blobs:     blobs,
		mailer:    mailer,
		inbox:     strings.TrimSpace(inbox),
		activity:  activity,
		validator: validator,
		logger:    logger.With().Str("component", "admission_service").Logger(),
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// Apply stores the application and notifies the admissions inbox. Email failures are logged, never returned.
func (s *admissionService) Apply(ctx context.Context, req dto.AdmissionRequest, document *Upload) (models.Admission, error) {
	req.FullName = strings.TrimSpace(s.policy.Sanitize(req.FullName))
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(s.policy.Sanitize(req.Phone))
	req.Course = strings.TrimSpace(s.policy.Sanitize(req.Course))
	req.Message = strings.TrimSpace(s.policy.Sanitize(req.Message))
	if err := s.validator.Struct(req); err != nil {
		return models.Admission{}, apperror.BadRequest(err.Error())
	}

	if document != nil && len(document.Data) == 0 {
		document = nil
	}
	if document != nil {
		if len(document.Data) > maxAdmissionDocument {
			return models.Admission{}, apperror.BadRequest("Document must be 5 MB or smaller")
		}
		if !isPDF(document.Data) {
			return models.Admission{}, apperror.BadRequest("Document must be a PDF")
		}
	}

	admission := models.Admission{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Course:   req.Course,
		Message:  req.Message,
		Status:   models.AdmissionStatusSubmitted,
	}

	if document != nil && s.blobs != nil {
		name := document.Filename
		if name == "" {
			name = "document.pdf"
		}
		key := fmt.Sprintf("admissions/%d_%s", s.now().UnixMilli(), safeName(name))
		if _, err := s.blobs.Put(ctx, key, document.Data, "application/pdf"); err != nil {
			s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to store admission document")
			return models.Admission{}, err
		}
		admission.DocumentKey = &key
	}

	if err := s.repo.Create(ctx, &admission); err != nil {
		return models.Admission{}, err
	}

	_, _ = s.activity.Record(ctx, activity.AdmissionSubmitted{AdmissionID: admission.AdmissionID, Email: admission.Email},
		fmt.Sprintf("Admission application from %s", admission.FullName), publicActor)

	s.notify(ctx, admission, document)
	return admission, nil
}

func (s *admissionService) notify(ctx context.Context, admission models.Admission, document *Upload) {
	if s.mailer == nil || s.inbox == "" {
		observability.EmailDeliveries().WithLabelValues("skipped").Inc()
		return
	}

	msg := mailer.Message{
		To:      []string{s.inbox},
		ReplyTo: admission.Email,
		Subject: fmt.Sprintf("New admission application: %s", admission.FullName),
		HTML:    admissionEmailHTML(admission),
	}
	if document != nil {
		name := document.Filename
		if name == "" {
			name = "document.pdf"
		}
		msg.Attachments = []mailer.Attachment{{Filename: name, ContentType: "application/pdf", Content: document.Data}}
	}

	if _, err := s.mailer.Send(ctx, msg); err != nil {
		observability.EmailDeliveries().WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Uint("admission_id", admission.AdmissionID).Msg("admission email failed")
		return
	}
	observability.EmailDeliveries().WithLabelValues("sent").Inc()
}

func admissionEmailHTML(admission models.Admission) string {
	var b strings.Builder
	b.WriteString("<h2>New admission application</h2><ul>")
	for _, field := range [][2]string{
		{"Name", admission.FullName},
		{"Email", admission.Email},
		{"Phone", admission.Phone},
		{"Course", admission.Course},
	} {
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>", field[0], html.EscapeString(field[1]))
	}
	b.WriteString("</ul>")
	if admission.Message != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(admission.Message))
	}
	return b.String()
}

func (s *admissionService) List(ctx context.Context, principal Principal) ([]models.Admission, error) {
	if err := EnsureSuperuser(principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, admissionsListLimit)
}

// Courses lists the priced courses, sorted by name.
func (s *admissionService) Courses() []dto.CourseItem {
	courses := s.finance.Courses()
	items := make([]dto.CourseItem, 0, len(courses))
	for name, fee := range courses {
		items = append(items, dto.CourseItem{Name: titleCase(name), FeeINR: fee, GSTPercent: GSTPercent})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
