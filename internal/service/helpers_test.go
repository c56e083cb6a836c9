package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
	"github.com/noah-isme/aviation-erp-api/pkg/mailer"
	"github.com/noah-isme/aviation-erp-api/pkg/razorpay"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

var superuser = NewPrincipal("superuser", "root-token")

type memoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryBlobStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	m.types[key] = contentType
	return "memory://" + key, nil
}

type stubGateway struct {
	orders []razorpay.OrderRequest
	err    error
	secret string
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

func (g *stubGateway) CreateOrder(req razorpay.OrderRequest) (map[string]interface{}, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.orders = append(g.orders, req)
	return map[string]interface{}{"id": "order_test", "amount": req.Amount}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.Signature(g.secret, orderID, paymentID) == signature
}

type stubMailer struct {
	sent []mailer.Message
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "email-1", nil
}

// fixture wires every service against one in-memory database.
type fixture struct {
	db            *gorm.DB
	blobs         *memoryBlobStore
	gateway       *stubGateway
	mailer        *stubMailer
	logs          repository.ActivityLogRepository
	students      repository.StudentRepository
	fees          repository.FeeRepository
	sessions      repository.SessionRepository
	attendanceRep repository.AttendanceRepository
	comms         repository.CommunicationRepository

	activity      ActivityService
	auth          AuthService
	finance       FinanceService
	student       StudentService
	attendance    AttendanceService
	fee           FeeService
	payment       PaymentService
	schedule      ScheduleService
	announcements AnnouncementService
	notifications NotificationService
	reports       ReportService
	admissions    AdmissionService
	undo          UndoService
}

type fixtureOptions struct {
	cache      *redis.Client
	noGateway  bool
	courseFees map[string]float64
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	courseFees := opts.courseFees
	if courseFees == nil {
		courseFees = map[string]float64{"ground operations": 150000, "cabin crew": 250000}
	}

	v := validator.New()
	logger := testLogger()

	f := &fixture{
		db:            db,
		blobs:         newMemoryBlobStore(),
		gateway:       &stubGateway{secret: "rzp_secret"},
		mailer:        &stubMailer{},
		logs:          repository.NewActivityLogRepository(db),
		students:      repository.NewStudentRepository(db),
		fees:          repository.NewFeeRepository(db),
		sessions:      repository.NewSessionRepository(db),
		attendanceRep: repository.NewAttendanceRepository(db),
		comms:         repository.NewCommunicationRepository(db),
	}
	schedules := repository.NewScheduleRepository(db)

	f.activity = NewActivityService(f.logs, v, logger)
	f.auth = NewAuthService(f.sessions, f.students, f.activity, v, AuthConfig{
		SessionTimeout:    300 * time.Second,
		SuperuserPassword: "qwerty",
		HashCost:          bcrypt.MinCost,
	}, logger)
	f.finance = NewFinanceService(f.students, f.fees, courseFees)
	f.student = NewStudentService(f.students, f.attendanceRep, f.fees, f.finance, f.auth, f.activity, v, logger)
	f.attendance = NewAttendanceService(f.attendanceRep, f.blobs, f.activity, v, logger)
	f.fee = NewFeeService(f.fees, f.finance, f.blobs, f.activity, v, logger)

	var gateway PaymentGateway
	if !opts.noGateway {
		gateway = f.gateway
	}
	f.payment = NewPaymentService(gateway, f.finance, f.fees, f.activity, v, logger)
	f.schedule = NewScheduleService(schedules, f.students, f.attendanceRep, f.activity, v, logger)
	f.announcements = NewAnnouncementService(f.comms, opts.cache, time.Minute, f.activity, v, logger)
	f.notifications = NewNotificationService(f.comms, f.activity, v, logger)
	f.reports = NewReportService(f.students, f.fees, f.attendanceRep, f.fee, f.announcements, f.notifications, f.schedule)
	f.admissions = NewAdmissionService(repository.NewAdmissionRepository(db), f.finance, f.blobs, f.mailer, "office@example.com", f.activity, v, logger)
	f.undo = NewUndoService(f.logs, repository.NewUndoRepository(db), f.activity, f.announcements, logger)

	return f
}

func (f *fixture) lastActivity(t *testing.T) uint {
	t.Helper()
	entries, _, err := f.logs.List(context.Background(), repository.ActivityLogFilter{PageSize: 1})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return entries[0].ID
}

func statusOf(err error) int {
	return apperror.StatusOf(err)
}
