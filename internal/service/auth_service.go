package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/observability"
	"github.com/noah-isme/aviation-erp-api/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
var ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")

const studentPasswordDigits = 8

// AuthConfig tunes session lifetime and credential hashing.
type AuthConfig struct {
	SessionTimeout    time.Duration
	SuperuserPassword string
	HashCost          int
}

// AuthService authenticates bearer tokens, issues sessions and provisions credentials.
type AuthService interface {
	Authenticate(ctx context.Context, authorization string) (Principal, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, principal Principal) error
	Me(ctx context.Context, principal Principal) (dto.MeResponse, error)
	Bootstrap(ctx context.Context, actor string) ([]dto.ProvisionedCredential, error)
}

type authService struct {
	sessions  repository.SessionRepository
	students  repository.StudentRepository
	activity  ActivityRecorder
	validator *validator.Validate
	cfg       AuthConfig
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the session gate.
func NewAuthService(
	sessions repository.SessionRepository,
	students repository.StudentRepository,
	activity ActivityRecorder,
	validator *validator.Validate,
	cfg AuthConfig,
	logger zerolog.Logger,
) AuthService {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = 300 * time.Second
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &authService{
		sessions:  sessions,
		students:  students,
		activity:  activity,
		validator: validator,
		cfg:       cfg,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Authenticate resolves a "Bearer <token>" header and slides the session's expiry forward.
func (s *authService) Authenticate(ctx context.Context, authorization string) (Principal, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		observability.AuthFailures().WithLabelValues("missing_bearer").Inc()
		return Principal{}, apperror.Unauthorized("")
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return Principal{}, err
	}

	now := s.now().Unix()
	if session == nil || session.ExpiresAt <= now {
		observability.AuthFailures().WithLabelValues("session_expired").Inc()
		return Principal{}, apperror.SessionExpired()
	}

	if err := s.sessions.UpdateExpiry(ctx, token, now+s.timeoutSeconds()); err != nil {
		return Principal{}, err
	}

	return NewPrincipal(session.UserID, token), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := s.validator.Struct(req); err != nil {
		observability.AuthFailures().WithLabelValues("invalid_request").Inc()
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	// Student credentials are provisioned only where the plaintext reaches the superuser.
	if err := s.ensureSuperuser(ctx); err != nil {
		return dto.LoginResponse{}, err
	}

	credential, err := s.sessions.FindCredential(ctx, req.Username)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if credential == nil || bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)) != nil {
		observability.AuthFailures().WithLabelValues("invalid_credentials").Inc()
		s.logger.Warn().Str("username", req.Username).Msg("rejected login")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	session := models.Session{
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:    credential.Username,
		ExpiresAt: s.now().Unix() + s.timeoutSeconds(),
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.LoginResponse{}, err
	}

	principal := NewPrincipal(session.UserID, session.Token)
	s.logger.Info().Str("user_id", principal.UserID).Str("role", principal.Role).Msg("session issued")

	return dto.LoginResponse{
		Status:    "ok",
		Token:     session.Token,
		Role:      principal.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, principal Principal) error {
	if principal.Token == "" {
		return apperror.Unauthorized("")
	}
	return s.sessions.Delete(ctx, principal.Token)
}

func (s *authService) Me(ctx context.Context, principal Principal) (dto.MeResponse, error) {
	response := dto.MeResponse{Status: "ok", User: principal.UserID, Role: principal.Role}
	if principal.IsSuperuser() {
		return response, nil
	}

	student, err := s.students.Get(ctx, principal.UserID)
	if err != nil {
		return dto.MeResponse{}, err
	}

	var name, firstName, course, batch string
	if student != nil {
		name = student.StudentName
		course = student.Course
		batch = student.Batch
		if fields := strings.Fields(name); len(fields) > 0 {
			firstName = fields[0]
		}
	}
	response.StudentName = &name
	response.FirstName = &firstName
	response.Course = &course
	response.Batch = &batch
	return response, nil
}

// Bootstrap makes sure the superuser and every student whose id contains a digit has a credential.
// Existing credentials are never modified. Newly created student passwords are returned once.
func (s *authService) Bootstrap(ctx context.Context, actor string) ([]dto.ProvisionedCredential, error) {
	if err := s.ensureSuperuser(ctx); err != nil {
		return nil, err
	}

	ids, err := s.sessions.StudentIDsWithoutCredential(ctx)
	if err != nil {
		return nil, err
	}

	provisioned := make([]dto.ProvisionedCredential, 0)
	for _, id := range ids {
		if !containsDigit(id) {
			continue
		}

		password, err := randomDigits(studentPasswordDigits)
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.HashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", id, err)
		}

		inserted, err := s.sessions.InsertCredentialIfAbsent(ctx, &models.Credential{
			Username:     id,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			provisioned = append(provisioned, dto.ProvisionedCredential{Username: id, Password: password})
		}
	}

	if len(provisioned) > 0 {
		usernames := make([]string, 0, len(provisioned))
		for _, item := range provisioned {
			usernames = append(usernames, item.Username)
		}
		s.logger.Info().Strs("usernames", usernames).Msg("student credentials provisioned")
		if s.activity != nil {
			_, _ = s.activity.Record(ctx, activity.CredentialsBootstrapped{Usernames: usernames},
				fmt.Sprintf("Provisioned %d student credential(s)", len(usernames)), actor)
		}
	}

	return provisioned, nil
}

// ensureSuperuser seeds the superuser credential from configuration when it is missing.
func (s *authService) ensureSuperuser(ctx context.Context) error {
	existing, err := s.sessions.FindCredential(ctx, models.SuperuserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SuperuserPassword), s.cfg.HashCost)
	if err != nil {
		return fmt.Errorf("hash superuser password: %w", err)
	}
	_, err = s.sessions.InsertCredentialIfAbsent(ctx, &models.Credential{
		Username:     models.SuperuserID,
		PasswordHash: string(hash),
		Role:         models.RoleSuperuser,
	})
	return err
}

func (s *authService) timeoutSeconds() int64 {
	return int64(s.cfg.SessionTimeout / time.Second)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func containsDigit(value string) bool {
	return strings.IndexFunc(value, unicode.IsDigit) >= 0
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		digit, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errors.Join(errors.New("generate password"), err)
		}
		b.WriteByte(byte('0' + digit.Int64()))
	}
	return b.String(), nil
}
