package services

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// AuthService handles accounts and login sessions
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, *models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	SignOut(ctx context.Context, token string) error
	// Authenticate resolves a session token to its user. Unknown or expired
	// tokens are an UNAUTHORIZED error.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type AuthConfig struct {
	SessionTTL time.Duration
	BcryptCost int
}

func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		SessionTTL: 30 * 24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	progress repository.ProgressRepository
	config   AuthConfig
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, progress repository.ProgressRepository, cfg AuthConfig) AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultAuthConfig().SessionTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, sessions: sessions, progress: progress, config: cfg, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*models.User, *models.Session, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)
	log.Debug("signing up: email=%s", email)

	if email == "" {
		return nil, nil, errors.NewValidationError("email", "cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, errors.NewValidationError("email", "is not a valid address")
	}
	if len(password) < MinPasswordLength {
		return nil, nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}

	user := models.User{
		Email:          email,
		Name:           strings.TrimSpace(name),
		PasswordHash:   string(hash),
		NativeLanguage: models.DefaultNativeLanguage,
		CEFRLevel:      models.DefaultCEFRLevel,
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, nil, errors.NewConflictError("an account with this email already exists")
		}
		log.Error("failed to create user: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	user.ID = id
	user.CreatedAt = s.now()

	if _, err := s.progress.Get(ctx, id); err != nil {
		log.Warn("failed to create progress for user %d: %v", id, err)
	}

	session, err := s.startSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user signed up: id=%d", id)
	return &user, session, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)
	log.Debug("signing in: email=%s", email)

	if email == "" || password == "" {
		return nil, nil, errors.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Debug("invalid credentials for %s", email)
		return nil, nil, errors.NewUnauthorizedError("invalid email or password")
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) startSession(ctx context.Context, userID int64) (*models.Session, error) {
	now := s.now()
	session := models.Session{
		Token:     uuid.NewString() + "-" + uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.config.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		logger.FromContext(ctx).Error("failed to create session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &session, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		logger.FromContext(ctx).Error("failed to delete session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return nil, errors.NewUnauthorizedError("please sign in")
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil || !session.ExpiresAt.After(s.now()) {
		return nil, errors.NewUnauthorizedError("please sign in")
	}

	user, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("please sign in")
	}
	return user, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.FromContext(ctx).Error("failed to purge sessions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}
