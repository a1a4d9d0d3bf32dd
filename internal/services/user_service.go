package services

import (
	"context"
	"strings"

	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

// UserService handles the learner's settings
type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetSettings(ctx context.Context, id int64) (*models.Settings, error)
	// UpdateSettings changes the non-empty fields of settings.
	UpdateSettings(ctx context.Context, id int64, settings models.Settings) (*models.Settings, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) GetSettings(ctx context.Context, id int64) (*models.Settings, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Settings{NativeLanguage: user.NativeLanguage, CEFRLevel: user.CEFRLevel}, nil
}

func (s *userService) UpdateSettings(ctx context.Context, id int64, in models.Settings) (*models.Settings, error) {
	log := logger.FromContext(ctx)

	current, err := s.GetSettings(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if lang := strings.TrimSpace(in.NativeLanguage); lang != "" {
		if !models.IsSupportedLanguage(lang) {
			return nil, errors.NewValidationError("native_language", "unsupported language")
		}
		next.NativeLanguage = lang
	}
	if level := strings.ToUpper(strings.TrimSpace(in.CEFRLevel)); level != "" {
		if _, ok := models.LookupCEFR(level); !ok {
			return nil, errors.NewValidationError("cefr_level", "must be one of A1, A2, B1, B2, C1, C2")
		}
		next.CEFRLevel = level
	}

	if err := s.users.UpdateSettings(ctx, id, next); err != nil {
		log.Error("failed to update settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("settings updated: user_id=%d, language=%s, level=%s", id, next.NativeLanguage, next.CEFRLevel)
	return &next, nil
}
