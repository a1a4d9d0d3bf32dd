package services

import (
	"context"

	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/progress"
	"github.com/vytor/dilvane/internal/repository"
)

const HistoryLimit = 10

// ProgressService reports streaks, XP, achievements and past lessons
type ProgressService interface {
	Overview(ctx context.Context, userID int64) (*models.ProgressOverview, error)
	History(ctx context.Context, userID int64) ([]models.LessonHistory, error)
}

type progressService struct {
	progress repository.ProgressRepository
	words    repository.VocabularyRepository
	lessons  repository.LessonRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progress repository.ProgressRepository, words repository.VocabularyRepository, lessons repository.LessonRepository) ProgressService {
	return &progressService{progress: progress, words: words, lessons: lessons}
}

func (s *progressService) Overview(ctx context.Context, userID int64) (*models.ProgressOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("building progress overview: user_id=%d", userID)

	p, err := s.progress.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats, err := s.words.Stats(ctx, userID)
	if err != nil {
		log.Error("failed to get mastery stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	overview := progress.Overview(*p, stats)
	return &overview, nil
}

func (s *progressService) History(ctx context.Context, userID int64) ([]models.LessonHistory, error) {
	history, err := s.lessons.History(ctx, userID, HistoryLimit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get lesson history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}
