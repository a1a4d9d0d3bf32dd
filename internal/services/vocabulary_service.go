package services

import (
	"context"
	"strings"

	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

// VocabularyService handles the learner's word list and notes
type VocabularyService interface {
	ListWords(ctx context.Context, userID int64) ([]models.VocabularyItem, error)
	AddWord(ctx context.Context, userID int64, turkish, translation string) (*models.VocabularyItem, error)
	DeleteWord(ctx context.Context, userID, id int64) error
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
	AddNote(ctx context.Context, userID int64, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, id int64) error
}

type vocabularyService struct {
	words repository.VocabularyRepository
	notes repository.NoteRepository
}

// NewVocabularyService creates a new VocabularyService
func NewVocabularyService(words repository.VocabularyRepository, notes repository.NoteRepository) VocabularyService {
	return &vocabularyService{words: words, notes: notes}
}

func (s *vocabularyService) ListWords(ctx context.Context, userID int64) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing words: user_id=%d", userID)

	words, err := s.words.List(ctx, models.VocabularyFilter{UserID: userID})
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *vocabularyService) AddWord(ctx context.Context, userID int64, turkish, translation string) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx)

	turkish = strings.TrimSpace(turkish)
	translation = strings.TrimSpace(translation)
	if turkish == "" {
		return nil, errors.NewValidationError("turkish", "cannot be empty")
	}
	if translation == "" {
		return nil, errors.NewValidationError("translation", "cannot be empty")
	}

	item := models.VocabularyItem{UserID: userID, Turkish: turkish, Translation: translation}
	id, err := s.words.Insert(ctx, item)
	if err != nil {
		log.Error("failed to add word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	item.ID = id
	log.Info("word added: user_id=%d, id=%d", userID, id)
	return &item, nil
}

func (s *vocabularyService) DeleteWord(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	ok, err := s.words.Delete(ctx, userID, id)
	if err != nil {
		log.Error("failed to delete word: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("word", id)
	}
	return nil
}

func (s *vocabularyService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	notes, err := s.notes.List(ctx, userID, 0)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list notes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return notes, nil
}

func (s *vocabularyService) AddNote(ctx context.Context, userID int64, content string) (*models.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.NewValidationError("content", "cannot be empty")
	}

	note := models.Note{UserID: userID, Content: content}
	id, err := s.notes.Insert(ctx, note)
	if err != nil {
		logger.FromContext(ctx).Error("failed to add note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	note.ID = id
	return &note, nil
}

func (s *vocabularyService) DeleteNote(ctx context.Context, userID, id int64) error {
	ok, err := s.notes.Delete(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete note: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("note", id)
	}
	return nil
}
