package repository

import (
	"context"

	"github.com/vytor/dilvane/internal/models"
)

// VocabularyRepository handles a learner's word list.
type VocabularyRepository interface {
	List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, error)
	// Insert adds the word and bumps the owner's words-learned counter atomically.
	Insert(ctx context.Context, item models.VocabularyItem) (int64, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	Stats(ctx context.Context, userID int64) (models.MasteryStats, error)
}

// NoteRepository handles free-text learning notes.
type NoteRepository interface {
	List(ctx context.Context, userID int64, limit int) ([]models.Note, error)
	Insert(ctx context.Context, note models.Note) (int64, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
