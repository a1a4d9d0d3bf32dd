package repository

import (
	"context"
	"time"

	"github.com/vytor/dilvane/internal/models"
)

// ProgressRepository handles the per-user progress row.
type ProgressRepository interface {
	// Get returns the row, creating an empty one first if the user has none.
	Get(ctx context.Context, userID int64) (*models.UserProgress, error)
}

// LessonRepository records finished lessons.
type LessonRepository interface {
	// Complete stores the history record, applies the vocabulary updates and
	// advances progress in one transaction. It returns the XP earned and the
	// resulting streak.
	Complete(ctx context.Context, userID int64, req models.LessonCompletionRequest, now time.Time) (*models.LessonCompletionResponse, error)
	History(ctx context.Context, userID int64, limit int) ([]models.LessonHistory, error)
}
