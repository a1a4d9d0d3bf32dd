package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dilvane/internal/grading"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/mastery"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/progress"
	"github.com/vytor/dilvane/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func scanProgress(row interface{ Scan(...any) error }) (*models.UserProgress, error) {
	var p models.UserProgress
	var lastDate sql.NullString
	if err := row.Scan(&p.UserID, &p.CurrentStreak, &p.LongestStreak, &p.TotalLessons, &p.TotalWordsLearned,
		&p.XPPoints, &p.Level, &lastDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if lastDate.Valid && lastDate.String != "" {
		day, err := progress.ParseDay(lastDate.String)
		if err != nil {
			return nil, err
		}
		p.LastLessonDate = &day
	}
	return &p, nil
}

func (r *progressRepository) Get(ctx context.Context, userID int64) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d", userID)

	p, err := scanProgress(r.db.QueryRowContext(ctx, `
INSERT INTO user_progress (user_id) VALUES (?)
ON CONFLICT(user_id) DO UPDATE SET user_id = excluded.user_id
RETURNING user_id, current_streak, longest_streak, total_lessons, total_words_learned,
          xp_points, level, last_lesson_date, created_at, updated_at
`, userID))
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return p, nil
}

type lessonRepository struct {
	db *sql.DB
}

func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

// advanceProgressSQL applies one lesson to the stored row. Every right-hand
// side reads the row as it was before the update, so the streak CASE is the
// same expression in current_streak and longest_streak.
const advanceProgressSQL = `
INSERT INTO user_progress (user_id, current_streak, longest_streak, total_lessons, xp_points, level, last_lesson_date)
VALUES (?, 1, 1, 1, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    current_streak = CASE
        WHEN user_progress.last_lesson_date = excluded.last_lesson_date THEN user_progress.current_streak
        WHEN user_progress.last_lesson_date = ? THEN user_progress.current_streak + 1
        ELSE 1
    END,
    longest_streak = MAX(user_progress.longest_streak, CASE
        WHEN user_progress.last_lesson_date = excluded.last_lesson_date THEN user_progress.current_streak
        WHEN user_progress.last_lesson_date = ? THEN user_progress.current_streak + 1
        ELSE 1
    END),
    total_lessons = user_progress.total_lessons + 1,
    xp_points = user_progress.xp_points + excluded.xp_points,
    level = (user_progress.xp_points + excluded.xp_points) / ? + 1,
    last_lesson_date = excluded.last_lesson_date,
    updated_at = CURRENT_TIMESTAMP
RETURNING current_streak
`

func (r *lessonRepository) Complete(ctx context.Context, userID int64, req models.LessonCompletionRequest, now time.Time) (*models.LessonCompletionResponse, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("completing lesson: user_id=%d, correct=%d/%d, updates=%d",
		userID, req.CorrectAnswers, req.TotalQuestions, len(req.VocabularyUpdates))

	attempts := req.Exercises
	if attempts == nil {
		attempts = []models.LessonAttempt{}
	}
	exercisesJSON, err := json.Marshal(attempts)
	if err != nil {
		return nil, err
	}

	xp := progress.XPEarned(req.CorrectAnswers, req.TotalQuestions)
	today := progress.FormatDay(now)
	yesterday := progress.FormatDay(progress.Day(now).AddDate(0, 0, -1))

	resp := &models.LessonCompletionResponse{Success: true, XPEarned: xp}
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO lesson_history (user_id, total_questions, correct_answers, exercises, completed_at)
VALUES (?, ?, ?, ?, ?)
`, userID, req.TotalQuestions, req.CorrectAnswers, string(exercisesJSON), now.UTC()); err != nil {
			return err
		}

		for _, u := range req.VocabularyUpdates {
			words, err := findWordsTx(ctx, tx, userID, grading.Normalize(u.Word))
			if err != nil {
				return err
			}
			if len(words) == 0 {
				log.Warn("skipping mastery update for unknown word: user_id=%d, word=%q", userID, u.Word)
				continue
			}
			// Duplicate entries of a word all move together.
			for _, word := range words {
				updated := mastery.Apply(word, u.IsCorrect, now)
				if err := updateWordTx(ctx, tx, updated); err != nil {
					return err
				}
				log.Debug("mastery updated: word_id=%d, word=%s, %d -> %d", word.ID, word.Turkish, word.MasteryLevel, updated.MasteryLevel)
			}
		}

		return tx.QueryRowContext(ctx, advanceProgressSQL,
			userID, xp, progress.Level(xp), today, yesterday, yesterday, progress.XPPerLevel,
		).Scan(&resp.NewStreak)
	})
	if err != nil {
		log.Error("failed to complete lesson: %v", err)
		return nil, err
	}

	log.Info("lesson completed: user_id=%d, xp=%d, streak=%d", userID, resp.XPEarned, resp.NewStreak)
	return resp, nil
}

func (r *lessonRepository) History(ctx context.Context, userID int64, limit int) ([]models.LessonHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lesson history: user_id=%d, limit=%d", userID, limit)

	query := sqlBuilder.Select("id", "user_id", "total_questions", "correct_answers", "exercises", "completed_at").
		From("lesson_history").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("completed_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list lesson history: %v", err)
		return nil, err
	}
	defer rows.Close()

	history := []models.LessonHistory{}
	for rows.Next() {
		var h models.LessonHistory
		var exercises string
		if err := rows.Scan(&h.ID, &h.UserID, &h.TotalQuestions, &h.CorrectAnswers, &exercises, &h.CompletedAt); err != nil {
			log.Error("failed to scan lesson history row: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(exercises), &h.Exercises); err != nil {
			log.Warn("lesson %d has unreadable exercises: %v", h.ID, err)
			h.Exercises = []models.LessonAttempt{}
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
