package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dilvane/internal/grading"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

type vocabularyRepository struct {
	db *sql.DB
}

func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

var vocabularyColumns = []string{
	"id", "user_id", "turkish", "translation", "mastery_level", "times_practiced",
	"times_correct", "last_practiced_at", "created_at", "updated_at",
}

func scanVocabulary(row interface{ Scan(...any) error }) (models.VocabularyItem, error) {
	var v models.VocabularyItem
	var lastPracticed sql.NullTime
	err := row.Scan(&v.ID, &v.UserID, &v.Turkish, &v.Translation, &v.MasteryLevel, &v.TimesPracticed,
		&v.TimesCorrect, &lastPracticed, &v.CreatedAt, &v.UpdatedAt)
	v.LastPracticedAt = timePtr(lastPracticed)
	return v, err
}

func (r *vocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("listing vocabulary: user_id=%d, practice_order=%t, limit=%d", filter.UserID, filter.PracticeOrder, filter.Limit)

	query := sqlBuilder.Select(vocabularyColumns...).
		From("vocabulary").
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.PracticeOrder {
		// SQLite sorts NULLs first in ascending order, so unpracticed words lead.
		query = query.OrderBy("mastery_level ASC", "last_practiced_at ASC", "id ASC")
	} else {
		query = query.OrderBy("created_at DESC", "id DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list vocabulary: %v", err)
		return nil, err
	}
	defer rows.Close()

	words := []models.VocabularyItem{}
	for rows.Next() {
		v, err := scanVocabulary(rows)
		if err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		words = append(words, v)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *vocabularyRepository) Insert(ctx context.Context, v models.VocabularyItem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("inserting word: user_id=%d, turkish=%s", v.UserID, v.Turkish)

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO vocabulary (user_id, turkish, turkish_key, translation, mastery_level)
VALUES (?, ?, ?, ?, ?)
`, v.UserID, v.Turkish, grading.Normalize(v.Turkish), v.Translation, v.MasteryLevel)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO user_progress (user_id, total_words_learned) VALUES (?, 1)
ON CONFLICT(user_id) DO UPDATE SET
    total_words_learned = user_progress.total_words_learned + 1,
    updated_at = CURRENT_TIMESTAMP
`, v.UserID)
		return err
	})
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

func (r *vocabularyRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("deleting word: user_id=%d, id=%d", userID, id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete word: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *vocabularyRepository) Stats(ctx context.Context, userID int64) (models.MasteryStats, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")

	var s models.MasteryStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN mastery_level = 0 THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN mastery_level BETWEEN 1 AND ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN mastery_level >= ? THEN 1 ELSE 0 END), 0)
FROM vocabulary
WHERE user_id = ?
`, models.MasteredThreshold-1, models.MasteredThreshold, userID).Scan(&s.Total, &s.New, &s.Learning, &s.Mastered)
	if err != nil {
		log.Error("failed to compute mastery stats: %v", err)
		return s, err
	}
	return s, nil
}

// findWordsTx returns every word of the user whose normalized form is key.
func findWordsTx(ctx context.Context, tx *sql.Tx, userID int64, key string) ([]models.VocabularyItem, error) {
	sqlStr, args, err := sqlBuilder.Select(vocabularyColumns...).
		From("vocabulary").
		Where(squirrel.Eq{"user_id": userID, "turkish_key": key}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := tx.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.VocabularyItem
	for rows.Next() {
		v, err := scanVocabulary(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, v)
	}
	return words, rows.Err()
}

func updateWordTx(ctx context.Context, tx *sql.Tx, v models.VocabularyItem) error {
	sqlStr, args, err := sqlBuilder.Update("vocabulary").
		Set("mastery_level", v.MasteryLevel).
		Set("times_practiced", v.TimesPracticed).
		Set("times_correct", v.TimesCorrect).
		Set("last_practiced_at", nullTime(v.LastPracticedAt)).
		Set("updated_at", v.UpdatedAt.UTC().Truncate(time.Second)).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, sqlStr, args...)
	return err
}
