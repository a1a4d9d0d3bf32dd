package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

// List returns the newest notes first. A limit of zero returns all of them.
func (r *noteRepository) List(ctx context.Context, userID int64, limit int) ([]models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("listing notes: user_id=%d, limit=%d", userID, limit)

	query := sqlBuilder.Select("id", "user_id", "content", "created_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			log.Error("failed to scan note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Insert(ctx context.Context, n models.Note) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("inserting note: user_id=%d", n.UserID)

	res, err := r.db.ExecContext(ctx, `INSERT INTO notes (user_id, content) VALUES (?, ?)`, n.UserID, n.Content)
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *noteRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("deleting note: user_id=%d, id=%d", userID, id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete note: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
