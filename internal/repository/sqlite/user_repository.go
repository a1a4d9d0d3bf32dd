package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, password_hash, native_language, cefr_level, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var name sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &u.NativeLanguage, &u.CEFRLevel, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Name = name.String
	return &u, nil
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: email=%s", u.Email)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, name, password_hash, native_language, cefr_level)
VALUES (?, ?, ?, ?, ?)
`, u.Email, nullString(u.Name), u.PasswordHash, u.NativeLanguage, u.CEFRLevel)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("email already registered: %s", u.Email)
			return 0, repository.ErrDuplicate
		}
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by email: %s", email)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by email: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateSettings(ctx context.Context, id int64, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating settings: id=%d, language=%s, level=%s", id, s.NativeLanguage, s.CEFRLevel)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET native_language = ?, cefr_level = ? WHERE id = ?`,
		s.NativeLanguage, s.CEFRLevel, id)
	if err != nil {
		log.Error("failed to update settings: %v", err)
	}
	return err
}

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: user_id=%d, expires_at=%s", s.UserID, s.ExpiresAt.Format(time.RFC3339))

	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		s.Token, s.UserID, s.ExpiresAt.UTC())
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var s models.Session
	err := r.db.QueryRowContext(ctx, `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?`, token).
		Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		log.Error("failed to delete session: %v", err)
	}
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		log.Error("failed to delete expired sessions: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("deleted %d expired sessions", n)
	return n, nil
}
