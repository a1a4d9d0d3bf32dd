package repository

import (
	"context"
	"time"

	"github.com/vytor/dilvane/internal/models"
)

// UserRepository handles accounts. Lookups return nil, nil when nothing matches.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateSettings(ctx context.Context, id int64, settings models.Settings) error
}

// SessionRepository handles login sessions.
type SessionRepository interface {
	Insert(ctx context.Context, session models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
