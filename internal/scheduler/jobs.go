package scheduler

import (
	"context"

	"github.com/vytor/dilvane/internal/logger"
)

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type LessonEvicter interface {
	EvictIdle(ctx context.Context) int
}

// PurgeSessionsJob deletes expired sign-in sessions.
type PurgeSessionsJob struct {
	Sessions SessionPurger
}

func (j *PurgeSessionsJob) Name() string { return "purge_sessions" }

func (j *PurgeSessionsJob) Run(ctx context.Context) error {
	n, err := j.Sessions.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info("purged %d expired sessions", n)
	}
	return nil
}

// EvictLessonsJob drops in-memory lessons nobody touched within the idle timeout.
type EvictLessonsJob struct {
	Lessons LessonEvicter
}

func (j *EvictLessonsJob) Name() string { return "evict_idle_lessons" }

func (j *EvictLessonsJob) Run(ctx context.Context) error {
	j.Lessons.EvictIdle(ctx)
	return nil
}
