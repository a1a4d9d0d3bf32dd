package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

type fakePurger struct {
	purged int64
	err    error
	calls  int
}

func (f *fakePurger) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	f.calls++
	return f.purged, f.err
}

type fakeEvicter struct{ calls int }

func (f *fakeEvicter) EvictIdle(ctx context.Context) int {
	f.calls++
	return 0
}

func TestEvery_RejectsNonPositiveInterval(t *testing.T) {
	s := New()
	assert.Error(t, s.Every(0, &countingJob{name: "x"}))
	assert.Equal(t, 0, s.Len())
}

func TestRunAll_RunsEveryJobOnce(t *testing.T) {
	s := New()
	ok := &countingJob{name: "ok"}
	failing := &countingJob{name: "failing", err: errors.New("boom")}
	require.NoError(t, s.Every(time.Hour, ok))
	require.NoError(t, s.Every(time.Hour, failing))

	s.RunAll(context.Background())

	assert.Equal(t, int32(1), ok.runs.Load())
	assert.Equal(t, int32(1), failing.runs.Load(), "a failing job does not stop the others")
}

func TestStart_RunsJobsImmediately(t *testing.T) {
	s := New()
	job := &countingJob{name: "tick"}
	require.NoError(t, s.Every(time.Hour, job))

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, 10*time.Millisecond)
}

func TestHousekeepingJobs(t *testing.T) {
	purger := &fakePurger{purged: 3}
	evicter := &fakeEvicter{}

	require.NoError(t, (&PurgeSessionsJob{Sessions: purger}).Run(context.Background()))
	require.NoError(t, (&EvictLessonsJob{Lessons: evicter}).Run(context.Background()))
	assert.Equal(t, 1, purger.calls)
	assert.Equal(t, 1, evicter.calls)

	purger.err = errors.New("database is locked")
	assert.Error(t, (&PurgeSessionsJob{Sessions: purger}).Run(context.Background()))
}
