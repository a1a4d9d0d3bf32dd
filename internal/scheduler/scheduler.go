package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/dilvane/internal/logger"
)

// Job is a unit of periodic housekeeping.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Scheduler runs registered jobs on fixed intervals in UTC. A job never
// overlaps with a previous run of itself.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       *logger.Logger

	mu     sync.Mutex
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
}

func New() *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		log:       logger.Default().WithPrefix("scheduler"),
		ctx:       context.Background(),
	}
}

// Every registers job to run once per interval after Start.
func (s *Scheduler) Every(interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name())
	}
	if _, err := s.scheduler.Every(interval).Do(func() { s.run(s.context(), job) }); err != nil {
		return fmt.Errorf("scheduling %s: %w", job.Name(), err)
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	s.log.Debug("registered job %s every %v", job.Name(), interval)
	return nil
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Start runs every job immediately and then on its interval, without blocking.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	n := len(s.jobs)
	s.mu.Unlock()

	s.log.Info("starting scheduler with %d jobs", n)
	s.scheduler.StartAsync()
}

// Stop cancels running jobs and waits for the scheduler to wind down.
func (s *Scheduler) Stop() {
	s.log.Info("stopping scheduler")
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// RunAll runs every registered job once, synchronously.
func (s *Scheduler) RunAll(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.run(ctx, job)
	}
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	jobLog := s.log.WithField("job", job.Name())
	jobLog.Debug("starting job")
	start := time.Now()

	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Debug("job completed in %v", time.Since(start))
}
