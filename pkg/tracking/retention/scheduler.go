package retention

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs retention analysis on a cron schedule.
type Scheduler struct {
	runner   *Runner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler that triggers runner per the cron
// expression. Standard five-field cron syntax.
func NewScheduler(runner *Runner, schedule string) *Scheduler {
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		logger:   slog.Default().With("component", "retention.scheduler"),
	}
}

// Start begins scheduled execution. It is an error to start twice without an
// intervening Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.runner.Run(ctx); err != nil {
			s.logger.Error("scheduled retention run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("retention scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled execution and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.started = false
	s.logger.Info("retention scheduler stopped")
}
