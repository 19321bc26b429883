package collector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs collection cycles on a cron schedule.
type Scheduler struct {
	collector *Collector
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler that triggers collection per the cron
// expression. Standard five-field cron syntax.
func NewScheduler(collector *Collector, schedule string) *Scheduler {
	return &Scheduler{
		collector: collector,
		schedule:  schedule,
		logger:    slog.Default().With("component", "collector.scheduler"),
	}
}

// Start begins scheduled collection.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.collector.Collect(ctx); err != nil {
			s.logger.Error("scheduled collection cycle failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("collection scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled collection and waits for an in-flight cycle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.started = false
	s.logger.Info("collection scheduler stopped")
}
