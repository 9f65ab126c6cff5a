package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one sweep. It must be safe to run again over items it already handled.
type Task func(ctx context.Context) error

// Status is a snapshot of a scheduler for health reporting.
type Status struct {
	Name      string
	Running   bool
	LastRunAt time.Time
	LastError string
}

// Scheduler runs a task immediately on start and then once per interval.
// Runs never overlap: a slow sweep delays the next tick.
type Scheduler struct {
	name     string
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration
	task     Task

	mu        sync.RWMutex
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	lastRunAt time.Time
	lastErr   error
}

// NewScheduler creates a scheduler. Each run gets a deadline of one interval.
func NewScheduler(name string, interval time.Duration, task Task, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		logger:   logger.With(zap.String("scheduler", name)),
		interval: interval,
		timeout:  interval,
		task:     task,
	}
}

// Start begins the loop. It stops on Stop or when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerAlreadyRunning
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx, s.stopCh, s.doneCh)

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the loop and waits for an in-progress run to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh

	s.logger.Info("Scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{Name: s.name, Running: s.running, LastRunAt: s.lastRunAt}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *Scheduler) run(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer func() {
		s.mu.Lock()
		// a newer Start owns the flag once doneCh was replaced
		if s.doneCh == doneCh {
			s.running = false
		}
		s.mu.Unlock()
	}()

	s.execute(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context canceled")
			return
		case <-stopCh:
			s.logger.Debug("Scheduler stop signal received")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context) {
	taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.task(taskCtx)

	s.mu.Lock()
	s.lastRunAt = start
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Sweep failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return
	}
	s.logger.Debug("Sweep completed", zap.Duration("took", time.Since(start)))
}
