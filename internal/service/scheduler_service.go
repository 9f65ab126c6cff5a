package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/scheduler"
)

// schedulerService drives the retry and sequence sweeps together.
type schedulerService struct {
	schedulers []*scheduler.Scheduler
	logger     *zap.Logger
}

func NewSchedulerService(
	cfg *config.Config,
	retry RetryService,
	sequences SequenceService,
	logger *zap.Logger,
) SchedulerService {
	return &schedulerService{
		schedulers: []*scheduler.Scheduler{
			scheduler.NewScheduler("retry", cfg.Retry.Interval(), retry.RunDue, logger),
			scheduler.NewScheduler("sequence", cfg.Sequence.Interval(), sequences.RunDue, logger),
		},
		logger: logger,
	}
}

// Start starts every stopped sweep. It fails only when all were already running.
func (s *schedulerService) Start() error {
	ctx := context.Background()

	started := 0
	for _, sch := range s.schedulers {
		err := sch.Start(ctx)
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			continue
		}
		if err != nil {
			return err
		}
		started++
	}
	if started == 0 {
		return scheduler.ErrSchedulerAlreadyRunning
	}
	return nil
}

// Stop stops every running sweep. It fails only when none was running.
func (s *schedulerService) Stop() error {
	stopped := 0
	for _, sch := range s.schedulers {
		err := sch.Stop()
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			continue
		}
		if err != nil {
			return err
		}
		stopped++
	}
	if stopped == 0 {
		return scheduler.ErrSchedulerNotRunning
	}
	return nil
}

func (s *schedulerService) IsRunning() bool {
	for _, sch := range s.schedulers {
		if sch.IsRunning() {
			return true
		}
	}
	return false
}

func (s *schedulerService) Statuses() []scheduler.Status {
	out := make([]scheduler.Status, 0, len(s.schedulers))
	for _, sch := range s.schedulers {
		out = append(out, sch.Status())
	}
	return out
}
