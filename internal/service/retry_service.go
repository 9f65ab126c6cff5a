package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/repository"
)

const (
	retryLockKey = "sweep:retry"
	// sweepLockIntervals is how many sweep intervals a lock outlives its run start.
	sweepLockIntervals = 5
)

type retryService struct {
	cfg        *config.RetryConfig
	repo       repository.Repository
	dispatcher *Dispatcher
	locker     SweepLocker
	now        func() time.Time
	logger     *zap.Logger
}

// NewRetryService builds the retry sweep. locker may be nil on a single replica.
func NewRetryService(
	cfg *config.RetryConfig,
	repo repository.Repository,
	dispatcher *Dispatcher,
	locker SweepLocker,
	now func() time.Time,
	logger *zap.Logger,
) RetryService {
	if now == nil {
		now = time.Now
	}
	return &retryService{
		cfg:        cfg,
		repo:       repo,
		dispatcher: dispatcher,
		locker:     locker,
		now:        now,
		logger:     logger.With(zap.String("sweep", "retry")),
	}
}

// RunDue first closes attempts stuck in flight, then re-dispatches every
// pending_retry record whose time has come.
func (s *retryService) RunDue(ctx context.Context) error {
	return withSweepLock(ctx, s.locker, retryLockKey, sweepLockTTL(s.cfg.Interval()), s.logger, s.sweep)
}

func (s *retryService) sweep(ctx context.Context) error {
	now := s.now()

	stale, err := s.repo.Dispatch().StaleInFlight(ctx, now.Add(-s.cfg.StaleAfter()), s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list stale attempts: %w", err)
	}
	for _, rec := range stale {
		if _, err := s.dispatcher.RecoverStale(ctx, rec); err != nil && !errors.Is(err, repository.ErrNotInFlight) {
			s.logger.Error("Failed to recover stale attempt", zap.Int64("record_id", rec.ID), zap.Error(err))
		}
	}

	due, err := s.repo.Dispatch().DueRetries(ctx, now, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list due retries: %w", err)
	}
	if len(stale) == 0 && len(due) == 0 {
		return nil
	}
	s.logger.Info("Processing due retries", zap.Int("due", len(due)), zap.Int("stale", len(stale)))

	var failed int
	for _, rec := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := s.dispatcher.Retry(ctx, rec)
		switch {
		case err == nil:
		case isSkippable(err), errors.Is(err, repository.ErrLeadNotFound):
			s.logger.Debug("Skipping retry", zap.Int64("record_id", rec.ID), zap.Error(err))
		default:
			failed++
			s.logger.Error("Retry failed",
				zap.Int64("record_id", rec.ID),
				zap.Int64("lead_id", rec.LeadID),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d retries could not be dispatched", failed, len(due))
	}
	return nil
}

// sweepLockTTL keeps a slow run holding its lock well past one interval.
func sweepLockTTL(interval time.Duration) time.Duration {
	return sweepLockIntervals * interval
}

// withSweepLock runs fn while holding key. A run is skipped, not failed, when
// another replica holds the lock.
func withSweepLock(
	ctx context.Context,
	locker SweepLocker,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn func(context.Context) error,
) error {
	if locker == nil {
		return fn(ctx)
	}

	release, ok, err := locker.TryLock(ctx, key, ttl)
	if err != nil {
		return fmt.Errorf("failed to take sweep lock: %w", err)
	}
	if !ok {
		logger.Debug("Sweep lock held elsewhere, skipping run")
		return nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to release sweep lock", zap.Error(err))
		}
	}()

	return fn(ctx)
}
