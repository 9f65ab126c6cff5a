package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/repository"
	"github.com/popeskul/lead-messenger/internal/scheduler"
)

const healthCheckTimeout = 2 * time.Second

type HealthStatus struct {
	Status               api.HealthResponseStatus
	Schedulers           []scheduler.Status
	DatabaseStatus       api.HealthResponseDatabaseStatus
	RedisStatus          api.HealthResponseRedisStatus
	CircuitBreakerStatus string
	CircuitBreakerState  api.HealthResponseCircuitBreakerState
}

type healthService struct {
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	breaker          BreakerReporter
}

// NewHealthService reports on storage, Redis, the sweeps and the provider
// breaker. A nil redisClient is reported as disabled.
func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	breaker BreakerReporter,
) HealthService {
	return &healthService{
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		breaker:          breaker,
	}
}

func (s *healthService) GetHealth(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:         api.Healthy,
		Schedulers:     s.schedulerService.Statuses(),
		DatabaseStatus: s.checkDatabaseHealth(ctx),
		RedisStatus:    s.checkRedisHealth(ctx),
	}

	state := api.HealthResponseCircuitBreakerState(s.breaker.GetState())
	requests, failures := s.breaker.GetCounts()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	// Determine overall health
	if status.DatabaseStatus != api.HealthResponseDatabaseStatusConnected ||
		status.RedisStatus == api.HealthResponseRedisStatusDisconnected {
		status.Status = api.Unhealthy
		return status
	}

	// The provider is unavailable but requests are still recorded for retry
	if state == api.HealthResponseCircuitBreakerState(provider.BreakerOpen) {
		status.Status = api.Degraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth(ctx context.Context) api.HealthResponseDatabaseStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		return api.HealthResponseDatabaseStatusDisconnected
	}
	return api.HealthResponseDatabaseStatusConnected
}

func (s *healthService) checkRedisHealth(ctx context.Context) api.HealthResponseRedisStatus {
	if s.redisClient == nil {
		return api.HealthResponseRedisStatusDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.HealthResponseRedisStatusDisconnected
	}
	return api.HealthResponseRedisStatusConnected
}
