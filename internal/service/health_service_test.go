package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/repository/mocks"
	"github.com/popeskul/lead-messenger/internal/scheduler"
	"github.com/popeskul/lead-messenger/internal/service"
	servicemocks "github.com/popeskul/lead-messenger/internal/service/mocks"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestHealthService_GetHealth_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockRepository(ctrl)
	mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
	mockBreaker := servicemocks.NewMockBreakerReporter(ctrl)

	statuses := []scheduler.Status{{Name: "retry", Running: true}, {Name: "sequence", Running: true}}
	mockScheduler.EXPECT().Statuses().Return(statuses)
	mockRepo.EXPECT().Ping(gomock.Any()).Return(nil)
	mockBreaker.EXPECT().GetState().Return(provider.BreakerClosed)
	mockBreaker.EXPECT().GetCounts().Return(uint32(100), uint32(5))

	healthService := service.NewHealthService(mockRepo, newRedis(t), mockScheduler, mockBreaker)

	status := healthService.GetHealth(context.Background())

	require.NotNil(t, status)
	assert.Equal(t, api.Healthy, status.Status)
	assert.Equal(t, statuses, status.Schedulers)
	assert.Equal(t, api.HealthResponseDatabaseStatusConnected, status.DatabaseStatus)
	assert.Equal(t, api.HealthResponseRedisStatusConnected, status.RedisStatus)
	assert.Equal(t, api.Closed, status.CircuitBreakerState)
	assert.Equal(t, "Requests: 100, Failures: 5 (5.0%)", status.CircuitBreakerStatus)
}

func TestHealthService_GetHealth_Failure(t *testing.T) {
	tests := []struct {
		name                   string
		redisMode              string
		pingErr                error
		breakerState           provider.BreakerState
		expectedStatus         api.HealthResponseStatus
		expectedDatabaseStatus api.HealthResponseDatabaseStatus
		expectedRedisStatus    api.HealthResponseRedisStatus
		expectedCBState        api.HealthResponseCircuitBreakerState
	}{
		{
			name:                   "redis disabled is healthy",
			redisMode:              "disabled",
			breakerState:           provider.BreakerClosed,
			expectedStatus:         api.Healthy,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusDisabled,
			expectedCBState:        api.Closed,
		},
		{
			name:                   "redis disconnected",
			redisMode:              "down",
			breakerState:           provider.BreakerClosed,
			expectedStatus:         api.Unhealthy,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusDisconnected,
			expectedCBState:        api.Closed,
		},
		{
			name:                   "database disconnected",
			redisMode:              "up",
			pingErr:                errors.New("connection failed"),
			breakerState:           provider.BreakerClosed,
			expectedStatus:         api.Unhealthy,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusDisconnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusConnected,
			expectedCBState:        api.Closed,
		},
		{
			name:                   "circuit breaker open",
			redisMode:              "up",
			breakerState:           provider.BreakerOpen,
			expectedStatus:         api.Degraded,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusConnected,
			expectedCBState:        api.Open,
		},
		{
			name:                   "circuit breaker half open",
			redisMode:              "disabled",
			breakerState:           provider.BreakerHalfOpen,
			expectedStatus:         api.Healthy,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusDisabled,
			expectedCBState:        api.HalfOpen,
		},
		{
			name:                   "database down wins over open breaker",
			redisMode:              "disabled",
			pingErr:                errors.New("db error"),
			breakerState:           provider.BreakerOpen,
			expectedStatus:         api.Unhealthy,
			expectedDatabaseStatus: api.HealthResponseDatabaseStatusDisconnected,
			expectedRedisStatus:    api.HealthResponseRedisStatusDisabled,
			expectedCBState:        api.Open,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := mocks.NewMockRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockBreaker := servicemocks.NewMockBreakerReporter(ctrl)

			var redisClient *redis.Client
			switch tt.redisMode {
			case "up":
				redisClient = newRedis(t)
			case "down":
				mr := miniredis.RunT(t)
				redisClient = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
				mr.Close()
			}

			mockScheduler.EXPECT().Statuses().Return(nil)
			mockRepo.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)
			mockBreaker.EXPECT().GetState().Return(tt.breakerState)
			mockBreaker.EXPECT().GetCounts().Return(uint32(0), uint32(0))

			healthService := service.NewHealthService(mockRepo, redisClient, mockScheduler, mockBreaker)

			status := healthService.GetHealth(context.Background())

			require.NotNil(t, status)
			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedDatabaseStatus, status.DatabaseStatus)
			assert.Equal(t, tt.expectedRedisStatus, status.RedisStatus)
			assert.Equal(t, tt.expectedCBState, status.CircuitBreakerState)
		})
	}
}

func TestHealthService_CircuitBreakerStatusFormatting(t *testing.T) {
	tests := []struct {
		name             string
		requests         uint32
		failures         uint32
		expectedCBStatus string
	}{
		{
			name:             "no requests",
			expectedCBStatus: "No requests yet",
		},
		{
			name:             "all successful",
			requests:         100,
			expectedCBStatus: "Requests: 100, Failures: 0 (0.0%)",
		},
		{
			name:             "some failures",
			requests:         100,
			failures:         25,
			expectedCBStatus: "Requests: 100, Failures: 25 (25.0%)",
		},
		{
			name:             "all failures",
			requests:         50,
			failures:         50,
			expectedCBStatus: "Requests: 50, Failures: 50 (100.0%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := mocks.NewMockRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockBreaker := servicemocks.NewMockBreakerReporter(ctrl)

			mockScheduler.EXPECT().Statuses().Return(nil)
			mockRepo.EXPECT().Ping(gomock.Any()).Return(nil)
			mockBreaker.EXPECT().GetState().Return(provider.BreakerClosed)
			mockBreaker.EXPECT().GetCounts().Return(tt.requests, tt.failures)

			healthService := service.NewHealthService(mockRepo, nil, mockScheduler, mockBreaker)

			status := healthService.GetHealth(context.Background())

			assert.Equal(t, tt.expectedCBStatus, status.CircuitBreakerStatus)
		})
	}
}
