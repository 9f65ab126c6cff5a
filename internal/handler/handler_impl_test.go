package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/handler"
	"github.com/popeskul/lead-messenger/internal/middleware"
	"github.com/popeskul/lead-messenger/internal/scheduler"
	"github.com/popeskul/lead-messenger/internal/service"
	"github.com/popeskul/lead-messenger/internal/service/mocks"
)

const (
	testVerifyToken = "verify-me"
	testAppSecret   = "app-secret"
)

type mockSet struct {
	dispatch  *mocks.MockDispatchService
	lead      *mocks.MockLeadService
	bulk      *mocks.MockBulkService
	sequence  *mocks.MockSequenceService
	webhook   *mocks.MockWebhookService
	scheduler *mocks.MockSchedulerService
	health    *mocks.MockHealthService
}

func newTestHandler(t *testing.T) (*mockSet, api.ServerInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mockSet{
		dispatch:  mocks.NewMockDispatchService(ctrl),
		lead:      mocks.NewMockLeadService(ctrl),
		bulk:      mocks.NewMockBulkService(ctrl),
		sequence:  mocks.NewMockSequenceService(ctrl),
		webhook:   mocks.NewMockWebhookService(ctrl),
		scheduler: mocks.NewMockSchedulerService(ctrl),
		health:    mocks.NewMockHealthService(ctrl),
	}
	svc := &service.Service{
		Dispatch:  m.dispatch,
		Lead:      m.lead,
		Bulk:      m.bulk,
		Sequence:  m.sequence,
		Webhook:   m.webhook,
		Scheduler: m.scheduler,
		Health:    m.health,
	}
	webhook := config.WebhookConfig{VerifyToken: testVerifyToken, AppSecret: testAppSecret}
	return m, handler.NewHandler(svc, webhook, zap.NewNop())
}

func newRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id"))
}

func decodeError(t *testing.T, body []byte) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotNil(t, resp.Timestamp)
	return resp
}

func TestHandler_StartScheduler(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockSchedulerService)
		expectedStatus int
		expectedBody   func(*testing.T, []byte)
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: func(t *testing.T, body []byte) {
				var resp api.SchedulerResponse
				err := json.Unmarshal(body, &resp)
				assert.NoError(t, err)
				assert.Equal(t, api.Started, resp.Status)
				assert.Equal(t, "Scheduler started successfully", resp.Message)
			},
		},
		{
			name: "scheduler already running",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(scheduler.ErrSchedulerAlreadyRunning)
			},
			expectedStatus: http.StatusConflict,
			expectedBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "SCHEDULER_ALREADY_RUNNING", resp.Error)
				assert.Equal(t, "Scheduler is already running", resp.Message)
			},
		},
		{
			name: "internal error",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(errors.New("internal error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, middleware.ErrorCodeInternal, resp.Error)
				assert.Equal(t, "Failed to start scheduler", resp.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, h := newTestHandler(t)
			tt.setupMocks(m.scheduler)

			w := httptest.NewRecorder()
			h.StartScheduler(w, newRequest(http.MethodPost, "/scheduler/start", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.expectedBody(t, w.Body.Bytes())
		})
	}
}

func TestHandler_StopScheduler(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockSchedulerService)
		expectedStatus int
		expectedBody   func(*testing.T, []byte)
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Stop().Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: func(t *testing.T, body []byte) {
				var resp api.SchedulerResponse
				err := json.Unmarshal(body, &resp)
				assert.NoError(t, err)
				assert.Equal(t, api.Stopped, resp.Status)
				assert.Equal(t, "Scheduler stopped successfully", resp.Message)
			},
		},
		{
			name: "scheduler not running",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Stop().Return(scheduler.ErrSchedulerNotRunning)
			},
			expectedStatus: http.StatusConflict,
			expectedBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "SCHEDULER_NOT_RUNNING", resp.Error)
				assert.Equal(t, "Scheduler is not running", resp.Message)
			},
		},
		{
			name: "internal error",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Stop().Return(errors.New("internal error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, middleware.ErrorCodeInternal, resp.Error)
				assert.Equal(t, "Failed to stop scheduler", resp.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, h := newTestHandler(t)
			tt.setupMocks(m.scheduler)

			w := httptest.NewRecorder()
			h.StopScheduler(w, newRequest(http.MethodPost, "/scheduler/stop", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.expectedBody(t, w.Body.Bytes())
		})
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	lastRun := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		health         *service.HealthStatus
		expectedStatus int
		expectedBody   func(*testing.T, api.HealthResponse)
	}{
		{
			name: "healthy",
			health: &service.HealthStatus{
				Status: api.Healthy,
				Schedulers: []scheduler.Status{
					{Name: "retry", Running: true, LastRunAt: lastRun},
					{Name: "sequence", Running: false, LastError: "boom"},
				},
				DatabaseStatus:       api.HealthResponseDatabaseStatusConnected,
				RedisStatus:          api.HealthResponseRedisStatusConnected,
				CircuitBreakerStatus: "No requests yet",
				CircuitBreakerState:  api.Closed,
			},
			expectedStatus: http.StatusOK,
			expectedBody: func(t *testing.T, resp api.HealthResponse) {
				assert.Equal(t, api.Healthy, resp.Status)
				require.NotNil(t, resp.Schedulers)
				require.Len(t, *resp.Schedulers, 2)

				retry := (*resp.Schedulers)[0]
				assert.Equal(t, "retry", retry.Name)
				assert.Equal(t, api.HealthResponseSchedulerStatusRunning, retry.Status)
				require.NotNil(t, retry.LastRunAt)
				assert.True(t, lastRun.Equal(*retry.LastRunAt))
				assert.Nil(t, retry.LastError)

				sequence := (*resp.Schedulers)[1]
				assert.Equal(t, api.HealthResponseSchedulerStatusStopped, sequence.Status)
				assert.Nil(t, sequence.LastRunAt)
				require.NotNil(t, sequence.LastError)
				assert.Equal(t, "boom", *sequence.LastError)

				require.NotNil(t, resp.DatabaseStatus)
				assert.Equal(t, api.HealthResponseDatabaseStatusConnected, *resp.DatabaseStatus)
				require.NotNil(t, resp.CircuitBreakerState)
				assert.Equal(t, api.Closed, *resp.CircuitBreakerState)
			},
		},
		{
			name: "degraded stays available",
			health: &service.HealthStatus{
				Status:              api.Degraded,
				DatabaseStatus:      api.HealthResponseDatabaseStatusConnected,
				RedisStatus:         api.HealthResponseRedisStatusDisabled,
				CircuitBreakerState: api.Open,
			},
			expectedStatus: http.StatusOK,
			expectedBody: func(t *testing.T, resp api.HealthResponse) {
				assert.Equal(t, api.Degraded, resp.Status)
				assert.Nil(t, resp.Schedulers)
				require.NotNil(t, resp.RedisStatus)
				assert.Equal(t, api.HealthResponseRedisStatusDisabled, *resp.RedisStatus)
			},
		},
		{
			name: "unhealthy",
			health: &service.HealthStatus{
				Status:         api.Unhealthy,
				DatabaseStatus: api.HealthResponseDatabaseStatusDisconnected,
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody: func(t *testing.T, resp api.HealthResponse) {
				assert.Equal(t, api.Unhealthy, resp.Status)
				assert.Nil(t, resp.RedisStatus)
				assert.Nil(t, resp.CircuitBreakerState)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, h := newTestHandler(t)
			m.health.EXPECT().GetHealth(gomock.Any()).Return(tt.health)

			w := httptest.NewRecorder()
			h.HealthCheck(w, newRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp api.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Timestamp.IsZero())
			tt.expectedBody(t, resp)
		})
	}
}

func TestHandler_Routing(t *testing.T) {
	m, h := newTestHandler(t)
	router := api.HandlerWithOptions(h, api.ChiServerOptions{})

	t.Run("path id is bound", func(t *testing.T) {
		m.lead.EXPECT().Delete(gomock.Any(), int64(42)).Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(http.MethodDelete, "/leads/42", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("malformed path id is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(http.MethodGet, "/leads/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("query parameter is bound", func(t *testing.T) {
		m.lead.EXPECT().Get(gomock.Any(), int64(7), 5).Return(&service.LeadView{Lead: sampleLead()}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(http.MethodGet, "/leads/7?records=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
