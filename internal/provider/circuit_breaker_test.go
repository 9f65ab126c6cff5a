package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/provider"
)

func breakerConfig(timeout int) *config.CircuitBreakerConfig {
	return &config.CircuitBreakerConfig{
		MaxRequests:      3,
		Interval:         10,
		Timeout:          timeout,
		FailureRatio:     0.5,
		ConsecutiveFails: 3,
	}
}

func tripBreaker(cb *provider.CircuitBreaker) {
	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func() error {
			return errors.New("failure")
		})
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*provider.CircuitBreaker)
		cancelCtx   bool
		fn          func() error
		wantErr     string
		unavailable bool
	}{
		{
			name: "success",
			fn:   func() error { return nil },
		},
		{
			name:    "function error is passed through",
			fn:      func() error { return errors.New("boom") },
			wantErr: "boom",
		},
		{
			name:      "cancelled context",
			cancelCtx: true,
			fn:        func() error { return nil },
			wantErr:   "context canceled",
		},
		{
			name:        "open breaker blocks calls",
			setup:       tripBreaker,
			fn:          func() error { return nil },
			wantErr:     "circuit breaker is open",
			unavailable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := provider.NewCircuitBreaker("test", breakerConfig(60), zap.NewNop())
			if tt.setup != nil {
				tt.setup(cb)
			}

			ctx := context.Background()
			if tt.cancelCtx {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			err := cb.Execute(ctx, tt.fn)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.unavailable, errors.Is(err, provider.ErrUnavailable))
		})
	}
}

func TestCircuitBreaker_StateTransitions(t *testing.T) {
	cb := provider.NewCircuitBreaker("test", breakerConfig(1), zap.NewNop())
	assert.Equal(t, provider.BreakerClosed, cb.GetState())

	tripBreaker(cb)
	assert.Equal(t, provider.BreakerOpen, cb.GetState())

	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, provider.BreakerHalfOpen, cb.GetState())

	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Execute(context.Background(), func() error { return nil }))
	}
	assert.Equal(t, provider.BreakerClosed, cb.GetState())
}

func TestCircuitBreaker_GetCounts(t *testing.T) {
	cb := provider.NewCircuitBreaker("test", &config.CircuitBreakerConfig{
		MaxRequests:      10,
		Interval:         60,
		Timeout:          60,
		FailureRatio:     0.8,
		ConsecutiveFails: 10,
	}, zap.NewNop())

	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func() error {
			if i%2 == 1 {
				return errors.New("failure")
			}
			return nil
		})
	}

	requests, failures := cb.GetCounts()
	assert.Equal(t, uint32(5), requests)
	assert.Equal(t, uint32(2), failures)
}
