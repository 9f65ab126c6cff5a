package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/service"
)

func newPolicy() *service.RetryPolicy {
	return service.NewRetryPolicy(&config.RetryConfig{
		MaxAttempts:      3,
		BaseDelaySeconds: 60,
		Multiplier:       4,
		Jitter:           0.2,
	}, []string{"131026", "131051"})
}

func TestRetryPolicy_Decide(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		outcome  models.DeliveryStatus
		attempts int
		code     string
		wantOK   bool
	}{
		{name: "first failure", outcome: models.StatusFailed, attempts: 1, wantOK: true},
		{name: "second failure", outcome: models.StatusFailed, attempts: 2, wantOK: true},
		{name: "ceiling reached", outcome: models.StatusFailed, attempts: 3},
		{name: "contact failure", outcome: models.StatusContactFailed, attempts: 1, wantOK: true},
		{name: "permanent code", outcome: models.StatusFailed, attempts: 1, code: "131051"},
		{name: "transient code", outcome: models.StatusFailed, attempts: 1, code: "130429", wantOK: true},
		{name: "invalid phone", outcome: models.StatusInvalidPhone, attempts: 1},
		{name: "sent", outcome: models.StatusSent, attempts: 1},
	}

	policy := newPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := policy.Decide(tt.outcome, tt.attempts, tt.code, now)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, next.After(now))
			} else {
				assert.True(t, next.IsZero())
			}
		})
	}
}

func TestRetryPolicy_DelayGrowsWithinJitter(t *testing.T) {
	policy := newPolicy()

	bounds := []struct {
		attempt  int
		min, max time.Duration
	}{
		{attempt: 1, min: time.Minute, max: 72 * time.Second},
		{attempt: 2, min: 4 * time.Minute, max: 288 * time.Second},
		{attempt: 3, min: 16 * time.Minute, max: 1152 * time.Second},
	}

	for i := 0; i < 50; i++ {
		var prev time.Duration
		for _, b := range bounds {
			d := policy.Delay(b.attempt)
			assert.GreaterOrEqual(t, d, b.min)
			assert.LessOrEqual(t, d, b.max)
			assert.Greater(t, d, prev)
			prev = d
		}
	}
}

func TestRetryPolicy_IsPermanent(t *testing.T) {
	policy := newPolicy()

	assert.True(t, policy.IsPermanent("131026"))
	assert.False(t, policy.IsPermanent("130429"))
	assert.False(t, policy.IsPermanent(""))
	assert.Equal(t, 3, policy.MaxAttempts())
}
