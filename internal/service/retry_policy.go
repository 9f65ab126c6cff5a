package service

import (
	"math"
	"math/rand"
	"time"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/models"
)

// RetryPolicy decides whether and when a failed attempt is retried.
type RetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	multiplier  float64
	jitter      float64
	permanent   map[string]struct{}
}

// NewRetryPolicy builds a policy from config. Provider error codes listed in
// permanentCodes end the retry chain on the first occurrence.
func NewRetryPolicy(cfg *config.RetryConfig, permanentCodes []string) *RetryPolicy {
	permanent := make(map[string]struct{}, len(permanentCodes))
	for _, code := range permanentCodes {
		permanent[code] = struct{}{}
	}
	return &RetryPolicy{
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay(),
		multiplier:  cfg.Multiplier,
		jitter:      cfg.Jitter,
		permanent:   permanent,
	}
}

// MaxAttempts is the retry ceiling.
func (p *RetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// Decide returns the next retry time for an attempt that ended in outcome after
// attempts tries. ok is false when the chain ends here.
func (p *RetryPolicy) Decide(outcome models.DeliveryStatus, attempts int, errorCode string, now time.Time) (next time.Time, ok bool) {
	if !outcome.Retryable() {
		return time.Time{}, false
	}
	if p.IsPermanent(errorCode) {
		return time.Time{}, false
	}
	if attempts >= p.maxAttempts {
		return time.Time{}, false
	}
	return now.Add(p.Delay(attempts)), true
}

// IsPermanent reports whether a provider error code is on the never-retry list.
func (p *RetryPolicy) IsPermanent(errorCode string) bool {
	if errorCode == "" {
		return false
	}
	_, ok := p.permanent[errorCode]
	return ok
}

// Delay is the wait after the given failed attempt: base * multiplier^(attempt-1),
// stretched by up to jitter. Config validation keeps multiplier above 1+jitter so
// every delay is strictly longer than the one before.
func (p *RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(p.baseDelay) * math.Pow(p.multiplier, float64(attempt-1))
	d *= 1 + rand.Float64()*p.jitter
	return time.Duration(d)
}
