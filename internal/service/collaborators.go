package service

import (
	"context"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/template"
)

//go:generate mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks

// MessageSender is the provider send capability.
type MessageSender interface {
	Send(ctx context.Context, req provider.SendRequest) (*provider.SendResult, error)
}

// ContactResolver reports whether a normalized phone is deliverable.
type ContactResolver interface {
	Resolve(ctx context.Context, phone string) provider.Resolution
	Forget(phone string)
}

type MessageRenderer interface {
	Lookup(id string) (models.Template, bool)
	Render(id string, lead *models.Lead, phone string) (*template.Rendered, error)
}

// MessageIndex maps provider message ids to dispatch records for status callbacks.
type MessageIndex interface {
	Put(ctx context.Context, providerID string, recordID int64) error
	Lookup(ctx context.Context, providerID string) (int64, bool, error)
}

// SweepLocker keeps replicas from sweeping the same items at once.
type SweepLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error)
}

type BreakerReporter interface {
	GetState() provider.BreakerState
	GetCounts() (uint32, uint32)
}

// OutcomeObserver is told about every recorded dispatch outcome and status callback.
type OutcomeObserver interface {
	OnDispatchOutcome(ctx context.Context, rec *models.DispatchRecord)
}
