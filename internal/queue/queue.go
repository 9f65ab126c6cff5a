// Package queue carries dispatch jobs from request handlers to the worker pool.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
)

var ErrClosed = errors.New("queue is closed")

// Job asks the worker pool to dispatch one template to one lead.
type Job struct {
	LeadID      int64              `json:"lead_id"`
	TemplateID  string             `json:"template_id"`
	TriggeredBy models.TriggeredBy `json:"triggered_by"`
	BatchID     string             `json:"batch_id,omitempty"`
	EnqueuedAt  time.Time          `json:"enqueued_at"`
	// Final is set by the queue when this delivery is the job's last one.
	Final bool `json:"-"`
}

// Handler processes one job. A non-nil error makes the job eligible for redelivery.
type Handler func(ctx context.Context, job Job) error

// Queue is implemented by the in-memory and AMQP drivers.
type Queue interface {
	Publish(ctx context.Context, job Job) error
	// Consume runs handler on a pool of workers and blocks until ctx is done.
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

// Options shared by both drivers.
type Options struct {
	Workers         int
	Buffer          int
	MaxRedeliveries int
	// Backoff is multiplied by the delivery count before a failed job is retried.
	Backoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Buffer <= 0 {
		o.Buffer = 100
	}
	if o.MaxRedeliveries < 0 {
		o.MaxRedeliveries = 0
	}
	if o.Backoff <= 0 {
		o.Backoff = 500 * time.Millisecond
	}
	return o
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
