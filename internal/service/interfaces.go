package service

import (
	"context"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/scheduler"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

// DispatchService is the operator entry to the dispatcher.
type DispatchService interface {
	Dispatch(ctx context.Context, req *DispatchRequest) (*models.DispatchRecord, error)
	Verify(ctx context.Context, leadID int64) (*models.DispatchRecord, error)
}

type LeadService interface {
	Create(ctx context.Context, in *CreateLeadInput) (*models.Lead, error)
	Get(ctx context.Context, id int64, records int) (*LeadView, error)
	UpdatePhone(ctx context.Context, id int64, phone string) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
}

type BulkService interface {
	Start(ctx context.Context, req *BulkRequest) (*models.BulkBatch, error)
	Progress(ctx context.Context, batchID string) (*models.BulkProgress, error)
}

type SequenceService interface {
	Create(ctx context.Context, in *CreateSequenceInput) (*SequenceView, error)
	Enroll(ctx context.Context, sequenceID, leadID int64) (*models.SequenceAssignment, error)
	AutoEnroll(ctx context.Context, lead *models.Lead) ([]*models.SequenceAssignment, error)
	Cancel(ctx context.Context, assignmentID int64, reason string) error
	Pause(ctx context.Context, assignmentID int64) error
	Resume(ctx context.Context, assignmentID int64) error
	// HandleReply stops every open assignment whose current step has stop-on-reply set.
	HandleReply(ctx context.Context, leadID int64, at time.Time) error
	// RunDue is the sequence sweep.
	RunDue(ctx context.Context) error
}

type RetryService interface {
	// RunDue is the retry sweep.
	RunDue(ctx context.Context) error
}

type WebhookService interface {
	HandleStatus(ctx context.Context, ev *StatusEvent) error
	HandleReply(ctx context.Context, ev *ReplyEvent) error
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
	Statuses() []scheduler.Status
}

type HealthService interface {
	GetHealth(ctx context.Context) *HealthStatus
}
