package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping(ctx context.Context) error

	Lead() LeadRepository
	Dispatch() DispatchRepository
	Sequence() SequenceRepository
	Batch() BatchRepository
}

// LeadRepository stores leads and their delivery summary. Delivery fields are
// only written through DispatchRepository.
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	FindByPhone(ctx context.Context, normalizedPhone string) ([]*models.Lead, error)
	// UpdatePhone stores a corrected phone and resets invalid_phone to not_sent.
	UpdatePhone(ctx context.Context, id int64, phone string, normalized sql.NullString) (*models.Lead, error)
	// SelectIDs evaluates a bulk filter once.
	SelectIDs(ctx context.Context, filter models.BulkFilter) ([]int64, error)
	// ExistingIDs keeps the ids that belong to live leads, in input order.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	MarkReplied(ctx context.Context, id int64, at time.Time) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

// DispatchRepository owns the dispatch log and every write to a lead's delivery
// summary. Each method runs in one transaction holding the lead's row lock.
type DispatchRepository interface {
	// Claim moves the lead to pending and appends an in-flight record.
	// ErrDispatchInFlight is returned when the lead is already pending.
	Claim(ctx context.Context, req *models.ClaimRequest) (*models.Lead, *models.DispatchRecord, error)
	// Complete closes an in-flight record and projects it onto the lead.
	Complete(ctx context.Context, res *models.AttemptResult) (*models.DispatchRecord, error)
	// ApplyProviderStatus promotes an accepted record from a status callback.
	// changed is false when the update is a duplicate or arrives out of order.
	ApplyProviderStatus(ctx context.Context, recordID int64, upd *models.StatusUpdate) (rec *models.DispatchRecord, changed bool, err error)

	GetByID(ctx context.Context, id int64) (*models.DispatchRecord, error)
	GetByProviderMessageID(ctx context.Context, providerMessageID string) (*models.DispatchRecord, error)
	ListByLead(ctx context.Context, leadID int64, limit int) ([]*models.DispatchRecord, error)
	DueRetries(ctx context.Context, now time.Time, limit int) ([]*models.DispatchRecord, error)
	StaleInFlight(ctx context.Context, olderThan time.Time, limit int) ([]*models.DispatchRecord, error)
	LatestStepAttempt(ctx context.Context, assignmentID, stepID int64) (*models.DispatchRecord, error)
	BatchProgress(ctx context.Context, batchID string) (sent, failed int, err error)
}

// SequenceRepository stores sequences and assignments. Assignment writes are
// compare-and-set on status and step so concurrent sweeps cannot double advance.
type SequenceRepository interface {
	Create(ctx context.Context, seq *models.Sequence, steps []*models.SequenceStep) error
	Get(ctx context.Context, id int64) (*models.Sequence, []*models.SequenceStep, error)
	ListAutoEnroll(ctx context.Context) ([]*models.Sequence, error)
	GetStep(ctx context.Context, sequenceID int64, order int) (*models.SequenceStep, error)
	GetStepByID(ctx context.Context, id int64) (*models.SequenceStep, error)

	// Enroll returns ErrAlreadyEnrolled when an open assignment exists for the pair.
	Enroll(ctx context.Context, leadID, sequenceID int64, now time.Time) (*models.SequenceAssignment, error)
	GetAssignment(ctx context.Context, id int64) (*models.SequenceAssignment, error)
	DueAssignments(ctx context.Context, now time.Time, limit int) ([]*models.SequenceAssignment, error)
	ActiveAssignmentsForLead(ctx context.Context, leadID int64) ([]*models.SequenceAssignment, error)
	ListAssignmentsForLead(ctx context.Context, leadID int64) ([]*models.SequenceAssignment, error)

	// Advance moves an active assignment from fromStep to fromStep+1.
	Advance(ctx context.Context, id int64, fromStep int, sentAt, nextSendAt time.Time) error
	Reschedule(ctx context.Context, id int64, step int, nextSendAt time.Time) error
	Complete(ctx context.Context, id int64, at time.Time) error
	Cancel(ctx context.Context, id int64, reason string, at time.Time) error
	Fail(ctx context.Context, id int64, reason string, at time.Time) error
	Pause(ctx context.Context, id int64) error
	Resume(ctx context.Context, id int64, now time.Time) error
}

// BatchRepository stores bulk send batches.
type BatchRepository interface {
	Create(ctx context.Context, batch *models.BulkBatch) error
	Get(ctx context.Context, id string) (*models.BulkBatch, error)
	// MarkSkipped records batch leads that will never get a dispatch record from the batch.
	MarkSkipped(ctx context.Context, id string, leadIDs []int64) error
}
