package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DispatchRecord is one message attempt against a lead. Status is pending while
// the attempt is in flight. Afterwards Outcome is what the attempt produced and
// Status is where the record stands now: pending_retry while a retry is
// scheduled, back to Outcome once the retry is taken or superseded.
type DispatchRecord struct {
	ID                int64          `db:"id" json:"id"`
	LeadID            int64          `db:"lead_id" json:"lead_id"`
	Phone             string         `db:"phone" json:"phone"`
	TemplateID        string         `db:"template_id" json:"template_id"`
	Message           string         `db:"message" json:"message"`
	Source            string         `db:"source" json:"source"`
	SourceInfo        string         `db:"source_info" json:"source_info"`
	TriggeredBy       TriggeredBy    `db:"triggered_by" json:"triggered_by"`
	SequenceID        sql.NullInt64  `db:"sequence_id" json:"sequence_id,omitempty"`
	StepID            sql.NullInt64  `db:"step_id" json:"step_id,omitempty"`
	AssignmentID      sql.NullInt64  `db:"assignment_id" json:"assignment_id,omitempty"`
	BatchID           sql.NullString `db:"batch_id" json:"batch_id,omitempty"`
	Status            DeliveryStatus `db:"status" json:"status"`
	Outcome           DeliveryStatus `db:"outcome" json:"outcome"`
	ProviderMessageID sql.NullString `db:"provider_message_id" json:"provider_message_id,omitempty"`
	ErrorMessage      sql.NullString `db:"error_message" json:"error_message,omitempty"`
	Attempts          int            `db:"attempts" json:"attempts"`
	NextRetryAt       sql.NullTime   `db:"next_retry_at" json:"next_retry_at,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Link returns the sequence and batch linkage of the record.
func (r *DispatchRecord) Link() DispatchLink {
	return DispatchLink{
		SequenceID:   r.SequenceID,
		StepID:       r.StepID,
		AssignmentID: r.AssignmentID,
		BatchID:      r.BatchID,
	}
}

// DispatchLink ties an attempt to the sequence step or bulk batch that produced it.
type DispatchLink struct {
	SequenceID   sql.NullInt64
	StepID       sql.NullInt64
	AssignmentID sql.NullInt64
	BatchID      sql.NullString
}

// ClaimRequest opens an attempt: the lead moves to pending and an in-flight
// record is appended in the same transaction.
type ClaimRequest struct {
	LeadID      int64
	TemplateID  string
	TriggeredBy TriggeredBy
	Link        DispatchLink
	// Attempts is the position of this attempt in its retry chain.
	Attempts int
	// RetryOf is the pending_retry record this attempt takes over. Zero for a new message.
	RetryOf int64
	At      time.Time
}

// Verification reports whether the claim is for a phone check rather than a message.
func (r *ClaimRequest) Verification() bool {
	return r.TemplateID == ""
}

// AttemptResult closes an in-flight record and projects it onto the lead.
type AttemptResult struct {
	RecordID          int64
	Phone             string
	Message           string
	Outcome           DeliveryStatus
	Status            DeliveryStatus
	ProviderMessageID sql.NullString
	ErrorMessage      sql.NullString
	NextRetryAt       sql.NullTime
	Attempts          int
	// CountAttempt is false for outcomes that never reached the send step on bad data.
	CountAttempt bool
	At           time.Time
}

// Validate checks that the result is a legal way to close an in-flight attempt.
func (r *AttemptResult) Validate() error {
	if err := ValidateTransition(StatusPending, r.Outcome); err != nil {
		return err
	}
	if r.Status != r.Outcome {
		if err := ValidateTransition(r.Outcome, r.Status); err != nil {
			return err
		}
	}
	if (r.Status == StatusPendingRetry) != r.NextRetryAt.Valid {
		return fmt.Errorf("next retry time must be set exactly when status is %s", StatusPendingRetry)
	}
	if r.Status.HasProviderMessage() && !r.ProviderMessageID.Valid {
		return fmt.Errorf("status %s requires a provider message id", r.Status)
	}
	return nil
}

// StatusUpdate is an asynchronous provider status for a previously accepted message.
// When Status is failed and a retry is due, NextRetryAt is set and the record
// moves to pending_retry instead.
type StatusUpdate struct {
	ProviderMessageID string
	Status            DeliveryStatus
	ErrorMessage      sql.NullString
	NextRetryAt       sql.NullTime
	At                time.Time
}

// BulkBatch is an operator bulk send. Membership is fixed at creation.
type BulkBatch struct {
	ID         string        `db:"id" json:"id"`
	TemplateID string        `db:"template_id" json:"template_id"`
	Filter     string        `db:"filter" json:"filter,omitempty"`
	LeadIDs    pq.Int64Array `db:"lead_ids" json:"lead_ids"`
	Total      int           `db:"total" json:"total"`
	// SkippedIDs are batch leads whose job ended without opening an attempt.
	SkippedIDs pq.Int64Array `db:"skipped_ids" json:"skipped_ids,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// BulkProgress is recomputed from the dispatch log on every poll.
type BulkProgress struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Done reports whether every batch item has reached a counted state.
func (p BulkProgress) Done() bool {
	return p.Sent+p.Failed >= p.Total
}
