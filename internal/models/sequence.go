package models

import (
	"database/sql"
	"time"
)

// AssignmentStatus is the state of a lead's enrollment in a sequence.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentPaused    AssignmentStatus = "paused"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentError     AssignmentStatus = "error"
)

// IsTerminal returns true if the assignment can never be advanced again.
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentCompleted || s == AssignmentCancelled || s == AssignmentError
}

// CancellationReasonReplied is recorded when stop-on-reply ends an assignment.
const CancellationReasonReplied = "lead replied"

// Sequence is a named drip campaign. Target filters are only read at enrollment time.
type Sequence struct {
	ID                    int64          `db:"id" json:"id"`
	Name                  string         `db:"name" json:"name"`
	TargetLifecycleStatus sql.NullString `db:"target_lifecycle_status" json:"target_lifecycle_status,omitempty"`
	TargetSource          sql.NullString `db:"target_source" json:"target_source,omitempty"`
	AutoEnroll            bool           `db:"auto_enroll" json:"auto_enroll"`
	Active                bool           `db:"active" json:"active"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
}

// Matches reports whether a freshly created lead satisfies the enrollment filters.
func (s *Sequence) Matches(lead *Lead) bool {
	if !s.Active || !s.AutoEnroll {
		return false
	}
	if s.TargetLifecycleStatus.Valid && s.TargetLifecycleStatus.String != string(lead.LifecycleStatus) {
		return false
	}
	if s.TargetSource.Valid && s.TargetSource.String != lead.Source {
		return false
	}
	return true
}

// SequenceStep is one message of a sequence. DelayMinutes is measured from the
// completion of the previous step.
type SequenceStep struct {
	ID           int64     `db:"id" json:"id"`
	SequenceID   int64     `db:"sequence_id" json:"sequence_id"`
	StepOrder    int       `db:"step_order" json:"step_order"`
	DelayMinutes int       `db:"delay_minutes" json:"delay_minutes"`
	TemplateID   string    `db:"template_id" json:"template_id"`
	StopOnReply  bool      `db:"stop_on_reply" json:"stop_on_reply"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Delay returns the step delay as a duration.
func (s *SequenceStep) Delay() time.Duration {
	return time.Duration(s.DelayMinutes) * time.Minute
}

// SequenceAssignment binds one lead to one sequence. Rows are never deleted.
type SequenceAssignment struct {
	ID                 int64            `db:"id" json:"id"`
	LeadID             int64            `db:"lead_id" json:"lead_id"`
	SequenceID         int64            `db:"sequence_id" json:"sequence_id"`
	CurrentStepOrder   int              `db:"current_step_order" json:"current_step_order"`
	Status             AssignmentStatus `db:"status" json:"status"`
	NextSendAt         sql.NullTime     `db:"next_send_at" json:"next_send_at,omitempty"`
	LastSentAt         sql.NullTime     `db:"last_sent_at" json:"last_sent_at,omitempty"`
	CompletedAt        sql.NullTime     `db:"completed_at" json:"completed_at,omitempty"`
	CancellationReason sql.NullString   `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}
