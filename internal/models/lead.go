package models

import (
	"database/sql"
	"time"
)

// LifecycleStatus is the business pipeline stage of a lead. It is independent of delivery status.
type LifecycleStatus string

const (
	LifecycleNew       LifecycleStatus = "new"
	LifecycleContacted LifecycleStatus = "contacted"
	LifecycleQualified LifecycleStatus = "qualified"
	LifecycleConverted LifecycleStatus = "converted"
	LifecycleLost      LifecycleStatus = "lost"
)

// Lead represents a captured contact together with its delivery summary.
type Lead struct {
	ID              int64           `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Phone           string          `db:"phone" json:"phone"`
	NormalizedPhone sql.NullString  `db:"normalized_phone" json:"normalized_phone,omitempty"`
	Email           sql.NullString  `db:"email" json:"email,omitempty"`
	Program         string          `db:"program" json:"program"`
	Source          string          `db:"source" json:"source"`
	SourceInfo      string          `db:"source_info" json:"source_info"`
	LifecycleStatus LifecycleStatus `db:"lifecycle_status" json:"lifecycle_status"`

	DeliveryStatus    DeliveryStatus `db:"delivery_status" json:"delivery_status"`
	Attempts          int            `db:"attempts" json:"attempts"`
	LastSentAt        sql.NullTime   `db:"last_sent_at" json:"last_sent_at,omitempty"`
	NextRetryAt       sql.NullTime   `db:"next_retry_at" json:"next_retry_at,omitempty"`
	LastError         sql.NullString `db:"last_error" json:"last_error,omitempty"`
	TriggeredBy       sql.NullString `db:"triggered_by" json:"triggered_by,omitempty"`
	ProviderMessageID sql.NullString `db:"provider_message_id" json:"provider_message_id,omitempty"`
	LastRepliedAt     sql.NullTime   `db:"last_replied_at" json:"last_replied_at,omitempty"`

	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
	DeletedAt sql.NullTime `db:"deleted_at" json:"-"`
}

// FirstName returns the first word of the lead's name.
func (l *Lead) FirstName() string {
	for i, r := range l.Name {
		if r == ' ' {
			return l.Name[:i]
		}
	}
	return l.Name
}

// BulkFilter is a named recipient selection for bulk sends.
type BulkFilter string

const (
	FilterAllUnsent    BulkFilter = "all_unsent"
	FilterAllNew       BulkFilter = "all_new"
	FilterAllFailed    BulkFilter = "all_failed"
	FilterPendingRetry BulkFilter = "pending_retry"
)

// Valid reports whether f is a known filter.
func (f BulkFilter) Valid() bool {
	switch f {
	case FilterAllUnsent, FilterAllNew, FilterAllFailed, FilterPendingRetry:
		return true
	}
	return false
}

// Statuses returns the delivery statuses a filter selects. all_new additionally
// requires the lifecycle stage to be new.
func (f BulkFilter) Statuses() []DeliveryStatus {
	switch f {
	case FilterAllUnsent:
		return []DeliveryStatus{StatusNotSent, StatusFailed, StatusContactFailed}
	case FilterAllNew:
		return []DeliveryStatus{StatusNotSent}
	case FilterAllFailed:
		return []DeliveryStatus{StatusFailed, StatusContactFailed}
	case FilterPendingRetry:
		return []DeliveryStatus{StatusPendingRetry}
	}
	return nil
}
