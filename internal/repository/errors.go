package repository

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrRecordNotFound     = errors.New("dispatch record not found")
	ErrSequenceNotFound   = errors.New("sequence not found")
	ErrStepNotFound       = errors.New("sequence step not found")
	ErrAssignmentNotFound = errors.New("sequence assignment not found")
	ErrBatchNotFound      = errors.New("bulk batch not found")

	// ErrDispatchInFlight is returned when a lead already has a pending attempt.
	ErrDispatchInFlight = errors.New("dispatch already in flight for lead")
	// ErrDeliveryOpen is returned when verifying a lead whose last message is still awaiting its outcome.
	ErrDeliveryOpen = errors.New("lead has a delivery awaiting its outcome")
	// ErrNotInFlight is returned when completing a record that is no longer pending.
	ErrNotInFlight = errors.New("dispatch record is not in flight")
	// ErrRetrySuperseded is returned when a scheduled retry was replaced by a newer attempt.
	ErrRetrySuperseded = errors.New("scheduled retry was superseded")

	ErrAlreadyEnrolled  = errors.New("lead already enrolled in sequence")
	ErrAssignmentClosed = errors.New("sequence assignment is closed")
	// ErrStaleAssignment is returned when an assignment moved since it was read.
	ErrStaleAssignment = errors.New("sequence assignment changed concurrently")
)
