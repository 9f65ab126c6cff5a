// Package models defines data structures used throughout the application.
package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a delivery status change is not in the transition table.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

// DeliveryStatus is the delivery state of a lead's most recent message attempt.
type DeliveryStatus string

const (
	StatusNotSent       DeliveryStatus = "not_sent"
	StatusPending       DeliveryStatus = "pending"
	StatusQueued        DeliveryStatus = "queued"
	StatusSent          DeliveryStatus = "sent"
	StatusDelivered     DeliveryStatus = "delivered"
	StatusFailed        DeliveryStatus = "failed"
	StatusContactExists DeliveryStatus = "contact_exists"
	StatusContactFailed DeliveryStatus = "contact_failed"
	StatusInvalidPhone  DeliveryStatus = "invalid_phone"
	StatusPendingRetry  DeliveryStatus = "pending_retry"
)

// transitions lists every legal next state. A move to pending from a resting
// state means a new message is being dispatched to the lead.
var transitions = map[DeliveryStatus][]DeliveryStatus{
	StatusNotSent: {StatusPending},
	StatusPending: {
		StatusQueued, StatusSent, StatusDelivered, StatusFailed,
		StatusContactExists, StatusContactFailed, StatusInvalidPhone,
	},
	StatusQueued:        {StatusSent, StatusDelivered, StatusFailed, StatusPending},
	StatusSent:          {StatusDelivered, StatusFailed, StatusPending},
	StatusDelivered:     {StatusPending},
	StatusFailed:        {StatusPendingRetry, StatusPending},
	StatusContactExists: {StatusPending},
	StatusContactFailed: {StatusPendingRetry, StatusPending},
	StatusInvalidPhone:  {StatusPending, StatusNotSent},
	StatusPendingRetry:  {StatusPending},
}

// AllStatuses returns every known delivery status.
func AllStatuses() []DeliveryStatus {
	return []DeliveryStatus{
		StatusNotSent, StatusPending, StatusQueued, StatusSent, StatusDelivered, StatusFailed,
		StatusContactExists, StatusContactFailed, StatusInvalidPhone, StatusPendingRetry,
	}
}

// Valid reports whether s is a known status.
func (s DeliveryStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HasProviderMessage reports whether a lead in this status carries a provider message id.
func (s DeliveryStatus) HasProviderMessage() bool {
	return s == StatusQueued || s == StatusSent || s == StatusDelivered
}

// Retryable reports whether the retry scheduler may act on an attempt with this outcome.
func (s DeliveryStatus) Retryable() bool {
	return s == StatusFailed || s == StatusContactFailed
}

// AwaitingOutcome reports whether a lead in this status has a message whose
// outcome can still change, through a scheduled retry or a provider callback.
func (s DeliveryStatus) AwaitingOutcome() bool {
	return s == StatusPendingRetry || s == StatusQueued || s == StatusSent
}

// Succeeded reports whether the provider accepted the message.
func (s DeliveryStatus) Succeeded() bool {
	return s.HasProviderMessage()
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not allowed.
func ValidateTransition(from, to DeliveryStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// TriggeredBy names the delivery mode that produced a dispatch.
type TriggeredBy string

const (
	TriggeredByAuto     TriggeredBy = "auto"
	TriggeredByManual   TriggeredBy = "manual"
	TriggeredByBulk     TriggeredBy = "bulk"
	TriggeredBySequence TriggeredBy = "sequence"
)

// Valid reports whether t is a known trigger.
func (t TriggeredBy) Valid() bool {
	switch t {
	case TriggeredByAuto, TriggeredByManual, TriggeredByBulk, TriggeredBySequence:
		return true
	}
	return false
}
