package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/repository"
)

const (
	errInterrupted     = "dispatch interrupted"
	errNotOnWhatsApp   = "phone is not reachable on WhatsApp"
	errMissingProvider = "provider accepted the message without a message id"
)

// DispatchRequest asks for one attempt of one template against one lead.
type DispatchRequest struct {
	LeadID      int64
	TemplateID  string
	TriggeredBy models.TriggeredBy
	Link        models.DispatchLink
	// Attempts is the position of this attempt in its retry chain. Zero means first.
	Attempts int
	// RetryOf is set when the attempt takes over a scheduled retry.
	RetryOf int64
}

// Dispatcher runs the delivery state machine. Provider and contact failures
// never surface as errors: they are recorded on the dispatch record. Errors are
// returned only when no attempt could be opened or its outcome could not be stored.
type Dispatcher struct {
	repo        repository.Repository
	normalizer  *phone.Normalizer
	resolver    ContactResolver
	sender      MessageSender
	renderer    MessageRenderer
	policy      *RetryPolicy
	index       MessageIndex
	sendTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger

	mu        sync.RWMutex
	observers []OutcomeObserver
}

// DispatcherDeps are the collaborators of a Dispatcher. Index is optional.
type DispatcherDeps struct {
	Repo        repository.Repository
	Normalizer  *phone.Normalizer
	Resolver    ContactResolver
	Sender      MessageSender
	Renderer    MessageRenderer
	Policy      *RetryPolicy
	Index       MessageIndex
	SendTimeout time.Duration
	Now         func() time.Time
}

func NewDispatcher(deps DispatcherDeps, logger *zap.Logger) *Dispatcher {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	timeout := deps.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{
		repo:        deps.Repo,
		normalizer:  deps.Normalizer,
		resolver:    deps.Resolver,
		sender:      deps.Sender,
		renderer:    deps.Renderer,
		policy:      deps.Policy,
		index:       deps.Index,
		sendTimeout: timeout,
		now:         now,
		logger:      logger,
	}
}

// Subscribe registers an observer for every recorded outcome.
func (d *Dispatcher) Subscribe(o OutcomeObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Dispatch claims the lead, runs one attempt and records its outcome.
// repository.ErrDispatchInFlight is returned when the lead already has an attempt in flight.
func (d *Dispatcher) Dispatch(ctx context.Context, req *DispatchRequest) (*models.DispatchRecord, error) {
	if _, ok := d.renderer.Lookup(req.TemplateID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, req.TemplateID)
	}

	attempts := req.Attempts
	if attempts < 1 {
		attempts = 1
	}

	lead, rec, err := d.repo.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID:      req.LeadID,
		TemplateID:  req.TemplateID,
		TriggeredBy: req.TriggeredBy,
		Link:        req.Link,
		Attempts:    attempts,
		RetryOf:     req.RetryOf,
		At:          d.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("claim lead %d: %w", req.LeadID, err)
	}

	return d.complete(ctx, d.attempt(ctx, lead, rec))
}

// Retry re-dispatches a due pending_retry record as the next attempt of its chain.
func (d *Dispatcher) Retry(ctx context.Context, rec *models.DispatchRecord) (*models.DispatchRecord, error) {
	return d.Dispatch(ctx, &DispatchRequest{
		LeadID:      rec.LeadID,
		TemplateID:  rec.TemplateID,
		TriggeredBy: rec.TriggeredBy,
		Link:        rec.Link(),
		Attempts:    rec.Attempts + 1,
		RetryOf:     rec.ID,
	})
}

// Verify checks the lead's phone without sending. The outcome is contact_exists,
// invalid_phone or contact_failed; no attempt is counted and no retry scheduled.
func (d *Dispatcher) Verify(ctx context.Context, leadID int64) (*models.DispatchRecord, error) {
	lead, rec, err := d.repo.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID:      leadID,
		TriggeredBy: models.TriggeredByManual,
		At:          d.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("claim lead %d: %w", leadID, err)
	}

	res := &models.AttemptResult{RecordID: rec.ID, Phone: rec.Phone, At: d.now()}
	normalized, err := d.normalizer.Normalize(lead.Phone)
	switch {
	case err != nil:
		setOutcome(res, models.StatusInvalidPhone, err.Error())
	default:
		res.Phone = normalized
		resolution := d.resolver.Resolve(ctx, normalized)
		switch resolution.Reachability {
		case provider.Deliverable:
			setOutcome(res, models.StatusContactExists, "")
		case provider.Unreachable:
			setOutcome(res, models.StatusInvalidPhone, errNotOnWhatsApp)
		default:
			setOutcome(res, models.StatusContactFailed, resolutionError(resolution))
		}
	}

	return d.complete(ctx, res)
}

// RecoverStale closes an attempt left pending by a crash as a failed attempt,
// handing it to the retry policy. Verification records are closed without retry.
func (d *Dispatcher) RecoverStale(ctx context.Context, rec *models.DispatchRecord) (*models.DispatchRecord, error) {
	res := &models.AttemptResult{
		RecordID: rec.ID,
		Phone:    rec.Phone,
		Message:  rec.Message,
		Attempts: rec.Attempts,
		At:       d.now(),
	}
	if rec.TemplateID == "" {
		setOutcome(res, models.StatusContactFailed, errInterrupted)
	} else {
		res.CountAttempt = true
		d.fail(res, models.StatusFailed, "", errInterrupted)
	}
	return d.complete(ctx, res)
}

// ApplyStatus records an asynchronous provider status for an accepted record.
// A failure re-enters the retry policy.
func (d *Dispatcher) ApplyStatus(ctx context.Context, rec *models.DispatchRecord, ev *StatusEvent) (*models.DispatchRecord, error) {
	upd := &models.StatusUpdate{
		ProviderMessageID: ev.ProviderMessageID,
		Status:            ev.Status,
		ErrorMessage:      nullString(ev.ErrorMessage),
		At:                ev.At,
	}
	if ev.Status == models.StatusFailed {
		if next, ok := d.policy.Decide(models.StatusFailed, rec.Attempts, ev.ErrorCode, d.now()); ok {
			upd.NextRetryAt = sql.NullTime{Time: next, Valid: true}
		}
	}

	updated, changed, err := d.repo.Dispatch().ApplyProviderStatus(ctx, rec.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("apply provider status to record %d: %w", rec.ID, err)
	}
	if !changed {
		d.logger.Debug("Ignoring stale provider status",
			zap.Int64("record_id", rec.ID),
			zap.String("status", string(ev.Status)),
			zap.String("current", string(updated.Status)))
		return updated, nil
	}

	d.logOutcome("Provider status applied", updated)
	d.notify(ctx, updated)
	return updated, nil
}

// attempt runs normalization, contact resolution, rendering and the send.
func (d *Dispatcher) attempt(ctx context.Context, lead *models.Lead, rec *models.DispatchRecord) *models.AttemptResult {
	res := &models.AttemptResult{
		RecordID: rec.ID,
		Phone:    rec.Phone,
		Attempts: rec.Attempts,
		At:       d.now(),
	}

	normalized, err := d.normalizer.Normalize(lead.Phone)
	if err != nil {
		setOutcome(res, models.StatusInvalidPhone, err.Error())
		return res
	}
	res.Phone = normalized

	resolution := d.resolver.Resolve(ctx, normalized)
	switch resolution.Reachability {
	case provider.Unreachable:
		setOutcome(res, models.StatusInvalidPhone, errNotOnWhatsApp)
		return res
	case provider.Unavailable:
		res.CountAttempt = true
		d.fail(res, models.StatusContactFailed, "", resolutionError(resolution))
		return res
	}

	res.CountAttempt = true
	rendered, err := d.renderer.Render(rec.TemplateID, lead, normalized)
	if err != nil {
		// a template that cannot render will not render on retry either
		setOutcome(res, models.StatusFailed, err.Error())
		return res
	}
	res.Message = rendered.Text

	name := rendered.Template.ProviderName
	if name == "" {
		name = rendered.Template.ID
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	result, err := d.sender.Send(sendCtx, provider.SendRequest{
		Phone:     normalized,
		Template:  name,
		Language:  rendered.Template.Language,
		Variables: rendered.Variables,
	})
	switch {
	case err != nil:
		d.fail(res, models.StatusFailed, "", err.Error())
	case !result.Accepted:
		d.fail(res, models.StatusFailed, result.ErrorCode, providerError(result))
	case result.MessageID == "":
		d.fail(res, models.StatusFailed, "", errMissingProvider)
	default:
		status := models.StatusSent
		if result.Async {
			status = models.StatusQueued
		}
		setOutcome(res, status, "")
		res.ProviderMessageID = sql.NullString{String: result.MessageID, Valid: true}
	}
	return res
}

// fail records a retryable outcome and asks the policy for the next attempt.
func (d *Dispatcher) fail(res *models.AttemptResult, outcome models.DeliveryStatus, code, msg string) {
	setOutcome(res, outcome, msg)
	if next, ok := d.policy.Decide(outcome, res.Attempts, code, res.At); ok {
		res.Status = models.StatusPendingRetry
		res.NextRetryAt = sql.NullTime{Time: next, Valid: true}
	}
}

// complete stores the outcome even when the caller's context is already canceled,
// so an attempt that reached the provider is never left pending.
func (d *Dispatcher) complete(ctx context.Context, res *models.AttemptResult) (*models.DispatchRecord, error) {
	ctx = context.WithoutCancel(ctx)

	rec, err := d.repo.Dispatch().Complete(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("record outcome of attempt %d: %w", res.RecordID, err)
	}

	if rec.ProviderMessageID.Valid && d.index != nil {
		if err := d.index.Put(ctx, rec.ProviderMessageID.String, rec.ID); err != nil {
			d.logger.Warn("Failed to index provider message id",
				zap.Int64("record_id", rec.ID),
				zap.Error(err))
		}
	}

	d.logOutcome("Dispatch attempt recorded", rec)
	d.notify(ctx, rec)
	return rec, nil
}

func (d *Dispatcher) notify(ctx context.Context, rec *models.DispatchRecord) {
	d.mu.RLock()
	observers := d.observers
	d.mu.RUnlock()

	for _, o := range observers {
		o.OnDispatchOutcome(ctx, rec)
	}
}

func (d *Dispatcher) logOutcome(msg string, rec *models.DispatchRecord) {
	fields := []zap.Field{
		zap.Int64("lead_id", rec.LeadID),
		zap.Int64("record_id", rec.ID),
		zap.String("status", string(rec.Status)),
		zap.String("outcome", string(rec.Outcome)),
		zap.Int("attempts", rec.Attempts),
		zap.String("triggered_by", string(rec.TriggeredBy)),
	}
	if rec.ProviderMessageID.Valid {
		fields = append(fields, zap.String("provider_message_id", rec.ProviderMessageID.String))
	}
	if rec.ErrorMessage.Valid {
		fields = append(fields, zap.String("error", rec.ErrorMessage.String))
	}
	if rec.NextRetryAt.Valid {
		fields = append(fields, zap.Time("next_retry_at", rec.NextRetryAt.Time))
	}

	if rec.Status.Succeeded() || rec.Status == models.StatusContactExists {
		d.logger.Info(msg, fields...)
		return
	}
	d.logger.Warn(msg, fields...)
}

func setOutcome(res *models.AttemptResult, status models.DeliveryStatus, msg string) {
	res.Outcome = status
	res.Status = status
	res.ErrorMessage = nullString(msg)
	res.NextRetryAt = sql.NullTime{}
}

func resolutionError(r provider.Resolution) string {
	if r.Err != nil {
		return "contact resolution failed: " + r.Err.Error()
	}
	return "contact resolution failed"
}

// providerError keeps the provider's rejection verbatim.
func providerError(r *provider.SendResult) string {
	switch {
	case r.ErrorCode != "" && r.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", r.ErrorCode, r.ErrorMessage)
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.ErrorCode != "":
		return r.ErrorCode
	}
	return "rejected by provider"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isSkippable reports dispatch errors a sweep leaves for a later run.
func isSkippable(err error) bool {
	return errors.Is(err, repository.ErrDispatchInFlight) ||
		errors.Is(err, repository.ErrRetrySuperseded) ||
		errors.Is(err, repository.ErrNotInFlight)
}
