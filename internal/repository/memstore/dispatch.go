package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
)

type dispatchStore struct {
	*Store
}

func (s *dispatchStore) Claim(_ context.Context, req *models.ClaimRequest) (*models.Lead, *models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.liveLead(req.LeadID)
	if err != nil {
		return nil, nil, err
	}
	if lead.DeliveryStatus == models.StatusPending {
		return nil, nil, repository.ErrDispatchInFlight
	}
	if req.Verification() && lead.DeliveryStatus.AwaitingOutcome() {
		return nil, nil, repository.ErrDeliveryOpen
	}
	if err := models.ValidateTransition(lead.DeliveryStatus, models.StatusPending); err != nil {
		return nil, nil, err
	}
	if req.RetryOf != 0 {
		prev, err := s.record(req.RetryOf)
		if err != nil || prev.LeadID != lead.ID {
			return nil, nil, repository.ErrRecordNotFound
		}
		if prev.Status != models.StatusPendingRetry {
			return nil, nil, repository.ErrRetrySuperseded
		}
	}

	for _, rec := range s.records {
		if rec.LeadID == lead.ID && rec.Status == models.StatusPendingRetry {
			rec.Status = rec.Outcome
			rec.NextRetryAt = sql.NullTime{}
			rec.UpdatedAt = s.now()
		}
	}

	phone := lead.Phone
	if lead.NormalizedPhone.Valid {
		phone = lead.NormalizedPhone.String
	}

	s.recordSeq++
	rec := &models.DispatchRecord{
		ID:           s.recordSeq,
		LeadID:       lead.ID,
		Phone:        phone,
		TemplateID:   req.TemplateID,
		Source:       lead.Source,
		SourceInfo:   lead.SourceInfo,
		TriggeredBy:  req.TriggeredBy,
		SequenceID:   req.Link.SequenceID,
		StepID:       req.Link.StepID,
		AssignmentID: req.Link.AssignmentID,
		BatchID:      req.Link.BatchID,
		Status:       models.StatusPending,
		Outcome:      models.StatusPending,
		Attempts:     req.Attempts,
		CreatedAt:    req.At,
		UpdatedAt:    req.At,
	}
	s.records = append(s.records, rec)

	lead.DeliveryStatus = models.StatusPending
	lead.NextRetryAt = sql.NullTime{}
	lead.ProviderMessageID = sql.NullString{}
	lead.TriggeredBy = valid(string(req.TriggeredBy))
	lead.UpdatedAt = s.now()

	return copyLead(lead), copyRecord(rec), nil
}

func (s *dispatchStore) Complete(_ context.Context, res *models.AttemptResult) (*models.DispatchRecord, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(res.RecordID)
	if err != nil {
		return nil, err
	}
	lead, err := s.liveLead(rec.LeadID)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: record %d is %s", repository.ErrNotInFlight, rec.ID, rec.Status)
	}

	rec.Phone = res.Phone
	rec.Message = res.Message
	rec.Status = res.Status
	rec.Outcome = res.Outcome
	rec.ProviderMessageID = res.ProviderMessageID
	rec.ErrorMessage = res.ErrorMessage
	rec.Attempts = res.Attempts
	rec.NextRetryAt = res.NextRetryAt
	rec.UpdatedAt = s.now()

	if lead.DeliveryStatus == models.StatusPending && s.isLatest(rec) {
		lead.DeliveryStatus = res.Status
		if res.CountAttempt {
			lead.Attempts++
			lead.LastSentAt = sql.NullTime{Time: res.At, Valid: true}
		}
		lead.NextRetryAt = res.NextRetryAt
		lead.LastError = res.ErrorMessage
		lead.ProviderMessageID = sql.NullString{}
		if res.Status.HasProviderMessage() {
			lead.ProviderMessageID = res.ProviderMessageID
		}
		lead.UpdatedAt = s.now()
	}

	return copyRecord(rec), nil
}

func (s *dispatchStore) ApplyProviderStatus(_ context.Context, recordID int64, upd *models.StatusUpdate) (*models.DispatchRecord, bool, error) {
	target := upd.Status
	final := target
	if target == models.StatusFailed && upd.NextRetryAt.Valid {
		final = models.StatusPendingRetry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(recordID)
	if err != nil {
		return nil, false, err
	}
	lead, err := s.liveLead(rec.LeadID)
	if err != nil {
		return nil, false, err
	}
	if !rec.Status.HasProviderMessage() || !rec.Status.CanTransitionTo(target) {
		return copyRecord(rec), false, nil
	}

	nextRetry := sql.NullTime{}
	if final == models.StatusPendingRetry {
		nextRetry = upd.NextRetryAt
	}

	previous := rec.Status
	rec.Status = final
	rec.Outcome = target
	if upd.ErrorMessage.Valid {
		rec.ErrorMessage = upd.ErrorMessage
	}
	rec.NextRetryAt = nextRetry
	rec.UpdatedAt = s.now()

	if lead.DeliveryStatus == previous && s.isLatest(rec) {
		lead.DeliveryStatus = final
		lead.NextRetryAt = nextRetry
		if upd.ErrorMessage.Valid {
			lead.LastError = upd.ErrorMessage
		}
		if !final.HasProviderMessage() {
			lead.ProviderMessageID = sql.NullString{}
		}
		lead.UpdatedAt = s.now()
	}

	return copyRecord(rec), true, nil
}

func (s *dispatchStore) GetByID(_ context.Context, id int64) (*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.record(id)
	if err != nil {
		return nil, err
	}
	return copyRecord(rec), nil
}

func (s *dispatchStore) GetByProviderMessageID(_ context.Context, providerMessageID string) (*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ProviderMessageID.Valid && rec.ProviderMessageID.String == providerMessageID {
			return copyRecord(rec), nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (s *dispatchStore) ListByLead(_ context.Context, leadID int64, limit int) ([]*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.DispatchRecord
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].LeadID == leadID {
			out = append(out, copyRecord(s.records[i]))
		}
	}
	return out, nil
}

func (s *dispatchStore) DueRetries(_ context.Context, now time.Time, limit int) ([]*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.DispatchRecord
	for _, rec := range s.records {
		if rec.Status != models.StatusPendingRetry || rec.NextRetryAt.Time.After(now) {
			continue
		}
		lead, err := s.liveLead(rec.LeadID)
		if err != nil || lead.DeliveryStatus == models.StatusInvalidPhone {
			continue
		}
		out = append(out, copyRecord(rec))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NextRetryAt.Time.Before(out[j].NextRetryAt.Time) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *dispatchStore) StaleInFlight(_ context.Context, olderThan time.Time, limit int) ([]*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.DispatchRecord
	for _, rec := range s.records {
		if rec.Status == models.StatusPending && rec.CreatedAt.Before(olderThan) {
			out = append(out, copyRecord(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *dispatchStore) LatestStepAttempt(_ context.Context, assignmentID, stepID int64) (*models.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.AssignmentID.Int64 == assignmentID && rec.AssignmentID.Valid &&
			rec.StepID.Int64 == stepID && rec.StepID.Valid {
			return copyRecord(rec), nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (s *dispatchStore) BatchProgress(_ context.Context, batchID string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := make(map[int64]models.DeliveryStatus)
	for _, rec := range s.records {
		if rec.BatchID.Valid && rec.BatchID.String == batchID {
			latest[rec.LeadID] = rec.Status
		}
	}

	var sent, failed int
	if batch, ok := s.batches[batchID]; ok {
		for _, id := range batch.SkippedIDs {
			if _, recorded := latest[id]; !recorded {
				failed++
			}
		}
	}
	for _, st := range latest {
		switch st {
		case models.StatusQueued, models.StatusSent, models.StatusDelivered:
			sent++
		case models.StatusFailed, models.StatusContactFailed, models.StatusInvalidPhone, models.StatusPendingRetry:
			failed++
		}
	}
	return sent, failed, nil
}
