package memstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
	"github.com/popeskul/lead-messenger/internal/repository/memstore"
)

func createLead(t *testing.T, store *memstore.Store, phone string) *models.Lead {
	t.Helper()
	lead := &models.Lead{
		Name:            "Test Lead",
		Phone:           phone,
		NormalizedPhone: sql.NullString{String: phone, Valid: true},
		Source:          "facebook",
	}
	require.NoError(t, store.Lead().Create(context.Background(), lead))
	return lead
}

func TestStore_ClaimRejectsSecondInFlight(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	lead := createLead(t, store, "+212661234567")

	req := &models.ClaimRequest{LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByManual, Attempts: 1, At: time.Now()}
	claimed, rec, err := store.Dispatch().Claim(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, claimed.DeliveryStatus)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, "+212661234567", rec.Phone)

	_, _, err = store.Dispatch().Claim(ctx, req)
	assert.ErrorIs(t, err, repository.ErrDispatchInFlight)
}

func TestStore_CompleteProjectsOntoLead(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	lead := createLead(t, store, "+212661234567")
	now := time.Now()

	_, rec, err := store.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByAuto, Attempts: 1, At: now,
	})
	require.NoError(t, err)

	retryAt := now.Add(time.Minute)
	_, err = store.Dispatch().Complete(ctx, &models.AttemptResult{
		RecordID:     rec.ID,
		Phone:        rec.Phone,
		Outcome:      models.StatusFailed,
		Status:       models.StatusPendingRetry,
		ErrorMessage: sql.NullString{String: "timeout", Valid: true},
		NextRetryAt:  sql.NullTime{Time: retryAt, Valid: true},
		Attempts:     1,
		CountAttempt: true,
		At:           now,
	})
	require.NoError(t, err)

	got, err := store.Lead().GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingRetry, got.DeliveryStatus)
	assert.Equal(t, 1, got.Attempts)
	assert.True(t, got.NextRetryAt.Time.Equal(retryAt))
	assert.Equal(t, "timeout", got.LastError.String)

	due, err := store.Dispatch().DueRetries(ctx, retryAt, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, rec.ID, due[0].ID)

	// completing twice is rejected
	_, err = store.Dispatch().Complete(ctx, &models.AttemptResult{
		RecordID: rec.ID, Outcome: models.StatusFailed, Status: models.StatusFailed, Attempts: 1, At: now,
	})
	assert.ErrorIs(t, err, repository.ErrNotInFlight)
}

func TestStore_ClaimSupersedesScheduledRetry(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	lead := createLead(t, store, "+212661234567")
	now := time.Now()

	_, rec, err := store.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByAuto, Attempts: 1, At: now,
	})
	require.NoError(t, err)
	_, err = store.Dispatch().Complete(ctx, &models.AttemptResult{
		RecordID: rec.ID, Outcome: models.StatusContactFailed, Status: models.StatusPendingRetry,
		NextRetryAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true}, Attempts: 1, CountAttempt: true, At: now,
	})
	require.NoError(t, err)

	_, _, err = store.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID: lead.ID, TemplateID: "follow_up", TriggeredBy: models.TriggeredByManual, Attempts: 1, At: now,
	})
	require.NoError(t, err)

	old, err := store.Dispatch().GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusContactFailed, old.Status)
	assert.False(t, old.NextRetryAt.Valid)
}

func TestStore_ApplyProviderStatus(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	lead := createLead(t, store, "+212661234567")
	now := time.Now()

	_, rec, err := store.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByBulk, Attempts: 1, At: now,
	})
	require.NoError(t, err)
	_, err = store.Dispatch().Complete(ctx, &models.AttemptResult{
		RecordID: rec.ID, Outcome: models.StatusQueued, Status: models.StatusQueued,
		ProviderMessageID: sql.NullString{String: "wamid.1", Valid: true}, Attempts: 1, CountAttempt: true, At: now,
	})
	require.NoError(t, err)

	updated, changed, err := store.Dispatch().ApplyProviderStatus(ctx, rec.ID, &models.StatusUpdate{
		ProviderMessageID: "wamid.1", Status: models.StatusDelivered, At: now,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.StatusDelivered, updated.Status)

	// a late "sent" after "delivered" is ignored
	_, changed, err = store.Dispatch().ApplyProviderStatus(ctx, rec.ID, &models.StatusUpdate{
		ProviderMessageID: "wamid.1", Status: models.StatusSent, At: now,
	})
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := store.Lead().GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.DeliveryStatus)
	assert.Equal(t, "wamid.1", got.ProviderMessageID.String)
}

func TestStore_BatchProgressCountsLatestRecord(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	now := time.Now()
	batch := sql.NullString{String: "b1", Valid: true}

	outcomes := []models.DeliveryStatus{models.StatusSent, models.StatusFailed, models.StatusPending}
	for i, outcome := range outcomes {
		lead := createLead(t, store, "+21266123456"+string(rune('0'+i)))
		_, rec, err := store.Dispatch().Claim(ctx, &models.ClaimRequest{
			LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByBulk,
			Link: models.DispatchLink{BatchID: batch}, Attempts: 1, At: now,
		})
		require.NoError(t, err)
		if outcome == models.StatusPending {
			continue
		}
		res := &models.AttemptResult{RecordID: rec.ID, Outcome: outcome, Status: outcome, Attempts: 1, CountAttempt: true, At: now}
		if outcome == models.StatusSent {
			res.ProviderMessageID = sql.NullString{String: "wamid.ok", Valid: true}
		}
		_, err = store.Dispatch().Complete(ctx, res)
		require.NoError(t, err)
	}

	sent, failed, err := store.Dispatch().BatchProgress(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
}

func TestStore_SkippedBatchLeadsCountAsFailed(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	now := time.Now()

	sentLead := createLead(t, store, "+212661234560")
	skippedLead := createLead(t, store, "+212661234561")
	require.NoError(t, store.Batch().Create(ctx, &models.BulkBatch{
		ID: "b2", TemplateID: "welcome", LeadIDs: []int64{sentLead.ID, skippedLead.ID}, Total: 2,
	}))

	_, rec, err := store.Dispatch().Claim(ctx, &models.ClaimRequest{
		LeadID: sentLead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByBulk,
		Link: models.DispatchLink{BatchID: sql.NullString{String: "b2", Valid: true}}, Attempts: 1, At: now,
	})
	require.NoError(t, err)
	_, err = store.Dispatch().Complete(ctx, &models.AttemptResult{
		RecordID: rec.ID, Outcome: models.StatusSent, Status: models.StatusSent, Attempts: 1, CountAttempt: true, At: now,
		ProviderMessageID: sql.NullString{String: "wamid.ok", Valid: true},
	})
	require.NoError(t, err)

	// A lead with its own record is counted from that record only.
	require.NoError(t, store.Batch().MarkSkipped(ctx, "b2", []int64{skippedLead.ID, sentLead.ID}))
	require.NoError(t, store.Batch().MarkSkipped(ctx, "b2", []int64{skippedLead.ID}))

	sent, failed, err := store.Dispatch().BatchProgress(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)

	batch, err := store.Batch().Get(ctx, "b2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{skippedLead.ID, sentLead.ID}, []int64(batch.SkippedIDs))

	assert.ErrorIs(t, store.Batch().MarkSkipped(ctx, "missing", []int64{1}), repository.ErrBatchNotFound)
}

func TestStore_SequenceAssignmentCAS(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	lead := createLead(t, store, "+212661234567")
	now := time.Now()

	seq := &models.Sequence{Name: "onboarding", Active: true}
	steps := []*models.SequenceStep{
		{StepOrder: 2, DelayMinutes: 60, TemplateID: "follow_up"},
		{StepOrder: 1, TemplateID: "welcome"},
	}
	require.NoError(t, store.Sequence().Create(ctx, seq, steps))

	_, got, err := store.Sequence().Get(ctx, seq.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].StepOrder)

	a, err := store.Sequence().Enroll(ctx, lead.ID, seq.ID, now)
	require.NoError(t, err)
	_, err = store.Sequence().Enroll(ctx, lead.ID, seq.ID, now)
	assert.ErrorIs(t, err, repository.ErrAlreadyEnrolled)

	require.NoError(t, store.Sequence().Advance(ctx, a.ID, 0, now, now.Add(time.Hour)))
	assert.ErrorIs(t, store.Sequence().Advance(ctx, a.ID, 0, now, now), repository.ErrStaleAssignment)

	require.NoError(t, store.Sequence().Pause(ctx, a.ID))
	assert.ErrorIs(t, store.Sequence().Complete(ctx, a.ID, now), repository.ErrAssignmentClosed)
	require.NoError(t, store.Sequence().Resume(ctx, a.ID, now))

	resumed, err := store.Sequence().GetAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, resumed.NextSendAt.Time.Equal(now.Add(time.Hour)))

	require.NoError(t, store.Sequence().Cancel(ctx, a.ID, models.CancellationReasonReplied, now))
	assert.ErrorIs(t, store.Sequence().Cancel(ctx, a.ID, "again", now), repository.ErrAssignmentClosed)

	// a cancelled assignment frees the pair for a fresh enrollment
	_, err = store.Sequence().Enroll(ctx, lead.ID, seq.ID, now)
	assert.NoError(t, err)
}
