package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
)

func TestDispatchRepository_ClaimAndComplete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)
	ctx := context.Background()

	t.Run("second claim is rejected while in flight", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		rec := claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, time.Now())
		assert.Equal(t, models.StatusPending, rec.Status)
		assert.Equal(t, "+212661234567", rec.Phone)
		assert.Equal(t, "facebook", rec.Source)

		_, _, err := repo.Dispatch().Claim(ctx, &models.ClaimRequest{
			LeadID: lead.ID, TemplateID: "welcome", TriggeredBy: models.TriggeredByBulk, Attempts: 1, At: time.Now(),
		})
		assert.ErrorIs(t, err, repository.ErrDispatchInFlight)
	})

	t.Run("claim of missing lead", func(t *testing.T) {
		cleanupTestData(t, db)
		_, _, err := repo.Dispatch().Claim(ctx, &models.ClaimRequest{
			LeadID: 42, TemplateID: "welcome", TriggeredBy: models.TriggeredByManual, Attempts: 1, At: time.Now(),
		})
		assert.ErrorIs(t, err, repository.ErrLeadNotFound)
	})

	t.Run("completion projects onto the lead", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		now := time.Now()

		rec := finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now),
			models.StatusSent, models.StatusSent, now)
		assert.Equal(t, models.StatusSent, rec.Status)

		got, err := repo.Lead().GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, got.DeliveryStatus)
		assert.Equal(t, 1, got.Attempts)
		assert.Equal(t, rec.ProviderMessageID, got.ProviderMessageID)
		assert.Equal(t, string(models.TriggeredByManual), got.TriggeredBy.String)
		assert.True(t, got.LastSentAt.Valid)
		assert.False(t, got.NextRetryAt.Valid)

		_, err = repo.Dispatch().Complete(ctx, &models.AttemptResult{
			RecordID: rec.ID, Outcome: models.StatusFailed, Status: models.StatusFailed, Attempts: 1, At: now,
		})
		assert.ErrorIs(t, err, repository.ErrNotInFlight)
	})

	t.Run("invalid result is rejected before touching storage", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		rec := claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, time.Now())

		_, err := repo.Dispatch().Complete(ctx, &models.AttemptResult{
			RecordID: rec.ID, Outcome: models.StatusSent, Status: models.StatusSent, Attempts: 1, At: time.Now(),
		})
		assert.Error(t, err)

		_, err = repo.Dispatch().Complete(ctx, &models.AttemptResult{
			RecordID: rec.ID, Outcome: models.StatusInvalidPhone, Status: models.StatusPendingRetry,
			NextRetryAt: sql.NullTime{Time: time.Now(), Valid: true}, Attempts: 1, At: time.Now(),
		})
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run("invalid phone does not count an attempt", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "")
		finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, time.Now()),
			models.StatusInvalidPhone, models.StatusInvalidPhone, time.Now())

		got, err := repo.Lead().GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInvalidPhone, got.DeliveryStatus)
		assert.Equal(t, 0, got.Attempts)
		assert.False(t, got.LastSentAt.Valid)
	})

	t.Run("new claim supersedes a scheduled retry", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		now := time.Now()

		first := finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now),
			models.StatusFailed, models.StatusPendingRetry, now)
		claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now)

		old, err := repo.Dispatch().GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, old.Status)
		assert.False(t, old.NextRetryAt.Valid)

		due, err := repo.Dispatch().DueRetries(ctx, now.Add(time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestDispatchRepository_ApplyProviderStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)
	ctx := context.Background()

	t.Run("callbacks only move forward", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		now := time.Now()
		rec := finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now),
			models.StatusQueued, models.StatusQueued, now)

		byProvider, err := repo.Dispatch().GetByProviderMessageID(ctx, rec.ProviderMessageID.String)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, byProvider.ID)

		updated, changed, err := repo.Dispatch().ApplyProviderStatus(ctx, rec.ID, &models.StatusUpdate{
			ProviderMessageID: rec.ProviderMessageID.String, Status: models.StatusDelivered, At: now,
		})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.StatusDelivered, updated.Status)

		_, changed, err = repo.Dispatch().ApplyProviderStatus(ctx, rec.ID, &models.StatusUpdate{
			ProviderMessageID: rec.ProviderMessageID.String, Status: models.StatusSent, At: now,
		})
		require.NoError(t, err)
		assert.False(t, changed)

		got, err := repo.Lead().GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, got.DeliveryStatus)
	})

	t.Run("async failure schedules a retry", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		now := time.Now()
		rec := finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now),
			models.StatusSent, models.StatusSent, now)

		retryAt := now.Add(time.Minute)
		updated, changed, err := repo.Dispatch().ApplyProviderStatus(ctx, rec.ID, &models.StatusUpdate{
			ProviderMessageID: rec.ProviderMessageID.String,
			Status:            models.StatusFailed,
			ErrorMessage:      sql.NullString{String: "(#131047) Re-engagement message", Valid: true},
			NextRetryAt:       sql.NullTime{Time: retryAt, Valid: true},
			At:                now,
		})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.StatusPendingRetry, updated.Status)
		assert.Equal(t, models.StatusFailed, updated.Outcome)

		got, err := repo.Lead().GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendingRetry, got.DeliveryStatus)
		assert.False(t, got.ProviderMessageID.Valid)
		assert.True(t, got.NextRetryAt.Valid)
	})
}

func TestDispatchRepository_Queries(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)
	ctx := context.Background()

	t.Run("due retries skip invalid and deleted leads", func(t *testing.T) {
		cleanupTestData(t, db)
		leads := insertTestLeads(t, repo, 2)
		now := time.Now()

		due := finishTestAttempt(t, repo, claimTestAttempt(t, repo, leads[0].ID, models.DispatchLink{}, now),
			models.StatusFailed, models.StatusPendingRetry, now)
		finishTestAttempt(t, repo, claimTestAttempt(t, repo, leads[1].ID, models.DispatchLink{}, now),
			models.StatusContactFailed, models.StatusPendingRetry, now)
		require.NoError(t, repo.Lead().SoftDelete(ctx, leads[1].ID, now))

		records, err := repo.Dispatch().DueRetries(ctx, now, 10)
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = repo.Dispatch().DueRetries(ctx, now.Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, due.ID, records[0].ID)
	})

	t.Run("stale in flight", func(t *testing.T) {
		cleanupTestData(t, db)
		leads := insertTestLeads(t, repo, 2)
		now := time.Now()

		old := claimTestAttempt(t, repo, leads[0].ID, models.DispatchLink{}, now.Add(-time.Hour))
		claimTestAttempt(t, repo, leads[1].ID, models.DispatchLink{}, now)

		records, err := repo.Dispatch().StaleInFlight(ctx, now.Add(-10*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, old.ID, records[0].ID)
	})

	t.Run("list by lead is newest first", func(t *testing.T) {
		cleanupTestData(t, db)
		lead := insertTestLead(t, repo, "A", "+212661234567")
		now := time.Now()

		first := finishTestAttempt(t, repo, claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now),
			models.StatusFailed, models.StatusFailed, now)
		second := claimTestAttempt(t, repo, lead.ID, models.DispatchLink{}, now)

		records, err := repo.Dispatch().ListByLead(ctx, lead.ID, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, second.ID, records[0].ID)
		assert.Equal(t, first.ID, records[1].ID)
	})

	t.Run("batch progress counts the latest record per lead", func(t *testing.T) {
		cleanupTestData(t, db)
		leads := insertTestLeads(t, repo, 4)
		now := time.Now()

		ids := make(pq.Int64Array, len(leads))
		for i, l := range leads {
			ids[i] = l.ID
		}
		batch := &models.BulkBatch{ID: uuid.NewString(), TemplateID: "welcome", LeadIDs: ids, Total: len(ids)}
		require.NoError(t, repo.Batch().Create(ctx, batch))

		link := models.DispatchLink{BatchID: sql.NullString{String: batch.ID, Valid: true}}
		finishTestAttempt(t, repo, claimTestAttempt(t, repo, leads[0].ID, link, now), models.StatusSent, models.StatusSent, now)
		finishTestAttempt(t, repo, claimTestAttempt(t, repo, leads[1].ID, link, now), models.StatusQueued, models.StatusQueued, now)
		finishTestAttempt(t, repo, claimTestAttempt(t, repo, leads[2].ID, link, now), models.StatusFailed, models.StatusPendingRetry, now)
		claimTestAttempt(t, repo, leads[3].ID, link, now)

		sent, failed, err := repo.Dispatch().BatchProgress(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, 1, failed)

		got, err := repo.Batch().Get(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Total)
		assert.Equal(t, ids, got.LeadIDs)

		extra := insertTestLead(t, repo, "Skipped Lead", "0661239999")
		require.NoError(t, repo.Batch().MarkSkipped(ctx, batch.ID, []int64{extra.ID, leads[0].ID}))
		require.NoError(t, repo.Batch().MarkSkipped(ctx, batch.ID, []int64{extra.ID}))

		sent, failed, err = repo.Dispatch().BatchProgress(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, 2, failed)

		got, err = repo.Batch().Get(ctx, batch.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{extra.ID, leads[0].ID}, []int64(got.SkippedIDs))
		assert.ErrorIs(t, repo.Batch().MarkSkipped(ctx, uuid.NewString(), []int64{extra.ID}), repository.ErrBatchNotFound)

		_, err = repo.Batch().Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrBatchNotFound)
		_, err = repo.Batch().Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, repository.ErrBatchNotFound)
	})
}
