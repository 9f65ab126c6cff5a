package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
	"github.com/popeskul/lead-messenger/internal/service"
)

// A batch of 50 where the provider permanently rejects 5 numbers ends 45 sent, 5 failed.
func TestBulkService_SendsBatch(t *testing.T) {
	h := newHarness(t)
	seq := 0
	h.sender.reply = func(req provider.SendRequest) (*provider.SendResult, error) {
		if strings.HasSuffix(req.Phone, "0") {
			return &provider.SendResult{ErrorCode: "131026", ErrorMessage: "Message undeliverable"}, nil
		}
		seq++
		return &provider.SendResult{Accepted: true, MessageID: fmt.Sprintf("wamid.bulk.%d", seq)}, nil
	}

	for i := 0; i < 50; i++ {
		h.createLead(t, fmt.Sprintf("Lead %d", i), fmt.Sprintf("06612345%02d", i))
	}
	h.consume(t)

	ctx := context.Background()
	batch, err := h.svc.Bulk.Start(ctx, &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllUnsent})
	require.NoError(t, err)
	assert.Equal(t, 50, batch.Total)
	assert.NotEmpty(t, batch.ID)

	require.Eventually(t, func() bool {
		p, err := h.svc.Bulk.Progress(ctx, batch.ID)
		return err == nil && p.Done()
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := h.svc.Bulk.Progress(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Total)
	assert.Equal(t, 45, progress.Sent)
	assert.Equal(t, 5, progress.Failed)

	ids, err := h.store.Lead().SelectIDs(ctx, models.FilterAllFailed)
	require.NoError(t, err)
	assert.Len(t, ids, 5)

	records, err := h.store.Dispatch().ListByLead(ctx, ids[0], 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.TriggeredByBulk, records[0].TriggeredBy)
	assert.Equal(t, batch.ID, records[0].BatchID.String)
}

// Start returns once the batch is stored; a queue smaller than the batch only
// delays the sends.
func TestBulkService_StartDoesNotWaitForQueue(t *testing.T) {
	h := newHarnessWith(t, testConfig(), harnessOptions{queue: queue.Options{Workers: 2, Buffer: 2}})
	for i := 0; i < 5; i++ {
		h.createLead(t, fmt.Sprintf("Lead %d", i), fmt.Sprintf("06612345%02d", i))
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	started := time.Now()
	batch, err := h.svc.Bulk.Start(reqCtx, &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllUnsent})
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 200*time.Millisecond)
	assert.Equal(t, 5, batch.Total)

	require.Eventually(t, func() bool { return h.queue.Len() == 2 }, time.Second, 5*time.Millisecond)
	<-reqCtx.Done()
	h.consume(t)

	ctx := context.Background()
	require.Eventually(t, func() bool {
		p, err := h.svc.Bulk.Progress(ctx, batch.ID)
		return err == nil && p.Done()
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := h.svc.Bulk.Progress(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BulkProgress{Total: 5, Sent: 5}, *progress)
	assert.Len(t, h.sender.Sent(), 5)
}

// Leads that never reach the queue are counted as failed so the batch finishes.
func TestBulkService_UnqueuedLeadsCountAsFailed(t *testing.T) {
	h := newHarnessWith(t, testConfig(), harnessOptions{queue: queue.Options{Workers: 2, Buffer: 2}})
	for i := 0; i < 5; i++ {
		h.createLead(t, fmt.Sprintf("Lead %d", i), fmt.Sprintf("06612345%02d", i))
	}

	ctx := context.Background()
	batch, err := h.svc.Bulk.Start(ctx, &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllUnsent})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return h.queue.Len() == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, h.queue.Close())
	h.consume(t)

	require.Eventually(t, func() bool {
		p, err := h.svc.Bulk.Progress(ctx, batch.ID)
		return err == nil && p.Done()
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := h.svc.Bulk.Progress(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BulkProgress{Total: 5, Sent: 2, Failed: 3}, *progress)
}

// A lead deleted after selection still counts toward the batch.
func TestBulkService_DeletedLeadCompletesBatch(t *testing.T) {
	h := newHarness(t)
	var leads []*models.Lead
	for i := 0; i < 3; i++ {
		leads = append(leads, h.createLead(t, fmt.Sprintf("Lead %d", i), fmt.Sprintf("06612345%02d", i)))
	}

	ctx := context.Background()
	batch, err := h.svc.Bulk.Start(ctx, &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllUnsent})
	require.NoError(t, err)
	require.NoError(t, h.svc.Lead.Delete(ctx, leads[1].ID))

	require.Eventually(t, func() bool { return h.queue.Len() == 3 }, time.Second, 5*time.Millisecond)
	h.consume(t)

	require.Eventually(t, func() bool {
		p, err := h.svc.Bulk.Progress(ctx, batch.ID)
		return err == nil && p.Done()
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := h.svc.Bulk.Progress(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BulkProgress{Total: 3, Sent: 2, Failed: 1}, *progress)

	stored, err := h.store.Batch().Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{leads[1].ID}, []int64(stored.SkippedIDs))
}

func TestBulkService_Start_Validation(t *testing.T) {
	h := newHarness(t)
	first := h.createLead(t, "Amine", "0661234501")
	second := h.createLead(t, "Nadia", "0661234502")
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *service.BulkRequest
		wantErr error
		want    []int64
	}{
		{
			name:    "unknown template",
			req:     &service.BulkRequest{TemplateID: "missing", Filter: models.FilterAllUnsent},
			wantErr: service.ErrUnknownTemplate,
		},
		{
			name:    "filter and ids together",
			req:     &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllUnsent, LeadIDs: []int64{first.ID}},
			wantErr: service.ErrInvalidFilter,
		},
		{
			name:    "no selection",
			req:     &service.BulkRequest{TemplateID: "welcome"},
			wantErr: service.ErrInvalidFilter,
		},
		{
			name:    "unknown filter",
			req:     &service.BulkRequest{TemplateID: "welcome", Filter: "everyone"},
			wantErr: service.ErrInvalidFilter,
		},
		{
			name:    "filter selects nobody",
			req:     &service.BulkRequest{TemplateID: "welcome", Filter: models.FilterAllFailed},
			wantErr: service.ErrEmptyRecipients,
		},
		{
			name:    "only unknown ids",
			req:     &service.BulkRequest{TemplateID: "welcome", LeadIDs: []int64{404, 405}},
			wantErr: service.ErrEmptyRecipients,
		},
		{
			name: "explicit ids are deduplicated and filtered",
			req:  &service.BulkRequest{TemplateID: "welcome", LeadIDs: []int64{second.ID, 404, second.ID, first.ID}},
			want: []int64{second.ID, first.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := h.svc.Bulk.Start(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, batch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, []int64(batch.LeadIDs))
			assert.Equal(t, len(tt.want), batch.Total)
		})
	}
}

func TestBulkService_Progress_UnknownBatch(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Bulk.Progress(context.Background(), "no-such-batch")
	assert.ErrorIs(t, err, repository.ErrBatchNotFound)
}
