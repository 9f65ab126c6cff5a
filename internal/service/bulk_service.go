package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
)

// BulkRequest selects recipients by exactly one of Filter or LeadIDs.
type BulkRequest struct {
	TemplateID string
	Filter     models.BulkFilter
	LeadIDs    []int64
}

type bulkService struct {
	repo     repository.Repository
	renderer MessageRenderer
	queue    queue.Queue
	now      func() time.Time
	logger   *zap.Logger
}

func NewBulkService(
	repo repository.Repository,
	renderer MessageRenderer,
	q queue.Queue,
	now func() time.Time,
	logger *zap.Logger,
) BulkService {
	if now == nil {
		now = time.Now
	}
	return &bulkService{
		repo:     repo,
		renderer: renderer,
		queue:    q,
		now:      now,
		logger:   logger,
	}
}

// Start fixes the recipient set and stores the batch. Jobs are enqueued in the
// background so a large batch never holds the request open.
func (s *bulkService) Start(ctx context.Context, req *BulkRequest) (*models.BulkBatch, error) {
	if _, ok := s.renderer.Lookup(req.TemplateID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, req.TemplateID)
	}

	ids, err := s.selectRecipients(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptyRecipients
	}

	batch := &models.BulkBatch{
		ID:         uuid.NewString(),
		TemplateID: req.TemplateID,
		Filter:     string(req.Filter),
		LeadIDs:    ids,
		Total:      len(ids),
	}
	if err := s.repo.Batch().Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	s.logger.Info("Bulk send started",
		zap.String("batch_id", batch.ID),
		zap.String("template_id", batch.TemplateID),
		zap.String("filter", batch.Filter),
		zap.Int("total", batch.Total))

	go s.enqueue(context.WithoutCancel(ctx), batch.ID, batch.TemplateID, ids)
	return batch, nil
}

// enqueue publishes one job per lead. Leads left unpublished are marked skipped
// so the batch still completes.
func (s *bulkService) enqueue(ctx context.Context, batchID, templateID string, ids []int64) {
	for i, id := range ids {
		err := s.queue.Publish(ctx, queue.Job{
			LeadID:      id,
			TemplateID:  templateID,
			TriggeredBy: models.TriggeredByBulk,
			BatchID:     batchID,
			EnqueuedAt:  s.now(),
		})
		if err == nil {
			continue
		}

		s.logger.Error("Bulk enqueue interrupted",
			zap.String("batch_id", batchID),
			zap.Int("enqueued", i),
			zap.Int("total", len(ids)),
			zap.Error(err))
		if err := s.repo.Batch().MarkSkipped(ctx, batchID, ids[i:]); err != nil {
			s.logger.Error("Failed to mark unqueued batch leads skipped",
				zap.String("batch_id", batchID),
				zap.Error(err))
		}
		return
	}
}

func (s *bulkService) selectRecipients(ctx context.Context, req *BulkRequest) ([]int64, error) {
	switch {
	case req.Filter != "" && len(req.LeadIDs) > 0:
		return nil, fmt.Errorf("%w: give either a filter or lead ids, not both", ErrInvalidFilter)
	case req.Filter != "":
		if !req.Filter.Valid() {
			return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidFilter, req.Filter)
		}
		ids, err := s.repo.Lead().SelectIDs(ctx, req.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate filter %s: %w", req.Filter, err)
		}
		return ids, nil
	case len(req.LeadIDs) > 0:
		ids, err := s.repo.Lead().ExistingIDs(ctx, dedupe(req.LeadIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve lead ids: %w", err)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("%w: a filter or lead ids are required", ErrInvalidFilter)
}

// Progress is recomputed from the dispatch log on every call.
func (s *bulkService) Progress(ctx context.Context, batchID string) (*models.BulkProgress, error) {
	batch, err := s.repo.Batch().Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	sent, failed, err := s.repo.Dispatch().BatchProgress(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute progress of batch %s: %w", batchID, err)
	}
	return &models.BulkProgress{Total: batch.Total, Sent: sent, Failed: failed}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
