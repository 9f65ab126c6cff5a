package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
)

// Worker turns queued jobs into dispatches.
type Worker struct {
	dispatcher *Dispatcher
	repo       repository.Repository
	logger     *zap.Logger
}

func NewWorker(dispatcher *Dispatcher, repo repository.Repository, logger *zap.Logger) *Worker {
	return &Worker{
		dispatcher: dispatcher,
		repo:       repo,
		logger:     logger.With(zap.String("component", "worker")),
	}
}

// Handle dispatches one job. A lead that is busy with another attempt is handed
// back for redelivery; jobs that can never succeed are dropped. A batch job that
// ends without an attempt is marked skipped on its batch.
func (w *Worker) Handle(ctx context.Context, job queue.Job) error {
	var link models.DispatchLink
	if job.BatchID != "" {
		link.BatchID = sql.NullString{String: job.BatchID, Valid: true}
	}

	_, err := w.dispatcher.Dispatch(ctx, &DispatchRequest{
		LeadID:      job.LeadID,
		TemplateID:  job.TemplateID,
		TriggeredBy: job.TriggeredBy,
		Link:        link,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrLeadNotFound),
		errors.Is(err, ErrUnknownTemplate),
		errors.Is(err, models.ErrInvalidTransition):
		w.drop(ctx, job, err)
		return nil
	}

	if job.Final {
		w.drop(ctx, job, err)
	}
	return err
}

func (w *Worker) drop(ctx context.Context, job queue.Job, cause error) {
	w.logger.Warn("Dropping job",
		zap.Int64("lead_id", job.LeadID),
		zap.String("template_id", job.TemplateID),
		zap.String("batch_id", job.BatchID),
		zap.Error(cause))

	if job.BatchID == "" {
		return
	}
	if err := w.repo.Batch().MarkSkipped(context.WithoutCancel(ctx), job.BatchID, []int64{job.LeadID}); err != nil {
		w.logger.Error("Failed to mark batch lead skipped",
			zap.Int64("lead_id", job.LeadID),
			zap.String("batch_id", job.BatchID),
			zap.Error(err))
	}
}
