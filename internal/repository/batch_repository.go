package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/popeskul/lead-messenger/internal/models"
)

type batchRepository struct {
	db *sqlx.DB
}

func NewBatchRepository(db *sqlx.DB) BatchRepository {
	return &batchRepository{
		db: db,
	}
}

func (r *batchRepository) Create(ctx context.Context, batch *models.BulkBatch) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO bulk_batches (id, template_id, filter, lead_ids, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, batch.ID, batch.TemplateID, batch.Filter, batch.LeadIDs, batch.Total).Scan(&batch.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bulk batch: %w", err)
	}
	return nil
}

func (r *batchRepository) Get(ctx context.Context, id string) (*models.BulkBatch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBatchNotFound
	}

	var batch models.BulkBatch
	err := r.db.GetContext(ctx, &batch,
		`SELECT id, template_id, filter, lead_ids, total, skipped_ids, created_at FROM bulk_batches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get bulk batch: %w", err)
	}
	return &batch, nil
}

func (r *batchRepository) MarkSkipped(ctx context.Context, id string, leadIDs []int64) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBatchNotFound
	}
	if len(leadIDs) == 0 {
		return nil
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE bulk_batches
		SET skipped_ids = ARRAY(SELECT DISTINCT unnest(skipped_ids || $2::BIGINT[]))
		WHERE id = $1
	`, id, pq.Array(leadIDs))
	if err != nil {
		return fmt.Errorf("failed to mark batch leads skipped: %w", err)
	}
	return expectOneRow(res, ErrBatchNotFound)
}
