package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/popeskul/lead-messenger/internal/models"
)

const leadColumns = `id, name, phone, normalized_phone, email, program, source, source_info, lifecycle_status,
	delivery_status, attempts, last_sent_at, next_retry_at, last_error, triggered_by, provider_message_id,
	last_replied_at, created_at, updated_at, deleted_at`

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

// Create inserts a lead in not_sent state and fills its id and timestamps.
func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (name, phone, normalized_phone, email, program, source, source_info, lifecycle_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, delivery_status, attempts, created_at, updated_at
	`

	if lead.LifecycleStatus == "" {
		lead.LifecycleStatus = models.LifecycleNew
	}

	err := r.db.QueryRowxContext(ctx, query,
		lead.Name, lead.Phone, lead.NormalizedPhone, lead.Email, lead.Program,
		lead.Source, lead.SourceInfo, lead.LifecycleStatus,
	).Scan(&lead.ID, &lead.DeliveryStatus, &lead.Attempts, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND deleted_at IS NULL`

	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return &lead, nil
}

func (r *leadRepository) FindByPhone(ctx context.Context, normalizedPhone string) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE normalized_phone = $1 AND deleted_at IS NULL ORDER BY id`

	var leads []*models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, normalizedPhone); err != nil {
		return nil, fmt.Errorf("failed to find leads by phone: %w", err)
	}

	return leads, nil
}

func (r *leadRepository) UpdatePhone(ctx context.Context, id int64, phone string, normalized sql.NullString) (*models.Lead, error) {
	query := `
		UPDATE leads
		SET phone = $2,
		    normalized_phone = $3,
		    delivery_status = CASE WHEN delivery_status = 'invalid_phone' THEN 'not_sent' ELSE delivery_status END
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + leadColumns

	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id, phone, normalized); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to update lead phone: %w", err)
	}

	return &lead, nil
}

func (r *leadRepository) SelectIDs(ctx context.Context, filter models.BulkFilter) ([]int64, error) {
	if !filter.Valid() {
		return nil, fmt.Errorf("unknown bulk filter %q", filter)
	}

	query := `
		SELECT id FROM leads
		WHERE deleted_at IS NULL
		  AND delivery_status = ANY($1)
		  AND ($2::text = '' OR lifecycle_status = $2)
		ORDER BY id
	`

	var lifecycle string
	if filter == models.FilterAllNew {
		lifecycle = string(models.LifecycleNew)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(statusStrings(filter.Statuses())), lifecycle); err != nil {
		return nil, fmt.Errorf("failed to select leads for %s: %w", filter, err)
	}

	return ids, nil
}

func (r *leadRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT l.id
		FROM unnest($1::bigint[]) WITH ORDINALITY AS req(id, pos)
		JOIN leads l ON l.id = req.id AND l.deleted_at IS NULL
		ORDER BY req.pos
	`

	var existing []int64
	if err := r.db.SelectContext(ctx, &existing, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to check lead ids: %w", err)
	}

	return dedupe(existing), nil
}

func (r *leadRepository) MarkReplied(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE leads
		SET last_replied_at = GREATEST(COALESCE(last_replied_at, $2), $2)
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark lead replied: %w", err)
	}
	return expectOneRow(res, ErrLeadNotFound)
}

func (r *leadRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return expectOneRow(res, ErrLeadNotFound)
}

func statusStrings(statuses []models.DeliveryStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
