package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/lead-messenger/internal/models"
)

const recordColumns = `id, lead_id, phone, template_id, message, source, source_info, triggered_by,
	sequence_id, step_id, assignment_id, batch_id, status, outcome, provider_message_id, error_message,
	attempts, next_retry_at, created_at, updated_at`

type dispatchRepository struct {
	db *sqlx.DB
}

func NewDispatchRepository(db *sqlx.DB) DispatchRepository {
	return &dispatchRepository{
		db: db,
	}
}

func lockLead(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Lead, error) {
	var lead models.Lead
	err := tx.GetContext(ctx, &lead,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to lock lead: %w", err)
	}
	return &lead, nil
}

// lockRecord takes the lead lock before the record lock, the same order Claim uses.
func lockRecord(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Lead, *models.DispatchRecord, error) {
	var leadID int64
	if err := tx.GetContext(ctx, &leadID, `SELECT lead_id FROM dispatch_records WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrRecordNotFound
		}
		return nil, nil, fmt.Errorf("failed to find record: %w", err)
	}

	lead, err := lockLead(ctx, tx, leadID)
	if err != nil {
		return nil, nil, err
	}

	var rec models.DispatchRecord
	if err := tx.GetContext(ctx, &rec,
		`SELECT `+recordColumns+` FROM dispatch_records WHERE id = $1 FOR UPDATE`, id); err != nil {
		return nil, nil, fmt.Errorf("failed to lock record: %w", err)
	}
	return lead, &rec, nil
}

func isLatestRecord(ctx context.Context, tx *sqlx.Tx, rec *models.DispatchRecord) (bool, error) {
	var newer bool
	err := tx.GetContext(ctx, &newer,
		`SELECT EXISTS (SELECT 1 FROM dispatch_records WHERE lead_id = $1 AND id > $2)`, rec.LeadID, rec.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check newer records: %w", err)
	}
	return !newer, nil
}

func (r *dispatchRepository) Claim(ctx context.Context, req *models.ClaimRequest) (*models.Lead, *models.DispatchRecord, error) {
	var (
		lead *models.Lead
		rec  models.DispatchRecord
	)

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		lead, err = lockLead(ctx, tx, req.LeadID)
		if err != nil {
			return err
		}
		if lead.DeliveryStatus == models.StatusPending {
			return ErrDispatchInFlight
		}
		if req.Verification() && lead.DeliveryStatus.AwaitingOutcome() {
			return ErrDeliveryOpen
		}
		if err := models.ValidateTransition(lead.DeliveryStatus, models.StatusPending); err != nil {
			return err
		}
		if req.RetryOf != 0 {
			if err := checkRetryDue(ctx, tx, lead.ID, req.RetryOf); err != nil {
				return err
			}
		}

		// a new attempt replaces any retry still scheduled for the lead
		if _, err := tx.ExecContext(ctx, `
			UPDATE dispatch_records
			SET status = outcome, next_retry_at = NULL
			WHERE lead_id = $1 AND status = 'pending_retry'
		`, lead.ID); err != nil {
			return fmt.Errorf("failed to supersede scheduled retries: %w", err)
		}

		phone := lead.Phone
		if lead.NormalizedPhone.Valid {
			phone = lead.NormalizedPhone.String
		}

		err = tx.GetContext(ctx, &rec, `
			INSERT INTO dispatch_records (
				lead_id, phone, template_id, source, source_info, triggered_by,
				sequence_id, step_id, assignment_id, batch_id,
				status, outcome, attempts, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', 'pending', $11, $12, $12)
			RETURNING `+recordColumns,
			lead.ID, phone, req.TemplateID, lead.Source, lead.SourceInfo, req.TriggeredBy,
			req.Link.SequenceID, req.Link.StepID, req.Link.AssignmentID, req.Link.BatchID,
			req.Attempts, req.At,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dispatch record: %w", err)
		}

		lead = &models.Lead{}
		err = tx.GetContext(ctx, lead, `
			UPDATE leads
			SET delivery_status = 'pending',
			    next_retry_at = NULL,
			    provider_message_id = NULL,
			    triggered_by = $2
			WHERE id = $1
			RETURNING `+leadColumns, req.LeadID, req.TriggeredBy)
		if err != nil {
			return fmt.Errorf("failed to mark lead pending: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return lead, &rec, nil
}

func checkRetryDue(ctx context.Context, tx *sqlx.Tx, leadID, recordID int64) error {
	var status models.DeliveryStatus
	err := tx.GetContext(ctx, &status,
		`SELECT status FROM dispatch_records WHERE id = $1 AND lead_id = $2 FOR UPDATE`, recordID, leadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to check scheduled retry: %w", err)
	}
	if status != models.StatusPendingRetry {
		return ErrRetrySuperseded
	}
	return nil
}

func (r *dispatchRepository) Complete(ctx context.Context, res *models.AttemptResult) (*models.DispatchRecord, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	var updated models.DispatchRecord
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		lead, rec, err := lockRecord(ctx, tx, res.RecordID)
		if err != nil {
			return err
		}
		if rec.Status != models.StatusPending {
			return fmt.Errorf("%w: record %d is %s", ErrNotInFlight, rec.ID, rec.Status)
		}

		err = tx.GetContext(ctx, &updated, `
			UPDATE dispatch_records
			SET phone = $2, message = $3, status = $4, outcome = $5, provider_message_id = $6,
			    error_message = $7, attempts = $8, next_retry_at = $9
			WHERE id = $1
			RETURNING `+recordColumns,
			rec.ID, res.Phone, res.Message, res.Status, res.Outcome, res.ProviderMessageID,
			res.ErrorMessage, res.Attempts, res.NextRetryAt,
		)
		if err != nil {
			return fmt.Errorf("failed to complete dispatch record: %w", err)
		}

		if lead.DeliveryStatus != models.StatusPending {
			return nil
		}
		latest, err := isLatestRecord(ctx, tx, rec)
		if err != nil || !latest {
			return err
		}

		providerID := sql.NullString{}
		if res.Status.HasProviderMessage() {
			providerID = res.ProviderMessageID
		}
		counted := 0
		if res.CountAttempt {
			counted = 1
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE leads
			SET delivery_status = $2,
			    attempts = attempts + $3,
			    last_sent_at = CASE WHEN $3 > 0 THEN $4 ELSE last_sent_at END,
			    next_retry_at = $5,
			    last_error = $6,
			    provider_message_id = $7
			WHERE id = $1
		`, lead.ID, res.Status, counted, res.At, res.NextRetryAt, res.ErrorMessage, providerID)
		if err != nil {
			return fmt.Errorf("failed to project record onto lead: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *dispatchRepository) ApplyProviderStatus(ctx context.Context, recordID int64, upd *models.StatusUpdate) (*models.DispatchRecord, bool, error) {
	target := upd.Status
	final := target
	if target == models.StatusFailed && upd.NextRetryAt.Valid {
		final = models.StatusPendingRetry
	}

	var (
		updated models.DispatchRecord
		changed bool
	)
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		lead, rec, err := lockRecord(ctx, tx, recordID)
		if err != nil {
			return err
		}
		updated = *rec

		// only accepted messages take callbacks, and never backwards
		if !rec.Status.HasProviderMessage() || !rec.Status.CanTransitionTo(target) {
			return nil
		}

		nextRetry := sql.NullTime{}
		if final == models.StatusPendingRetry {
			nextRetry = upd.NextRetryAt
		}

		err = tx.GetContext(ctx, &updated, `
			UPDATE dispatch_records
			SET status = $2, outcome = $3, error_message = COALESCE($4, error_message), next_retry_at = $5
			WHERE id = $1
			RETURNING `+recordColumns,
			rec.ID, final, target, upd.ErrorMessage, nextRetry,
		)
		if err != nil {
			return fmt.Errorf("failed to apply provider status: %w", err)
		}
		changed = true

		if lead.DeliveryStatus != rec.Status {
			return nil
		}
		latest, err := isLatestRecord(ctx, tx, rec)
		if err != nil || !latest {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE leads
			SET delivery_status = $2,
			    next_retry_at = $3,
			    last_error = COALESCE($4, last_error),
			    provider_message_id = CASE WHEN $5 THEN provider_message_id ELSE NULL END
			WHERE id = $1
		`, lead.ID, final, nextRetry, upd.ErrorMessage, final.HasProviderMessage())
		if err != nil {
			return fmt.Errorf("failed to project provider status onto lead: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &updated, changed, nil
}

func (r *dispatchRepository) GetByID(ctx context.Context, id int64) (*models.DispatchRecord, error) {
	var rec models.DispatchRecord
	if err := r.db.GetContext(ctx, &rec, `SELECT `+recordColumns+` FROM dispatch_records WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get dispatch record: %w", err)
	}
	return &rec, nil
}

func (r *dispatchRepository) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*models.DispatchRecord, error) {
	var rec models.DispatchRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT `+recordColumns+` FROM dispatch_records WHERE provider_message_id = $1`, providerMessageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get dispatch record by provider id: %w", err)
	}
	return &rec, nil
}

func (r *dispatchRepository) ListByLead(ctx context.Context, leadID int64, limit int) ([]*models.DispatchRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM dispatch_records WHERE lead_id = $1 ORDER BY id DESC LIMIT $2`

	var records []*models.DispatchRecord
	if err := r.db.SelectContext(ctx, &records, query, leadID, limit); err != nil {
		return nil, fmt.Errorf("failed to list dispatch records: %w", err)
	}
	return records, nil
}

func (r *dispatchRepository) DueRetries(ctx context.Context, now time.Time, limit int) ([]*models.DispatchRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM dispatch_records d
		WHERE d.status = 'pending_retry'
		  AND d.next_retry_at <= $1
		  AND EXISTS (
		      SELECT 1 FROM leads l
		      WHERE l.id = d.lead_id AND l.deleted_at IS NULL AND l.delivery_status <> 'invalid_phone'
		  )
		ORDER BY d.next_retry_at
		LIMIT $2
	`

	var records []*models.DispatchRecord
	if err := r.db.SelectContext(ctx, &records, query, now, limit); err != nil {
		return nil, fmt.Errorf("failed to get due retries: %w", err)
	}
	return records, nil
}

func (r *dispatchRepository) StaleInFlight(ctx context.Context, olderThan time.Time, limit int) ([]*models.DispatchRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM dispatch_records
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	var records []*models.DispatchRecord
	if err := r.db.SelectContext(ctx, &records, query, olderThan, limit); err != nil {
		return nil, fmt.Errorf("failed to get stale in-flight records: %w", err)
	}
	return records, nil
}

func (r *dispatchRepository) LatestStepAttempt(ctx context.Context, assignmentID, stepID int64) (*models.DispatchRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM dispatch_records
		WHERE assignment_id = $1 AND step_id = $2
		ORDER BY id DESC
		LIMIT 1
	`

	var rec models.DispatchRecord
	if err := r.db.GetContext(ctx, &rec, query, assignmentID, stepID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get latest step attempt: %w", err)
	}
	return &rec, nil
}

// BatchProgress counts each batch lead once, by its newest record in the batch.
// Skipped leads without a record count as failed.
func (r *dispatchRepository) BatchProgress(ctx context.Context, batchID string) (int, int, error) {
	query := `
		WITH latest AS (
		    SELECT DISTINCT ON (lead_id) lead_id, status
		    FROM dispatch_records
		    WHERE batch_id = $1
		    ORDER BY lead_id, id DESC
		), skipped AS (
		    SELECT unnest(skipped_ids) AS lead_id FROM bulk_batches WHERE id = $1
		)
		SELECT
		    (SELECT COUNT(*) FROM latest WHERE status IN ('queued', 'sent', 'delivered')) AS sent,
		    (SELECT COUNT(*) FROM latest WHERE status IN ('failed', 'contact_failed', 'invalid_phone', 'pending_retry'))
		    + (SELECT COUNT(*) FROM skipped s WHERE NOT EXISTS (SELECT 1 FROM latest l WHERE l.lead_id = s.lead_id)) AS failed
	`

	var counts struct {
		Sent   int `db:"sent"`
		Failed int `db:"failed"`
	}
	if err := r.db.GetContext(ctx, &counts, query, batchID); err != nil {
		return 0, 0, fmt.Errorf("failed to compute batch progress: %w", err)
	}
	return counts.Sent, counts.Failed, nil
}
