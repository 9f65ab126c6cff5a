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

const (
	sequenceColumns   = `id, name, target_lifecycle_status, target_source, auto_enroll, active, created_at`
	stepColumns       = `id, sequence_id, step_order, delay_minutes, template_id, stop_on_reply, created_at`
	assignmentColumns = `id, lead_id, sequence_id, current_step_order, status, next_send_at, last_sent_at,
	completed_at, cancellation_reason, created_at, updated_at`

	uniqueViolation = "23505"
)

type sequenceRepository struct {
	db *sqlx.DB
}

func NewSequenceRepository(db *sqlx.DB) SequenceRepository {
	return &sequenceRepository{
		db: db,
	}
}

// Create inserts the sequence and its steps. Step orders must be 1..n.
func (r *sequenceRepository) Create(ctx context.Context, seq *models.Sequence, steps []*models.SequenceStep) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO sequences (name, target_lifecycle_status, target_source, auto_enroll, active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, seq.Name, seq.TargetLifecycleStatus, seq.TargetSource, seq.AutoEnroll, seq.Active).Scan(&seq.ID, &seq.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create sequence: %w", err)
		}

		for _, step := range steps {
			step.SequenceID = seq.ID
			err := tx.QueryRowxContext(ctx, `
				INSERT INTO sequence_steps (sequence_id, step_order, delay_minutes, template_id, stop_on_reply)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at
			`, seq.ID, step.StepOrder, step.DelayMinutes, step.TemplateID, step.StopOnReply).Scan(&step.ID, &step.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to create step %d: %w", step.StepOrder, err)
			}
		}
		return nil
	})
}

func (r *sequenceRepository) Get(ctx context.Context, id int64) (*models.Sequence, []*models.SequenceStep, error) {
	var seq models.Sequence
	if err := r.db.GetContext(ctx, &seq, `SELECT `+sequenceColumns+` FROM sequences WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrSequenceNotFound
		}
		return nil, nil, fmt.Errorf("failed to get sequence: %w", err)
	}

	var steps []*models.SequenceStep
	err := r.db.SelectContext(ctx, &steps,
		`SELECT `+stepColumns+` FROM sequence_steps WHERE sequence_id = $1 ORDER BY step_order`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sequence steps: %w", err)
	}

	return &seq, steps, nil
}

func (r *sequenceRepository) ListAutoEnroll(ctx context.Context) ([]*models.Sequence, error) {
	var seqs []*models.Sequence
	err := r.db.SelectContext(ctx, &seqs,
		`SELECT `+sequenceColumns+` FROM sequences WHERE auto_enroll AND active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-enroll sequences: %w", err)
	}
	return seqs, nil
}

func (r *sequenceRepository) GetStep(ctx context.Context, sequenceID int64, order int) (*models.SequenceStep, error) {
	var step models.SequenceStep
	err := r.db.GetContext(ctx, &step,
		`SELECT `+stepColumns+` FROM sequence_steps WHERE sequence_id = $1 AND step_order = $2`, sequenceID, order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStepNotFound
		}
		return nil, fmt.Errorf("failed to get sequence step: %w", err)
	}
	return &step, nil
}

func (r *sequenceRepository) GetStepByID(ctx context.Context, id int64) (*models.SequenceStep, error) {
	var step models.SequenceStep
	if err := r.db.GetContext(ctx, &step, `SELECT `+stepColumns+` FROM sequence_steps WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStepNotFound
		}
		return nil, fmt.Errorf("failed to get sequence step: %w", err)
	}
	return &step, nil
}

func (r *sequenceRepository) Enroll(ctx context.Context, leadID, sequenceID int64, now time.Time) (*models.SequenceAssignment, error) {
	var a models.SequenceAssignment
	err := r.db.GetContext(ctx, &a, `
		INSERT INTO sequence_assignments (lead_id, sequence_id, current_step_order, status, next_send_at, created_at, updated_at)
		VALUES ($1, $2, 0, 'active', $3, $3, $3)
		RETURNING `+assignmentColumns, leadID, sequenceID, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll lead: %w", err)
	}
	return &a, nil
}

func (r *sequenceRepository) GetAssignment(ctx context.Context, id int64) (*models.SequenceAssignment, error) {
	var a models.SequenceAssignment
	err := r.db.GetContext(ctx, &a, `SELECT `+assignmentColumns+` FROM sequence_assignments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

func (r *sequenceRepository) DueAssignments(ctx context.Context, now time.Time, limit int) ([]*models.SequenceAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM sequence_assignments
		WHERE status = 'active' AND next_send_at <= $1
		ORDER BY next_send_at
		LIMIT $2
	`

	var list []*models.SequenceAssignment
	if err := r.db.SelectContext(ctx, &list, query, now, limit); err != nil {
		return nil, fmt.Errorf("failed to get due assignments: %w", err)
	}
	return list, nil
}

func (r *sequenceRepository) ActiveAssignmentsForLead(ctx context.Context, leadID int64) ([]*models.SequenceAssignment, error) {
	var list []*models.SequenceAssignment
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+assignmentColumns+` FROM sequence_assignments WHERE lead_id = $1 AND status = 'active' ORDER BY id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active assignments: %w", err)
	}
	return list, nil
}

func (r *sequenceRepository) ListAssignmentsForLead(ctx context.Context, leadID int64) ([]*models.SequenceAssignment, error) {
	var list []*models.SequenceAssignment
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+assignmentColumns+` FROM sequence_assignments WHERE lead_id = $1 ORDER BY id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return list, nil
}

func (r *sequenceRepository) Advance(ctx context.Context, id int64, fromStep int, sentAt, nextSendAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sequence_assignments
		SET current_step_order = current_step_order + 1, last_sent_at = $3, next_send_at = $4
		WHERE id = $1 AND status = 'active' AND current_step_order = $2
	`, id, fromStep, sentAt, nextSendAt)
	if err != nil {
		return fmt.Errorf("failed to advance assignment: %w", err)
	}
	return expectOneRow(res, ErrStaleAssignment)
}

func (r *sequenceRepository) Reschedule(ctx context.Context, id int64, step int, nextSendAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sequence_assignments
		SET next_send_at = $3
		WHERE id = $1 AND status = 'active' AND current_step_order = $2
	`, id, step, nextSendAt)
	if err != nil {
		return fmt.Errorf("failed to reschedule assignment: %w", err)
	}
	return expectOneRow(res, ErrStaleAssignment)
}

func (r *sequenceRepository) Complete(ctx context.Context, id int64, at time.Time) error {
	return r.close(ctx, id, models.AssignmentCompleted, sql.NullString{}, at)
}

func (r *sequenceRepository) Cancel(ctx context.Context, id int64, reason string, at time.Time) error {
	return r.close(ctx, id, models.AssignmentCancelled, sql.NullString{String: reason, Valid: true}, at)
}

func (r *sequenceRepository) Fail(ctx context.Context, id int64, reason string, at time.Time) error {
	return r.close(ctx, id, models.AssignmentError, sql.NullString{String: reason, Valid: true}, at)
}

// close moves an open assignment to a terminal status. Only cancellation may
// close a paused assignment.
func (r *sequenceRepository) close(ctx context.Context, id int64, status models.AssignmentStatus, reason sql.NullString, at time.Time) error {
	open := []string{string(models.AssignmentActive)}
	if status == models.AssignmentCancelled {
		open = append(open, string(models.AssignmentPaused))
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sequence_assignments
		SET status = $2,
		    cancellation_reason = $3,
		    completed_at = CASE WHEN $2 = 'completed' THEN $4 ELSE completed_at END,
		    next_send_at = NULL
		WHERE id = $1 AND status = ANY($5)
	`, id, status, reason, at, pq.Array(open))
	if err != nil {
		return fmt.Errorf("failed to close assignment: %w", err)
	}
	return r.closedOrMissing(ctx, id, res)
}

func (r *sequenceRepository) Pause(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sequence_assignments SET status = 'paused' WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return fmt.Errorf("failed to pause assignment: %w", err)
	}
	return r.closedOrMissing(ctx, id, res)
}

func (r *sequenceRepository) Resume(ctx context.Context, id int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sequence_assignments
		SET status = 'active', next_send_at = GREATEST(COALESCE(next_send_at, $2), $2)
		WHERE id = $1 AND status = 'paused'
	`, id, now)
	if err != nil {
		return fmt.Errorf("failed to resume assignment: %w", err)
	}
	return r.closedOrMissing(ctx, id, res)
}

// closedOrMissing tells a missing assignment apart from one in the wrong state.
func (r *sequenceRepository) closedOrMissing(ctx context.Context, id int64, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetAssignment(ctx, id); err != nil {
		return err
	}
	return ErrAssignmentClosed
}
