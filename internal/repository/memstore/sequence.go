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

type sequenceStore struct {
	*Store
}

func (s *sequenceStore) Create(_ context.Context, seq *models.Sequence, steps []*models.SequenceStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]bool)
	for _, step := range steps {
		if step.StepOrder < 1 || seen[step.StepOrder] {
			return fmt.Errorf("failed to create step %d: invalid or duplicate step order", step.StepOrder)
		}
		seen[step.StepOrder] = true
	}

	now := s.now()
	s.sequenceSeq++
	seq.ID = s.sequenceSeq
	seq.CreatedAt = now
	c := *seq
	s.sequences[seq.ID] = &c

	stored := make([]*models.SequenceStep, 0, len(steps))
	for _, step := range steps {
		s.stepSeq++
		step.ID = s.stepSeq
		step.SequenceID = seq.ID
		step.CreatedAt = now
		sc := *step
		stored = append(stored, &sc)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].StepOrder < stored[j].StepOrder })
	s.steps[seq.ID] = stored
	return nil
}

func (s *sequenceStore) Get(_ context.Context, id int64) (*models.Sequence, []*models.SequenceStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.sequences[id]
	if !ok {
		return nil, nil, repository.ErrSequenceNotFound
	}
	c := *seq
	steps := make([]*models.SequenceStep, 0, len(s.steps[id]))
	for _, step := range s.steps[id] {
		sc := *step
		steps = append(steps, &sc)
	}
	return &c, steps, nil
}

func (s *sequenceStore) ListAutoEnroll(_ context.Context) ([]*models.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Sequence
	for _, seq := range s.sequences {
		if seq.AutoEnroll && seq.Active {
			c := *seq
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *sequenceStore) GetStep(_ context.Context, sequenceID int64, order int) (*models.SequenceStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, step := range s.steps[sequenceID] {
		if step.StepOrder == order {
			c := *step
			return &c, nil
		}
	}
	return nil, repository.ErrStepNotFound
}

func (s *sequenceStore) GetStepByID(_ context.Context, id int64) (*models.SequenceStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, steps := range s.steps {
		for _, step := range steps {
			if step.ID == id {
				c := *step
				return &c, nil
			}
		}
	}
	return nil, repository.ErrStepNotFound
}

func (s *sequenceStore) Enroll(_ context.Context, leadID, sequenceID int64, now time.Time) (*models.SequenceAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.liveLead(leadID); err != nil {
		return nil, fmt.Errorf("failed to enroll lead: %w", err)
	}
	if _, ok := s.sequences[sequenceID]; !ok {
		return nil, fmt.Errorf("failed to enroll lead: %w", repository.ErrSequenceNotFound)
	}
	for _, a := range s.assignments {
		if a.LeadID == leadID && a.SequenceID == sequenceID &&
			(a.Status == models.AssignmentActive || a.Status == models.AssignmentPaused) {
			return nil, repository.ErrAlreadyEnrolled
		}
	}

	s.assignmentSeq++
	a := &models.SequenceAssignment{
		ID:         s.assignmentSeq,
		LeadID:     leadID,
		SequenceID: sequenceID,
		Status:     models.AssignmentActive,
		NextSendAt: sql.NullTime{Time: now, Valid: true},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.assignments[a.ID] = a
	return copyAssignment(a), nil
}

func (s *sequenceStore) GetAssignment(_ context.Context, id int64) (*models.SequenceAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return nil, repository.ErrAssignmentNotFound
	}
	return copyAssignment(a), nil
}

func (s *sequenceStore) DueAssignments(_ context.Context, now time.Time, limit int) ([]*models.SequenceAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.SequenceAssignment
	for _, a := range s.assignments {
		if a.Status == models.AssignmentActive && a.NextSendAt.Valid && !a.NextSendAt.Time.After(now) {
			out = append(out, copyAssignment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NextSendAt.Time.Equal(out[j].NextSendAt.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].NextSendAt.Time.Before(out[j].NextSendAt.Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *sequenceStore) ActiveAssignmentsForLead(_ context.Context, leadID int64) ([]*models.SequenceAssignment, error) {
	return s.forLead(leadID, true), nil
}

func (s *sequenceStore) ListAssignmentsForLead(_ context.Context, leadID int64) ([]*models.SequenceAssignment, error) {
	return s.forLead(leadID, false), nil
}

func (s *sequenceStore) forLead(leadID int64, activeOnly bool) []*models.SequenceAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.SequenceAssignment
	for _, a := range s.assignments {
		if a.LeadID != leadID || (activeOnly && a.Status != models.AssignmentActive) {
			continue
		}
		out = append(out, copyAssignment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// active returns the assignment when it is still active at step.
func (s *sequenceStore) active(id int64, step int) (*models.SequenceAssignment, error) {
	a, ok := s.assignments[id]
	if !ok || a.Status != models.AssignmentActive || a.CurrentStepOrder != step {
		return nil, repository.ErrStaleAssignment
	}
	return a, nil
}

func (s *sequenceStore) Advance(_ context.Context, id int64, fromStep int, sentAt, nextSendAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.active(id, fromStep)
	if err != nil {
		return err
	}
	a.CurrentStepOrder++
	a.LastSentAt = sql.NullTime{Time: sentAt, Valid: true}
	a.NextSendAt = sql.NullTime{Time: nextSendAt, Valid: true}
	a.UpdatedAt = s.now()
	return nil
}

func (s *sequenceStore) Reschedule(_ context.Context, id int64, step int, nextSendAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.active(id, step)
	if err != nil {
		return err
	}
	a.NextSendAt = sql.NullTime{Time: nextSendAt, Valid: true}
	a.UpdatedAt = s.now()
	return nil
}

func (s *sequenceStore) Complete(_ context.Context, id int64, at time.Time) error {
	return s.close(id, models.AssignmentCompleted, sql.NullString{}, at)
}

func (s *sequenceStore) Cancel(_ context.Context, id int64, reason string, at time.Time) error {
	return s.close(id, models.AssignmentCancelled, valid(reason), at)
}

func (s *sequenceStore) Fail(_ context.Context, id int64, reason string, at time.Time) error {
	return s.close(id, models.AssignmentError, valid(reason), at)
}

func (s *sequenceStore) close(id int64, status models.AssignmentStatus, reason sql.NullString, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	open := a.Status == models.AssignmentActive ||
		(status == models.AssignmentCancelled && a.Status == models.AssignmentPaused)
	if !open {
		return repository.ErrAssignmentClosed
	}

	a.Status = status
	a.CancellationReason = reason
	if status == models.AssignmentCompleted {
		a.CompletedAt = sql.NullTime{Time: at, Valid: true}
	}
	a.NextSendAt = sql.NullTime{}
	a.UpdatedAt = s.now()
	return nil
}

func (s *sequenceStore) Pause(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	if a.Status != models.AssignmentActive {
		return repository.ErrAssignmentClosed
	}
	a.Status = models.AssignmentPaused
	a.UpdatedAt = s.now()
	return nil
}

func (s *sequenceStore) Resume(_ context.Context, id int64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	if a.Status != models.AssignmentPaused {
		return repository.ErrAssignmentClosed
	}
	a.Status = models.AssignmentActive
	if !a.NextSendAt.Valid || a.NextSendAt.Time.Before(now) {
		a.NextSendAt = sql.NullTime{Time: now, Valid: true}
	}
	a.UpdatedAt = s.now()
	return nil
}
