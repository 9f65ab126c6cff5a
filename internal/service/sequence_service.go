package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
)

const (
	sequenceLockKey       = "sweep:sequence"
	reasonOperatorCancel  = "cancelled by operator"
	reasonLeadDeleted     = "lead deleted"
	reasonTemplateMissing = "step template is not in the catalog"
	defaultSequenceBatch  = 100
)

// CreateSequenceInput describes a new sequence and its steps.
type CreateSequenceInput struct {
	Name                  string
	TargetLifecycleStatus string
	TargetSource          string
	AutoEnroll            bool
	Steps                 []StepInput
}

type StepInput struct {
	StepOrder    int
	DelayMinutes int
	TemplateID   string
	StopOnReply  bool
}

// SequenceView is a sequence with its ordered steps.
type SequenceView struct {
	Sequence *models.Sequence
	Steps    []*models.SequenceStep
}

type sequenceService struct {
	cfg        *config.SequenceConfig
	repo       repository.Repository
	dispatcher *Dispatcher
	renderer   MessageRenderer
	locker     SweepLocker
	now        func() time.Time
	logger     *zap.Logger
}

// NewSequenceService builds the sequence scheduler and subscribes it to dispatch outcomes.
func NewSequenceService(
	cfg *config.SequenceConfig,
	repo repository.Repository,
	dispatcher *Dispatcher,
	renderer MessageRenderer,
	locker SweepLocker,
	now func() time.Time,
	logger *zap.Logger,
) SequenceService {
	if now == nil {
		now = time.Now
	}
	s := &sequenceService{
		cfg:        cfg,
		repo:       repo,
		dispatcher: dispatcher,
		renderer:   renderer,
		locker:     locker,
		now:        now,
		logger:     logger.With(zap.String("sweep", "sequence")),
	}
	dispatcher.Subscribe(s)
	return s
}

func (s *sequenceService) Create(ctx context.Context, in *CreateSequenceInput) (*SequenceView, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	seq := &models.Sequence{
		Name:                  strings.TrimSpace(in.Name),
		TargetLifecycleStatus: nullString(in.TargetLifecycleStatus),
		TargetSource:          nullString(in.TargetSource),
		AutoEnroll:            in.AutoEnroll,
		Active:                true,
	}
	steps := make([]*models.SequenceStep, 0, len(in.Steps))
	for _, st := range in.Steps {
		steps = append(steps, &models.SequenceStep{
			StepOrder:    st.StepOrder,
			DelayMinutes: st.DelayMinutes,
			TemplateID:   st.TemplateID,
			StopOnReply:  st.StopOnReply,
		})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepOrder < steps[j].StepOrder })

	if err := s.repo.Sequence().Create(ctx, seq, steps); err != nil {
		return nil, fmt.Errorf("failed to create sequence: %w", err)
	}

	s.logger.Info("Sequence created",
		zap.Int64("sequence_id", seq.ID),
		zap.String("name", seq.Name),
		zap.Int("steps", len(steps)))
	return &SequenceView{Sequence: seq, Steps: steps}, nil
}

// validate requires steps numbered 1..n and templates from the catalog.
func (s *sequenceService) validate(in *CreateSequenceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSequence)
	}
	if len(in.Steps) == 0 {
		return fmt.Errorf("%w: at least one step is required", ErrInvalidSequence)
	}

	orders := make([]int, 0, len(in.Steps))
	for _, st := range in.Steps {
		if st.DelayMinutes < 0 {
			return fmt.Errorf("%w: step %d has a negative delay", ErrInvalidSequence, st.StepOrder)
		}
		if _, ok := s.renderer.Lookup(st.TemplateID); !ok {
			return fmt.Errorf("%w: step %d: %w: %s", ErrInvalidSequence, st.StepOrder, ErrUnknownTemplate, st.TemplateID)
		}
		orders = append(orders, st.StepOrder)
	}
	sort.Ints(orders)
	for i, order := range orders {
		if order != i+1 {
			return fmt.Errorf("%w: step orders must run from 1 to %d without gaps", ErrInvalidSequence, len(orders))
		}
	}
	return nil
}

func (s *sequenceService) Enroll(ctx context.Context, sequenceID, leadID int64) (*models.SequenceAssignment, error) {
	seq, _, err := s.repo.Sequence().Get(ctx, sequenceID)
	if err != nil {
		return nil, err
	}
	if !seq.Active {
		return nil, ErrSequenceInactive
	}
	if _, err := s.repo.Lead().GetByID(ctx, leadID); err != nil {
		return nil, err
	}

	a, err := s.repo.Sequence().Enroll(ctx, leadID, sequenceID, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Lead enrolled",
		zap.Int64("assignment_id", a.ID),
		zap.Int64("lead_id", leadID),
		zap.Int64("sequence_id", sequenceID))
	return a, nil
}

// AutoEnroll enrolls a freshly created lead into every auto sequence whose
// filters it matches.
func (s *sequenceService) AutoEnroll(ctx context.Context, lead *models.Lead) ([]*models.SequenceAssignment, error) {
	sequences, err := s.repo.Sequence().ListAutoEnroll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-enroll sequences: %w", err)
	}

	var out []*models.SequenceAssignment
	for _, seq := range sequences {
		if !seq.Matches(lead) {
			continue
		}
		a, err := s.repo.Sequence().Enroll(ctx, lead.ID, seq.ID, s.now())
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("failed to enroll lead %d into sequence %d: %w", lead.ID, seq.ID, err)
		}
		out = append(out, a)
	}
	if len(out) > 0 {
		s.logger.Info("Lead auto-enrolled", zap.Int64("lead_id", lead.ID), zap.Int("sequences", len(out)))
	}
	return out, nil
}

func (s *sequenceService) Cancel(ctx context.Context, assignmentID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		reason = reasonOperatorCancel
	}
	if err := s.repo.Sequence().Cancel(ctx, assignmentID, reason, s.now()); err != nil {
		return err
	}
	s.logger.Info("Assignment cancelled", zap.Int64("assignment_id", assignmentID), zap.String("reason", reason))
	return nil
}

func (s *sequenceService) Pause(ctx context.Context, assignmentID int64) error {
	return s.repo.Sequence().Pause(ctx, assignmentID)
}

func (s *sequenceService) Resume(ctx context.Context, assignmentID int64) error {
	return s.repo.Sequence().Resume(ctx, assignmentID, s.now())
}

func (s *sequenceService) HandleReply(ctx context.Context, leadID int64, at time.Time) error {
	assignments, err := s.repo.Sequence().ListAssignmentsForLead(ctx, leadID)
	if err != nil {
		return fmt.Errorf("failed to list assignments of lead %d: %w", leadID, err)
	}

	for _, a := range assignments {
		if a.Status != models.AssignmentActive && a.Status != models.AssignmentPaused {
			continue
		}
		// before the first send the flag of step 1 decides
		order := a.CurrentStepOrder
		if order == 0 {
			order = 1
		}
		step, err := s.repo.Sequence().GetStep(ctx, a.SequenceID, order)
		if errors.Is(err, repository.ErrStepNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load step %d of sequence %d: %w", order, a.SequenceID, err)
		}
		if !step.StopOnReply {
			continue
		}

		err = s.repo.Sequence().Cancel(ctx, a.ID, models.CancellationReasonReplied, at)
		if err != nil && !errors.Is(err, repository.ErrAssignmentClosed) {
			return fmt.Errorf("failed to stop assignment %d: %w", a.ID, err)
		}
		if err == nil {
			s.logger.Info("Assignment stopped on reply",
				zap.Int64("assignment_id", a.ID),
				zap.Int64("lead_id", leadID),
				zap.Int("step", a.CurrentStepOrder))
		}
	}
	return nil
}

func (s *sequenceService) RunDue(ctx context.Context) error {
	return withSweepLock(ctx, s.locker, sequenceLockKey, sweepLockTTL(s.cfg.Interval()), s.logger, s.sweep)
}

func (s *sequenceService) sweep(ctx context.Context) error {
	limit := s.cfg.BatchSize
	if limit <= 0 {
		limit = defaultSequenceBatch
	}

	due, err := s.repo.Sequence().DueAssignments(ctx, s.now(), limit)
	if err != nil {
		return fmt.Errorf("failed to list due assignments: %w", err)
	}
	if len(due) == 0 {
		return nil
	}
	s.logger.Info("Processing due assignments", zap.Int("count", len(due)))

	var failed int
	for _, a := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.advance(ctx, a); err != nil {
			failed++
			s.logger.Error("Failed to advance assignment",
				zap.Int64("assignment_id", a.ID),
				zap.Int64("lead_id", a.LeadID),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assignments could not be advanced", failed, len(due))
	}
	return nil
}

// advance dispatches the step after CurrentStepOrder. The assignment itself is
// moved by OnDispatchOutcome once the attempt is recorded.
func (s *sequenceService) advance(ctx context.Context, a *models.SequenceAssignment) error {
	now := s.now()

	step, err := s.repo.Sequence().GetStep(ctx, a.SequenceID, a.CurrentStepOrder+1)
	if errors.Is(err, repository.ErrStepNotFound) {
		return ignoreClosed(s.repo.Sequence().Complete(ctx, a.ID, now))
	}
	if err != nil {
		return err
	}

	attempts := 1
	prev, err := s.repo.Dispatch().LatestStepAttempt(ctx, a.ID, step.ID)
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
	case err != nil:
		return err
	case prev.Status == models.StatusPending:
		return nil
	case prev.Status == models.StatusPendingRetry:
		// the retry sweep owns this step until the retry is taken
		if prev.NextRetryAt.Time.After(now) {
			return ignoreClosed(s.repo.Sequence().Reschedule(ctx, a.ID, a.CurrentStepOrder, prev.NextRetryAt.Time))
		}
		return nil
	case prev.Status.Retryable() && prev.Attempts < s.dispatcher.policy.MaxAttempts():
		// a newer message to the lead superseded the scheduled retry; continue the chain
		attempts = prev.Attempts + 1
	default:
		// an outcome recorded before a crash that never reached the assignment
		return s.applyOutcome(ctx, a, step, prev)
	}

	_, err = s.dispatcher.Dispatch(ctx, &DispatchRequest{
		LeadID:      a.LeadID,
		TemplateID:  step.TemplateID,
		TriggeredBy: models.TriggeredBySequence,
		Link: models.DispatchLink{
			SequenceID:   sql.NullInt64{Int64: a.SequenceID, Valid: true},
			StepID:       sql.NullInt64{Int64: step.ID, Valid: true},
			AssignmentID: sql.NullInt64{Int64: a.ID, Valid: true},
		},
		Attempts: attempts,
	})
	switch {
	case err == nil:
		return nil
	case isSkippable(err):
		return nil
	case errors.Is(err, repository.ErrLeadNotFound):
		return ignoreClosed(s.repo.Sequence().Cancel(ctx, a.ID, reasonLeadDeleted, now))
	case errors.Is(err, ErrUnknownTemplate):
		return ignoreClosed(s.repo.Sequence().Fail(ctx, a.ID, reasonTemplateMissing, now))
	}
	return err
}

// OnDispatchOutcome moves the assignment that produced rec.
func (s *sequenceService) OnDispatchOutcome(ctx context.Context, rec *models.DispatchRecord) {
	if !rec.AssignmentID.Valid || !rec.StepID.Valid {
		return
	}

	a, err := s.repo.Sequence().GetAssignment(ctx, rec.AssignmentID.Int64)
	if err != nil {
		s.logger.Error("Failed to load assignment for outcome", zap.Int64("record_id", rec.ID), zap.Error(err))
		return
	}
	step, err := s.repo.Sequence().GetStepByID(ctx, rec.StepID.Int64)
	if err != nil {
		s.logger.Error("Failed to load step for outcome", zap.Int64("record_id", rec.ID), zap.Error(err))
		return
	}

	if err := s.applyOutcome(ctx, a, step, rec); err != nil {
		s.logger.Error("Failed to apply outcome to assignment",
			zap.Int64("assignment_id", a.ID),
			zap.Int64("record_id", rec.ID),
			zap.Error(err))
	}
}

func (s *sequenceService) applyOutcome(ctx context.Context, a *models.SequenceAssignment, step *models.SequenceStep, rec *models.DispatchRecord) error {
	// late outcomes of a step the assignment already moved past never rewind it
	if a.Status != models.AssignmentActive || step.StepOrder != a.CurrentStepOrder+1 {
		return nil
	}
	now := s.now()

	switch {
	case rec.Status == models.StatusPending:
		return nil
	case rec.Status.Succeeded():
		nextSendAt := now
		next, err := s.repo.Sequence().GetStep(ctx, a.SequenceID, step.StepOrder+1)
		switch {
		case err == nil:
			nextSendAt = now.Add(next.Delay())
		case !errors.Is(err, repository.ErrStepNotFound):
			return err
		}
		if err := s.repo.Sequence().Advance(ctx, a.ID, a.CurrentStepOrder, now, nextSendAt); err != nil {
			return ignoreClosed(err)
		}
		s.logger.Info("Assignment advanced",
			zap.Int64("assignment_id", a.ID),
			zap.Int("step", step.StepOrder),
			zap.Time("next_send_at", nextSendAt))
		return nil
	case rec.Status == models.StatusPendingRetry:
		return ignoreClosed(s.repo.Sequence().Reschedule(ctx, a.ID, a.CurrentStepOrder, rec.NextRetryAt.Time))
	default:
		reason := fmt.Sprintf("step %d ended %s", step.StepOrder, rec.Status)
		if rec.ErrorMessage.Valid {
			reason += ": " + rec.ErrorMessage.String
		}
		if err := s.repo.Sequence().Fail(ctx, a.ID, reason, now); err != nil {
			return ignoreClosed(err)
		}
		s.logger.Warn("Assignment failed", zap.Int64("assignment_id", a.ID), zap.String("reason", reason))
		return nil
	}
}

// ignoreClosed drops the errors of a compare-and-set that lost to a concurrent change.
func ignoreClosed(err error) error {
	if errors.Is(err, repository.ErrStaleAssignment) || errors.Is(err, repository.ErrAssignmentClosed) {
		return nil
	}
	return err
}
