package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
)

const (
	defaultRecordLimit = 20
	maxRecordLimit     = 200
)

type CreateLeadInput struct {
	Name            string
	Phone           string
	Email           string
	Program         string
	Source          string
	SourceInfo      string
	LifecycleStatus models.LifecycleStatus
}

// LeadView is a lead with its delivery history and sequence assignments.
type LeadView struct {
	Lead        *models.Lead
	Records     []*models.DispatchRecord
	Assignments []*models.SequenceAssignment
}

type leadService struct {
	repo             repository.Repository
	normalizer       *phone.Normalizer
	resolver         ContactResolver
	sequences        SequenceService
	queue            queue.Queue
	autoSendTemplate string
	now              func() time.Time
	logger           *zap.Logger
}

func NewLeadService(
	repo repository.Repository,
	normalizer *phone.Normalizer,
	resolver ContactResolver,
	sequences SequenceService,
	q queue.Queue,
	autoSendTemplate string,
	now func() time.Time,
	logger *zap.Logger,
) LeadService {
	if now == nil {
		now = time.Now
	}
	return &leadService{
		repo:             repo,
		normalizer:       normalizer,
		resolver:         resolver,
		sequences:        sequences,
		queue:            q,
		autoSendTemplate: autoSendTemplate,
		now:              now,
		logger:           logger,
	}
}

// Create stores the lead, then runs the auto path: enrollment into matching
// sequences, or the auto-send template when no sequence took the lead.
// Failures of the auto path are logged; the lead is kept.
func (s *leadService) Create(ctx context.Context, in *CreateLeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(in.Name)
	raw := strings.TrimSpace(in.Phone)
	if name == "" || raw == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidLead)
	}

	lead := &models.Lead{
		Name:            name,
		Phone:           raw,
		NormalizedPhone: s.normalize(raw),
		Email:           nullString(strings.TrimSpace(in.Email)),
		Program:         in.Program,
		Source:          in.Source,
		SourceInfo:      in.SourceInfo,
		LifecycleStatus: in.LifecycleStatus,
	}
	if err := s.repo.Lead().Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	s.logger.Info("Lead created",
		zap.Int64("lead_id", lead.ID),
		zap.String("source", lead.Source),
		zap.Bool("phone_valid", lead.NormalizedPhone.Valid))

	enrolled, err := s.sequences.AutoEnroll(ctx, lead)
	if err != nil {
		s.logger.Error("Auto-enrollment failed", zap.Int64("lead_id", lead.ID), zap.Error(err))
	}
	if len(enrolled) > 0 || s.autoSendTemplate == "" {
		return lead, nil
	}

	err = s.queue.Publish(ctx, queue.Job{
		LeadID:      lead.ID,
		TemplateID:  s.autoSendTemplate,
		TriggeredBy: models.TriggeredByAuto,
		EnqueuedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error("Failed to enqueue auto send", zap.Int64("lead_id", lead.ID), zap.Error(err))
	}
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, id int64, records int) (*LeadView, error) {
	if records <= 0 {
		records = defaultRecordLimit
	}
	if records > maxRecordLimit {
		records = maxRecordLimit
	}

	lead, err := s.repo.Lead().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.Dispatch().ListByLead(ctx, id, records)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch records: %w", err)
	}
	assignments, err := s.repo.Sequence().ListAssignmentsForLead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return &LeadView{Lead: lead, Records: history, Assignments: assignments}, nil
}

// UpdatePhone stores a corrected phone. An invalid_phone lead goes back to not_sent.
func (s *leadService) UpdatePhone(ctx context.Context, id int64, raw string) (*models.Lead, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidLead)
	}

	old, err := s.repo.Lead().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := s.normalize(raw)
	lead, err := s.repo.Lead().UpdatePhone(ctx, id, raw, normalized)
	if err != nil {
		return nil, err
	}

	if old.NormalizedPhone.Valid {
		s.resolver.Forget(old.NormalizedPhone.String)
	}
	if normalized.Valid {
		s.resolver.Forget(normalized.String)
	}

	s.logger.Info("Lead phone updated",
		zap.Int64("lead_id", id),
		zap.Bool("phone_valid", normalized.Valid),
		zap.String("delivery_status", string(lead.DeliveryStatus)))
	return lead, nil
}

// Delete soft-deletes the lead and cancels its open assignments.
func (s *leadService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Lead().SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}

	assignments, err := s.repo.Sequence().ListAssignmentsForLead(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, a := range assignments {
		if a.Status.IsTerminal() {
			continue
		}
		if err := ignoreClosed(s.repo.Sequence().Cancel(ctx, a.ID, reasonLeadDeleted, s.now())); err != nil {
			return fmt.Errorf("failed to cancel assignment %d: %w", a.ID, err)
		}
	}

	s.logger.Info("Lead deleted", zap.Int64("lead_id", id))
	return nil
}

func (s *leadService) normalize(raw string) sql.NullString {
	normalized, err := s.normalizer.Normalize(raw)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: normalized, Valid: true}
}
