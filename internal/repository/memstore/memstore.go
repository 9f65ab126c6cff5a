// Package memstore is an in-process implementation of the repository
// interfaces. It backs the memory database driver and the service tests.
package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
)

// Store keeps every table behind one mutex, which gives each call the same
// row-level atomicity the Postgres repositories get from FOR UPDATE.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	leads       map[int64]*models.Lead
	records     []*models.DispatchRecord
	sequences   map[int64]*models.Sequence
	steps       map[int64][]*models.SequenceStep
	assignments map[int64]*models.SequenceAssignment
	batches     map[string]*models.BulkBatch

	leadSeq       int64
	recordSeq     int64
	sequenceSeq   int64
	stepSeq       int64
	assignmentSeq int64
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		now:         time.Now,
		leads:       make(map[int64]*models.Lead),
		sequences:   make(map[int64]*models.Sequence),
		steps:       make(map[int64][]*models.SequenceStep),
		assignments: make(map[int64]*models.SequenceAssignment),
		batches:     make(map[string]*models.BulkBatch),
	}
}

// SetClock replaces the clock used for created_at and updated_at stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Lead() repository.LeadRepository {
	return &leadStore{s}
}

func (s *Store) Dispatch() repository.DispatchRepository {
	return &dispatchStore{s}
}

func (s *Store) Sequence() repository.SequenceRepository {
	return &sequenceStore{s}
}

func (s *Store) Batch() repository.BatchRepository {
	return &batchStore{s}
}

func (s *Store) liveLead(id int64) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok || lead.DeletedAt.Valid {
		return nil, repository.ErrLeadNotFound
	}
	return lead, nil
}

func (s *Store) record(id int64) (*models.DispatchRecord, error) {
	// records are appended in id order
	i := sort.Search(len(s.records), func(i int) bool { return s.records[i].ID >= id })
	if i == len(s.records) || s.records[i].ID != id {
		return nil, repository.ErrRecordNotFound
	}
	return s.records[i], nil
}

func (s *Store) isLatest(rec *models.DispatchRecord) bool {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].LeadID == rec.LeadID {
			return s.records[i].ID == rec.ID
		}
	}
	return false
}

func copyLead(l *models.Lead) *models.Lead {
	c := *l
	return &c
}

func copyRecord(r *models.DispatchRecord) *models.DispatchRecord {
	c := *r
	return &c
}

func copyAssignment(a *models.SequenceAssignment) *models.SequenceAssignment {
	c := *a
	return &c
}

func valid(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

type leadStore struct {
	*Store
}

func (s *leadStore) Create(_ context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.LifecycleStatus == "" {
		lead.LifecycleStatus = models.LifecycleNew
	}
	s.leadSeq++
	now := s.now()
	lead.ID = s.leadSeq
	lead.DeliveryStatus = models.StatusNotSent
	lead.Attempts = 0
	lead.CreatedAt = now
	lead.UpdatedAt = now

	s.leads[lead.ID] = copyLead(lead)
	return nil
}

func (s *leadStore) GetByID(_ context.Context, id int64) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.liveLead(id)
	if err != nil {
		return nil, err
	}
	return copyLead(lead), nil
}

func (s *leadStore) FindByPhone(_ context.Context, normalizedPhone string) ([]*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Lead
	for _, lead := range s.leads {
		if !lead.DeletedAt.Valid && lead.NormalizedPhone.Valid && lead.NormalizedPhone.String == normalizedPhone {
			out = append(out, copyLead(lead))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *leadStore) UpdatePhone(_ context.Context, id int64, phone string, normalized sql.NullString) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.liveLead(id)
	if err != nil {
		return nil, err
	}
	lead.Phone = phone
	lead.NormalizedPhone = normalized
	if lead.DeliveryStatus == models.StatusInvalidPhone {
		lead.DeliveryStatus = models.StatusNotSent
	}
	lead.UpdatedAt = s.now()
	return copyLead(lead), nil
}

func (s *leadStore) SelectIDs(_ context.Context, filter models.BulkFilter) ([]int64, error) {
	if !filter.Valid() {
		return nil, fmt.Errorf("unknown bulk filter %q", filter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[models.DeliveryStatus]bool)
	for _, st := range filter.Statuses() {
		wanted[st] = true
	}

	var ids []int64
	for id, lead := range s.leads {
		if lead.DeletedAt.Valid || !wanted[lead.DeliveryStatus] {
			continue
		}
		if filter == models.FilterAllNew && lead.LifecycleStatus != models.LifecycleNew {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *leadStore) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []int64
	seen := make(map[int64]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, err := s.liveLead(id); err == nil {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *leadStore) MarkReplied(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.liveLead(id)
	if err != nil {
		return err
	}
	if !lead.LastRepliedAt.Valid || at.After(lead.LastRepliedAt.Time) {
		lead.LastRepliedAt = sql.NullTime{Time: at, Valid: true}
	}
	lead.UpdatedAt = s.now()
	return nil
}

func (s *leadStore) SoftDelete(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.liveLead(id)
	if err != nil {
		return err
	}
	lead.DeletedAt = sql.NullTime{Time: at, Valid: true}
	return nil
}

type batchStore struct {
	*Store
}

func (s *batchStore) Create(_ context.Context, batch *models.BulkBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[batch.ID]; ok {
		return fmt.Errorf("failed to create bulk batch: duplicate id %s", batch.ID)
	}
	batch.CreatedAt = s.now()
	c := *batch
	c.LeadIDs = append([]int64(nil), batch.LeadIDs...)
	s.batches[batch.ID] = &c
	return nil
}

func (s *batchStore) Get(_ context.Context, id string) (*models.BulkBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok {
		return nil, repository.ErrBatchNotFound
	}
	c := *batch
	c.LeadIDs = append([]int64(nil), batch.LeadIDs...)
	c.SkippedIDs = append([]int64(nil), batch.SkippedIDs...)
	return &c, nil
}

func (s *batchStore) MarkSkipped(_ context.Context, id string, leadIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok {
		return repository.ErrBatchNotFound
	}
	for _, leadID := range leadIDs {
		if !slices.Contains(batch.SkippedIDs, leadID) {
			batch.SkippedIDs = append(batch.SkippedIDs, leadID)
		}
	}
	return nil
}
