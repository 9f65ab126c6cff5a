// Package repository implements Postgres storage for leads, the dispatch log,
// sequences and bulk batches.
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db       *sqlx.DB
	lead     LeadRepository
	dispatch DispatchRepository
	sequence SequenceRepository
	batch    BatchRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:       db,
		lead:     NewLeadRepository(db),
		dispatch: NewDispatchRepository(db),
		sequence: NewSequenceRepository(db),
		batch:    NewBatchRepository(db),
	}
}

func (r *repositoryImpl) Lead() LeadRepository {
	return r.lead
}

func (r *repositoryImpl) Dispatch() DispatchRepository {
	return r.dispatch
}

func (r *repositoryImpl) Sequence() SequenceRepository {
	return r.sequence
}

func (r *repositoryImpl) Batch() BatchRepository {
	return r.batch
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// withTx runs fn in a transaction and commits when it returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
