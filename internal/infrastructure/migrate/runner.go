// Package migrate applies the SQL schema in migrations/ with golang-migrate.
package migrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file source for migrations
)

// ErrDirty is returned when a previous migration failed half way.
var ErrDirty = errors.New("database is in dirty state")

type Config struct {
	MigrationsPath string
	// Table overrides the schema_migrations table name.
	Table string
}

// Runner migrates an already opened Postgres connection. It does not close db.
type Runner struct {
	db     *sql.DB
	config *Config
}

func NewRunner(db *sql.DB, config *Config) *Runner {
	return &Runner{
		db:     db,
		config: config,
	}
}

func (r *Runner) instance() (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{MigrationsTable: r.config.Table})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+r.config.MigrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies every pending migration and returns the resulting version.
func (r *Runner) Up() (uint, error) {
	return r.apply(func(m *migrate.Migrate) error { return m.Up() })
}

// Steps moves n migrations forward, or backward when n is negative.
func (r *Runner) Steps(n int) (uint, error) {
	return r.apply(func(m *migrate.Migrate) error { return m.Steps(n) })
}

func (r *Runner) apply(fn func(*migrate.Migrate) error) (uint, error) {
	m, err := r.instance()
	if err != nil {
		return 0, err
	}

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}
	return current(m)
}

// Version returns the applied version; 0 means no migration has run.
func (r *Runner) Version() (uint, error) {
	m, err := r.instance()
	if err != nil {
		return 0, err
	}
	return current(m)
}

func current(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("%w at version %d", ErrDirty, version)
	}
	return version, nil
}
