package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schedcu/rotacheck/internal/repository"
)

// Database ties the individual PostgreSQL repositories into a single
// repository.Database.
type Database struct {
	db *DB

	staff    *StaffRepository
	schedule *ScheduleRepository
	runs     *OptimizerRunRepository
	audit    *AuditLogRepository
}

// NewDatabase opens a PostgreSQL connection and wires up every repository.
func NewDatabase(connString string) (*Database, error) {
	db, err := New(connString)
	if err != nil {
		return nil, err
	}
	return &Database{
		db:       db,
		staff:    NewStaffRepository(db.DB),
		schedule: NewScheduleRepository(db.DB),
		runs:     NewOptimizerRunRepository(db.DB),
		audit:    NewAuditLogRepository(db.DB),
	}, nil
}

func (d *Database) StaffRepository() repository.StaffRepository               { return d.staff }
func (d *Database) ScheduleRepository() repository.ScheduleRepository         { return d.schedule }
func (d *Database) OptimizerRunRepository() repository.OptimizerRunRepository { return d.runs }
func (d *Database) AuditLogRepository() repository.AuditLogRepository         { return d.audit }

func (d *Database) Close() error                    { return d.db.Close() }
func (d *Database) Health(ctx context.Context) error { return d.db.Health(ctx) }

// BeginTx opens a SQL transaction and wraps it as a repository.Transaction.
// Since the individual repositories operate on *sql.DB rather than *sql.Tx,
// transactional isolation here is advisory-only — callers that need true
// cross-repository atomicity should issue raw SQL within one *sql.Tx
// directly.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &tx{db: d, sqlTx: sqlTx}, nil
}

type tx struct {
	db    *Database
	sqlTx *sql.Tx
}

func (t *tx) Commit() error   { return t.sqlTx.Commit() }
func (t *tx) Rollback() error { return t.sqlTx.Rollback() }

func (t *tx) StaffRepository() repository.StaffRepository               { return t.db.staff }
func (t *tx) ScheduleRepository() repository.ScheduleRepository         { return t.db.schedule }
func (t *tx) OptimizerRunRepository() repository.OptimizerRunRepository { return t.db.runs }
func (t *tx) AuditLogRepository() repository.AuditLogRepository         { return t.db.audit }
