// Package memory provides sync.RWMutex-guarded in-memory implementations
// of the repository interfaces, grounded on
// v2/internal/repository/memory/base.go's shared-store shape (trimmed from
// ten entity maps to the four this domain keeps) and
// v2/internal/repository/memory/schedule.go's per-repository lock/queryCount
// pattern.
package memory

import (
	"context"

	"github.com/schedcu/rotacheck/internal/repository"
)

// Database is the in-memory repository.Database implementation used by
// tests and local development without a Postgres instance.
type Database struct {
	staff    *StaffRepository
	schedule *ScheduleRepository
	runs     *OptimizerRunRepository
	audit    *AuditLogRepository
}

// NewDatabase builds an empty in-memory Database.
func NewDatabase() *Database {
	return &Database{
		staff:    NewStaffRepository(),
		schedule: NewScheduleRepository(),
		runs:     NewOptimizerRunRepository(),
		audit:    NewAuditLogRepository(),
	}
}

func (d *Database) StaffRepository() repository.StaffRepository               { return d.staff }
func (d *Database) ScheduleRepository() repository.ScheduleRepository         { return d.schedule }
func (d *Database) OptimizerRunRepository() repository.OptimizerRunRepository { return d.runs }
func (d *Database) AuditLogRepository() repository.AuditLogRepository         { return d.audit }

func (d *Database) Close() error                          { return nil }
func (d *Database) Health(ctx context.Context) error       { return nil }

// BeginTx returns a transaction wrapper; the in-memory store has no real
// transaction isolation, so Commit/Rollback are no-ops over the same
// locked repositories, which is adequate for tests.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &tx{db: d}, nil
}

type tx struct {
	db *Database
}

func (t *tx) Commit() error   { return nil }
func (t *tx) Rollback() error { return nil }

func (t *tx) StaffRepository() repository.StaffRepository               { return t.db.staff }
func (t *tx) ScheduleRepository() repository.ScheduleRepository         { return t.db.schedule }
func (t *tx) OptimizerRunRepository() repository.OptimizerRunRepository { return t.db.runs }
func (t *tx) AuditLogRepository() repository.AuditLogRepository         { return t.db.audit }
