package repository

import (
	"context"
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// Database provides access to all repositories.
type Database interface {
	BeginTx(ctx context.Context) (Transaction, error)

	StaffRepository() StaffRepository
	ScheduleRepository() ScheduleRepository
	OptimizerRunRepository() OptimizerRunRepository
	AuditLogRepository() AuditLogRepository

	Close() error
	Health(ctx context.Context) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error

	StaffRepository() StaffRepository
	ScheduleRepository() ScheduleRepository
	OptimizerRunRepository() OptimizerRunRepository
	AuditLogRepository() AuditLogRepository
}

// StaffRepository defines data access operations for rostered staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id entity.StableId) (*entity.Staff, error)
	GetAll(ctx context.Context) ([]*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id entity.StableId) error
	Count(ctx context.Context) (int64, error)
}

// ScheduleRepository defines data access operations for schedules and
// their assignments.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	GetByID(ctx context.Context, id entity.StableId) (*entity.Schedule, error)
	GetByStartDate(ctx context.Context, startDate time.Time) (*entity.Schedule, error)
	GetPreviousPeriodTrail(ctx context.Context, startDate time.Time) ([]entity.ShiftAssignment, error)
	Update(ctx context.Context, schedule *entity.Schedule) error
	Delete(ctx context.Context, id entity.StableId) error
	Count(ctx context.Context) (int64, error)
}

// OptimizerRunRepository defines data access operations for optimizer
// round-trip records (generate/check-feasibility calls and their state).
type OptimizerRunRepository interface {
	Create(ctx context.Context, run *entity.OptimizerRun) error
	GetByID(ctx context.Context, id entity.StableId) (*entity.OptimizerRun, error)
	GetByScheduleID(ctx context.Context, scheduleID entity.StableId) ([]*entity.OptimizerRun, error)
	GetByState(ctx context.Context, state entity.OptimizerRunState) ([]*entity.OptimizerRun, error)
	Update(ctx context.Context, run *entity.OptimizerRun) error
	Delete(ctx context.Context, id entity.StableId) error
	Count(ctx context.Context) (int64, error)
	CleanupOldRuns(ctx context.Context, daysOld int) (int64, error)
}

// AuditLogRepository defines data access operations for audit logs.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	GetByID(ctx context.Context, id entity.StableId) (*entity.AuditLog, error)
	GetByUser(ctx context.Context, userID entity.StableId) ([]*entity.AuditLog, error)
	GetByResource(ctx context.Context, resource string) ([]*entity.AuditLog, error)
	GetByAction(ctx context.Context, action string) ([]*entity.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

// NotFoundError represents a record not found error.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
