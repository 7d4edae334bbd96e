package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// OptimizerRunRepository implements repository.OptimizerRunRepository for
// PostgreSQL.
type OptimizerRunRepository struct {
	db *sql.DB
}

// NewOptimizerRunRepository creates a new OptimizerRunRepository.
func NewOptimizerRunRepository(db *sql.DB) *OptimizerRunRepository {
	return &OptimizerRunRepository{db: db}
}

func (r *OptimizerRunRepository) Create(ctx context.Context, run *entity.OptimizerRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO optimizer_runs (id, schedule_id, kind, state, requested_at, completed_at, error_code, error_message, violation_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, run.ID, run.ScheduleID, string(run.Kind), string(run.State), run.RequestedAt, run.CompletedAt,
		string(run.ErrorCode), run.ErrorMessage, run.ViolationCount, run.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create optimizer run: %w", err)
	}
	return nil
}

func (r *OptimizerRunRepository) scanRun(row interface{ Scan(...interface{}) error }) (*entity.OptimizerRun, error) {
	run := &entity.OptimizerRun{}
	var kind, state, errCode string
	err := row.Scan(&run.ID, &run.ScheduleID, &kind, &state, &run.RequestedAt, &run.CompletedAt,
		&errCode, &run.ErrorMessage, &run.ViolationCount, &run.CreatedBy)
	if err != nil {
		return nil, err
	}
	run.Kind = entity.OptimizerRunKind(kind)
	run.State = entity.OptimizerRunState(state)
	run.ErrorCode = entity.OptimizerErrorCode(errCode)
	return run, nil
}

func (r *OptimizerRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptimizerRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, schedule_id, kind, state, requested_at, completed_at, error_code, error_message, violation_count, created_by
		FROM optimizer_runs WHERE id = $1
	`, id)
	run, err := r.scanRun(row)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "OptimizerRun", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get optimizer run: %w", err)
	}
	return run, nil
}

func (r *OptimizerRunRepository) GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]*entity.OptimizerRun, error) {
	return r.queryRuns(ctx, `
		SELECT id, schedule_id, kind, state, requested_at, completed_at, error_code, error_message, violation_count, created_by
		FROM optimizer_runs WHERE schedule_id = $1 ORDER BY requested_at DESC
	`, scheduleID)
}

func (r *OptimizerRunRepository) GetByState(ctx context.Context, state entity.OptimizerRunState) ([]*entity.OptimizerRun, error) {
	return r.queryRuns(ctx, `
		SELECT id, schedule_id, kind, state, requested_at, completed_at, error_code, error_message, violation_count, created_by
		FROM optimizer_runs WHERE state = $1 ORDER BY requested_at DESC
	`, string(state))
}

func (r *OptimizerRunRepository) queryRuns(ctx context.Context, query string, arg interface{}) ([]*entity.OptimizerRun, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimizer runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.OptimizerRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan optimizer run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *OptimizerRunRepository) Update(ctx context.Context, run *entity.OptimizerRun) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE optimizer_runs
		SET state = $2, completed_at = $3, error_code = $4, error_message = $5, violation_count = $6
		WHERE id = $1
	`, run.ID, string(run.State), run.CompletedAt, string(run.ErrorCode), run.ErrorMessage, run.ViolationCount)
	if err != nil {
		return fmt.Errorf("failed to update optimizer run: %w", err)
	}
	return checkRowsAffected(result, "OptimizerRun", run.ID.String())
}

func (r *OptimizerRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM optimizer_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete optimizer run: %w", err)
	}
	return checkRowsAffected(result, "OptimizerRun", id.String())
}

func (r *OptimizerRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM optimizer_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count optimizer runs: %w", err)
	}
	return count, nil
}

// CleanupOldRuns deletes terminal runs older than daysOld days, returning
// the number removed.
func (r *OptimizerRunRepository) CleanupOldRuns(ctx context.Context, daysOld int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM optimizer_runs
		WHERE state IN ('COMPLETE', 'FAILED') AND requested_at < NOW() - ($1 || ' days')::interval
	`, daysOld)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up optimizer runs: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
