package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// StaffRepository implements repository.StaffRepository for PostgreSQL.
type StaffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO staff (id, name) VALUES ($1, $2)`, staff.ID, staff.Name)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff := &entity.Staff{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM staff WHERE id = $1`, id).Scan(&staff.ID, &staff.Name)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Staff", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (r *StaffRepository) GetAll(ctx context.Context) ([]*entity.Staff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM staff ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var result []*entity.Staff
	for rows.Next() {
		staff := &entity.Staff{}
		if err := rows.Scan(&staff.ID, &staff.Name); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *StaffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	result, err := r.db.ExecContext(ctx, `UPDATE staff SET name = $2 WHERE id = $1`, staff.ID, staff.Name)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	return checkRowsAffected(result, "Staff", staff.ID.String())
}

func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return checkRowsAffected(result, "Staff", id.String())
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return count, nil
}

func checkRowsAffected(result sql.Result, resourceType, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: resourceType, ResourceID: id}
	}
	return nil
}
