package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// ScheduleRepository implements repository.ScheduleRepository for
// PostgreSQL. A schedule's assignments and juhu days live in child tables
// (schedule_assignments, schedule_juhu_days) keyed by schedule_id.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO schedules (id, name, start_date) VALUES ($1, $2, $3)`,
		schedule.ID, schedule.Name, schedule.StartDate)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	if err := insertAssignments(ctx, tx, schedule.ID, schedule.Assignments); err != nil {
		return err
	}
	if err := insertJuhuDays(ctx, tx, schedule.ID, schedule.StaffJuhuDays); err != nil {
		return err
	}

	return tx.Commit()
}

func insertAssignments(ctx context.Context, tx *sql.Tx, scheduleID uuid.UUID, assignments []entity.ShiftAssignment) error {
	for _, a := range assignments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_assignments (schedule_id, staff_id, date, shift, locked) VALUES ($1, $2, $3, $4, $5)`,
			scheduleID, a.StaffID, a.Date, string(a.Shift), a.Locked)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return nil
}

func insertJuhuDays(ctx context.Context, tx *sql.Tx, scheduleID uuid.UUID, juhuDays map[uuid.UUID]entity.DayOfWeek) error {
	for staffID, day := range juhuDays {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_juhu_days (schedule_id, staff_id, juhu_day) VALUES ($1, $2, $3)`,
			scheduleID, staffID, int(day))
		if err != nil {
			return fmt.Errorf("failed to insert juhu day: %w", err)
		}
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	schedule := &entity.Schedule{ID: id}
	err := r.db.QueryRowContext(ctx, `SELECT name, start_date FROM schedules WHERE id = $1`, id).
		Scan(&schedule.Name, &schedule.StartDate)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if err := r.loadAssignmentsAndJuhu(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *ScheduleRepository) GetByStartDate(ctx context.Context, startDate time.Time) (*entity.Schedule, error) {
	schedule := &entity.Schedule{StartDate: calendar.DateOnly(startDate)}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM schedules WHERE start_date = $1`, schedule.StartDate).
		Scan(&schedule.ID, &schedule.Name)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: schedule.StartDate.Format("2006-01-02")}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule by start date: %w", err)
	}

	if err := r.loadAssignmentsAndJuhu(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *ScheduleRepository) loadAssignmentsAndJuhu(ctx context.Context, schedule *entity.Schedule) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, date, shift, locked FROM schedule_assignments WHERE schedule_id = $1`, schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a entity.ShiftAssignment
		var shift string
		if err := rows.Scan(&a.StaffID, &a.Date, &shift, &a.Locked); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Shift = entity.ShiftType(shift)
		schedule.Assignments = append(schedule.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	juhuRows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, juhu_day FROM schedule_juhu_days WHERE schedule_id = $1`, schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to query juhu days: %w", err)
	}
	defer juhuRows.Close()

	schedule.StaffJuhuDays = make(map[uuid.UUID]entity.DayOfWeek)
	for juhuRows.Next() {
		var staffID uuid.UUID
		var day int
		if err := juhuRows.Scan(&staffID, &day); err != nil {
			return fmt.Errorf("failed to scan juhu day: %w", err)
		}
		schedule.StaffJuhuDays[staffID] = entity.DayOfWeek(day)
	}
	return juhuRows.Err()
}

// GetPreviousPeriodTrail returns every assignment, for any staff member,
// dated within the 7 days immediately preceding startDate, across whichever
// schedule(s) hold them.
func (r *ScheduleRepository) GetPreviousPeriodTrail(ctx context.Context, startDate time.Time) ([]entity.ShiftAssignment, error) {
	trailStart, trailEnd := calendar.PreviousPeriodWindow(startDate)

	rows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, date, shift, locked FROM schedule_assignments WHERE date >= $1 AND date < $2`,
		trailStart, trailEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query previous-period trail: %w", err)
	}
	defer rows.Close()

	var trail []entity.ShiftAssignment
	for rows.Next() {
		var a entity.ShiftAssignment
		var shift string
		if err := rows.Scan(&a.StaffID, &a.Date, &shift, &a.Locked); err != nil {
			return nil, fmt.Errorf("failed to scan trail assignment: %w", err)
		}
		a.Shift = entity.ShiftType(shift)
		trail = append(trail, a)
	}
	return trail, rows.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE schedules SET name = $2, start_date = $3 WHERE id = $1`,
		schedule.ID, schedule.Name, schedule.StartDate)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if err := checkRowsAffected(result, "Schedule", schedule.ID.String()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE schedule_id = $1`, schedule.ID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_juhu_days WHERE schedule_id = $1`, schedule.ID); err != nil {
		return fmt.Errorf("failed to clear juhu days: %w", err)
	}
	if err := insertAssignments(ctx, tx, schedule.ID, schedule.Assignments); err != nil {
		return err
	}
	if err := insertJuhuDays(ctx, tx, schedule.ID, schedule.StaffJuhuDays); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return checkRowsAffected(result, "Schedule", id.String())
}

func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return count, nil
}
