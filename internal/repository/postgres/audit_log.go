package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// AuditLogRepository implements repository.AuditLogRepository for PostgreSQL.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new AuditLogRepository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, resource, old_values, new_values, timestamp, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.Resource, log.OldValues, log.NewValues, log.Timestamp, log.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error) {
	log := &entity.AuditLog{}
	query := `
		SELECT id, user_id, action, resource, old_values, new_values, timestamp, ip_address
		FROM audit_logs WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&log.ID, &log.UserID, &log.Action, &log.Resource, &log.OldValues, &log.NewValues, &log.Timestamp, &log.IPAddress,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "AuditLog", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}
	return log, nil
}

func (r *AuditLogRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error) {
	return r.queryLogs(ctx, `
		SELECT id, user_id, action, resource, old_values, new_values, timestamp, ip_address
		FROM audit_logs WHERE user_id = $1 ORDER BY timestamp DESC
	`, userID)
}

func (r *AuditLogRepository) GetByResource(ctx context.Context, resource string) ([]*entity.AuditLog, error) {
	return r.queryLogs(ctx, `
		SELECT id, user_id, action, resource, old_values, new_values, timestamp, ip_address
		FROM audit_logs WHERE resource = $1 ORDER BY timestamp DESC
	`, resource)
}

func (r *AuditLogRepository) GetByAction(ctx context.Context, action string) ([]*entity.AuditLog, error) {
	return r.queryLogs(ctx, `
		SELECT id, user_id, action, resource, old_values, new_values, timestamp, ip_address
		FROM audit_logs WHERE action = $1 ORDER BY timestamp DESC
	`, action)
}

func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	return r.queryLogs(ctx, `
		SELECT id, user_id, action, resource, old_values, new_values, timestamp, ip_address
		FROM audit_logs ORDER BY timestamp DESC LIMIT $1
	`, limit)
}

func (r *AuditLogRepository) queryLogs(ctx context.Context, query string, arg interface{}) ([]*entity.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.AuditLog
	for rows.Next() {
		log := &entity.AuditLog{}
		if err := rows.Scan(&log.ID, &log.UserID, &log.Action, &log.Resource, &log.OldValues, &log.NewValues, &log.Timestamp, &log.IPAddress); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *AuditLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return count, nil
}
