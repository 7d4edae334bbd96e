package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// AuditLogRepository is an in-memory repository.AuditLogRepository.
type AuditLogRepository struct {
	mu   sync.RWMutex
	logs map[entity.StableId]*entity.AuditLog
}

// NewAuditLogRepository creates a new empty in-memory audit log repository.
func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{logs: make(map[entity.StableId]*entity.AuditLog)}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == (entity.StableId{}) {
		log.ID = uuid.New()
	}
	r.logs[log.ID] = log
	return nil
}

func (r *AuditLogRepository) GetByID(ctx context.Context, id entity.StableId) (*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "AuditLog", ResourceID: id.String()}
	}
	return log, nil
}

func (r *AuditLogRepository) GetByUser(ctx context.Context, userID entity.StableId) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.UserID == userID {
			result = append(result, log)
		}
	}
	return result, nil
}

func (r *AuditLogRepository) GetByResource(ctx context.Context, resource string) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.Resource == resource {
			result = append(result, log)
		}
	}
	return result, nil
}

func (r *AuditLogRepository) GetByAction(ctx context.Context, action string) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.Action == action {
			result = append(result, log)
		}
	}
	return result, nil
}

func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.AuditLog, 0, len(r.logs))
	for _, log := range r.logs {
		all = append(all, log)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })

	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *AuditLogRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.logs)), nil
}
