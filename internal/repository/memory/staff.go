package memory

import (
	"context"
	"sync"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// StaffRepository is an in-memory repository.StaffRepository.
type StaffRepository struct {
	mu    sync.RWMutex
	staff map[entity.StableId]*entity.Staff
}

// NewStaffRepository creates a new empty in-memory staff repository.
func NewStaffRepository() *StaffRepository {
	return &StaffRepository{staff: make(map[entity.StableId]*entity.Staff)}
}

func (r *StaffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[staff.ID] = staff
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id entity.StableId) (*entity.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.staff[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "Staff", ResourceID: id.String()}
	}
	return s, nil
}

func (r *StaffRepository) GetAll(ctx context.Context) ([]*entity.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		result = append(result, s)
	}
	return result, nil
}

func (r *StaffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[staff.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Staff", ResourceID: staff.ID.String()}
	}
	r.staff[staff.ID] = staff
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id entity.StableId) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Staff", ResourceID: id.String()}
	}
	delete(r.staff, id)
	return nil
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.staff)), nil
}
