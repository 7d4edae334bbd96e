package memory

import (
	"context"
	"sync"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// OptimizerRunRepository is an in-memory repository.OptimizerRunRepository,
// grounded on v2/internal/repository/memory/*.go's ScrapeBatch repository
// (repurposed from "scrape batch" to "optimizer round trip" state tracking).
type OptimizerRunRepository struct {
	mu   sync.RWMutex
	runs map[entity.StableId]*entity.OptimizerRun
}

// NewOptimizerRunRepository creates a new empty in-memory repository.
func NewOptimizerRunRepository() *OptimizerRunRepository {
	return &OptimizerRunRepository{runs: make(map[entity.StableId]*entity.OptimizerRun)}
}

func (r *OptimizerRunRepository) Create(ctx context.Context, run *entity.OptimizerRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *OptimizerRunRepository) GetByID(ctx context.Context, id entity.StableId) (*entity.OptimizerRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "OptimizerRun", ResourceID: id.String()}
	}
	return run, nil
}

func (r *OptimizerRunRepository) GetByScheduleID(ctx context.Context, scheduleID entity.StableId) ([]*entity.OptimizerRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.OptimizerRun
	for _, run := range r.runs {
		if run.ScheduleID == scheduleID {
			result = append(result, run)
		}
	}
	return result, nil
}

func (r *OptimizerRunRepository) GetByState(ctx context.Context, state entity.OptimizerRunState) ([]*entity.OptimizerRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.OptimizerRun
	for _, run := range r.runs {
		if run.State == state {
			result = append(result, run)
		}
	}
	return result, nil
}

func (r *OptimizerRunRepository) Update(ctx context.Context, run *entity.OptimizerRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "OptimizerRun", ResourceID: run.ID.String()}
	}
	r.runs[run.ID] = run
	return nil
}

func (r *OptimizerRunRepository) Delete(ctx context.Context, id entity.StableId) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[id]; !ok {
		return &repository.NotFoundError{ResourceType: "OptimizerRun", ResourceID: id.String()}
	}
	delete(r.runs, id)
	return nil
}

func (r *OptimizerRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.runs)), nil
}

// CleanupOldRuns deletes terminal runs older than daysOld days, returning
// the number removed.
func (r *OptimizerRunRepository) CleanupOldRuns(ctx context.Context, daysOld int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := entity.Now().AddDate(0, 0, -daysOld)
	var removed int64
	for id, run := range r.runs {
		if run.IsTerminal() && run.RequestedAt.Before(cutoff) {
			delete(r.runs, id)
			removed++
		}
	}
	return removed, nil
}
