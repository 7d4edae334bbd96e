package memory

import (
	"context"
	"sync"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

// ScheduleRepository is an in-memory repository.ScheduleRepository,
// grounded on v2/internal/repository/memory/schedule.go's lock/queryCount
// shape (soft-delete dropped: this domain has one current schedule per
// start date, not a draft/publish version history).
type ScheduleRepository struct {
	mu         sync.RWMutex
	schedules  map[entity.StableId]*entity.Schedule
	queryCount int
}

// NewScheduleRepository creates a new empty in-memory schedule repository.
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[entity.StableId]*entity.Schedule)}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id entity.StableId) (*entity.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	s, ok := r.schedules[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	return s, nil
}

// GetByStartDate returns the schedule whose StartDate matches, if any.
func (r *ScheduleRepository) GetByStartDate(ctx context.Context, startDate time.Time) (*entity.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	target := calendar.DateOnly(startDate)
	for _, s := range r.schedules {
		if calendar.DateOnly(s.StartDate).Equal(target) {
			return s, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: target.Format("2006-01-02")}
}

// GetPreviousPeriodTrail returns every assignment, for any staff member,
// dated within the 7 days immediately preceding startDate, drawn from
// whichever stored schedule contains them (typically the prior period's
// schedule).
func (r *ScheduleRepository) GetPreviousPeriodTrail(ctx context.Context, startDate time.Time) ([]entity.ShiftAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	trailStart, trailEnd := calendar.PreviousPeriodWindow(startDate)
	var trail []entity.ShiftAssignment
	for _, s := range r.schedules {
		for _, a := range s.Assignments {
			d := calendar.DateOnly(a.Date)
			if !d.Before(trailStart) && d.Before(trailEnd) {
				trail = append(trail, a)
			}
		}
	}
	return trail, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, ok := r.schedules[schedule.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: schedule.ID.String()}
	}
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id entity.StableId) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, ok := r.schedules[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	delete(r.schedules, id)
	return nil
}

func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.schedules)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *ScheduleRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *ScheduleRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules = make(map[entity.StableId]*entity.Schedule)
	r.queryCount = 0
}
