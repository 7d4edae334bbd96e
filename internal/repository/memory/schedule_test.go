package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

func newTestSchedule(startDate time.Time) *entity.Schedule {
	return &entity.Schedule{
		ID:            uuid.New(),
		Name:          "test rotation",
		StartDate:     startDate,
		StaffJuhuDays: make(map[entity.StableId]entity.DayOfWeek),
	}
}

func TestScheduleRepository_CreateAndGet(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	sched := newTestSchedule(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, sched))
	assert.Equal(t, 1, repo.QueryCount(), "create should be exactly 1 query")

	retrieved, err := repo.GetByID(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, sched.ID, retrieved.ID)
	assert.Equal(t, 2, repo.QueryCount())
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.True(t, repository.IsNotFound(err))
}

func TestScheduleRepository_GetByStartDate(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	startDate := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	sched := newTestSchedule(startDate)
	require.NoError(t, repo.Create(ctx, sched))

	retrieved, err := repo.GetByStartDate(ctx, startDate)
	require.NoError(t, err)
	assert.Equal(t, sched.ID, retrieved.ID)

	_, err = repo.GetByStartDate(ctx, startDate.AddDate(0, 0, 1))
	assert.True(t, repository.IsNotFound(err))
}

func TestScheduleRepository_GetPreviousPeriodTrail(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	januaryStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	staffID := uuid.New()
	january := newTestSchedule(januaryStart)
	january.Assignments = []entity.ShiftAssignment{
		{StaffID: staffID, Date: januaryStart.AddDate(0, 0, 26), Shift: entity.ShiftNight},
		{StaffID: staffID, Date: januaryStart.AddDate(0, 0, 27), Shift: entity.ShiftNight},
		{StaffID: staffID, Date: januaryStart.AddDate(0, 0, 10), Shift: entity.ShiftDay},
	}
	require.NoError(t, repo.Create(ctx, january))

	februaryStart := januaryStart.AddDate(0, 0, entity.PeriodLength)
	trail, err := repo.GetPreviousPeriodTrail(ctx, februaryStart)
	require.NoError(t, err)
	assert.Len(t, trail, 2, "only the two trailing night shifts should fall in the trail window")
}

func TestScheduleRepository_Update(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	sched := newTestSchedule(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, sched))

	sched.Name = "revised rotation"
	require.NoError(t, repo.Update(ctx, sched))

	retrieved, _ := repo.GetByID(ctx, sched.ID)
	assert.Equal(t, "revised rotation", retrieved.Name)
}

func TestScheduleRepository_Update_NotFound(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	err := repo.Update(ctx, newTestSchedule(time.Now()))
	assert.True(t, repository.IsNotFound(err))
}

func TestScheduleRepository_Delete(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	sched := newTestSchedule(time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, sched))
	require.NoError(t, repo.Delete(ctx, sched.ID))

	_, err := repo.GetByID(ctx, sched.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestScheduleRepository_Count(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sched := newTestSchedule(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0))
		require.NoError(t, repo.Create(ctx, sched))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestScheduleRepository_Reset(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	sched := newTestSchedule(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, sched))
	assert.Equal(t, 1, repo.QueryCount())

	repo.Reset()
	assert.Equal(t, 0, repo.QueryCount())

	_, err := repo.GetByID(ctx, sched.ID)
	assert.True(t, repository.IsNotFound(err))
}
