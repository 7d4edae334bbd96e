package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/repository"
)

func TestOptimizerRunRepository_CreateAndGet(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	run := entity.NewOptimizerRun(uuid.New(), uuid.New(), entity.OptimizerRunGenerate)
	require.NoError(t, repo.Create(ctx, run))

	retrieved, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OptimizerRunPending, retrieved.State)
}

func TestOptimizerRunRepository_GetByID_NotFound(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.True(t, repository.IsNotFound(err))
}

func TestOptimizerRunRepository_GetByScheduleID(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	scheduleID := uuid.New()
	otherScheduleID := uuid.New()
	createdBy := uuid.New()

	require.NoError(t, repo.Create(ctx, entity.NewOptimizerRun(scheduleID, createdBy, entity.OptimizerRunGenerate)))
	require.NoError(t, repo.Create(ctx, entity.NewOptimizerRun(scheduleID, createdBy, entity.OptimizerRunCheckFeasibility)))
	require.NoError(t, repo.Create(ctx, entity.NewOptimizerRun(otherScheduleID, createdBy, entity.OptimizerRunGenerate)))

	runs, err := repo.GetByScheduleID(ctx, scheduleID)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestOptimizerRunRepository_GetByState(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	createdBy := uuid.New()
	complete := entity.NewOptimizerRun(uuid.New(), createdBy, entity.OptimizerRunGenerate)
	complete.MarkComplete(0)
	pending := entity.NewOptimizerRun(uuid.New(), createdBy, entity.OptimizerRunGenerate)

	require.NoError(t, repo.Create(ctx, complete))
	require.NoError(t, repo.Create(ctx, pending))

	completeRuns, err := repo.GetByState(ctx, entity.OptimizerRunComplete)
	require.NoError(t, err)
	assert.Len(t, completeRuns, 1)
	assert.Equal(t, complete.ID, completeRuns[0].ID)
}

func TestOptimizerRunRepository_Update(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	run := entity.NewOptimizerRun(uuid.New(), uuid.New(), entity.OptimizerRunGenerate)
	require.NoError(t, repo.Create(ctx, run))

	run.MarkComplete(3)
	require.NoError(t, repo.Update(ctx, run))

	retrieved, _ := repo.GetByID(ctx, run.ID)
	assert.Equal(t, entity.OptimizerRunComplete, retrieved.State)
	assert.Equal(t, 3, retrieved.ViolationCount)
}

func TestOptimizerRunRepository_CleanupOldRuns(t *testing.T) {
	repo := NewOptimizerRunRepository()
	ctx := context.Background()

	createdBy := uuid.New()

	oldRun := entity.NewOptimizerRun(uuid.New(), createdBy, entity.OptimizerRunGenerate)
	oldRun.MarkComplete(0)
	oldRun.RequestedAt = entity.Now().AddDate(0, 0, -60)
	require.NoError(t, repo.Create(ctx, oldRun))

	recentRun := entity.NewOptimizerRun(uuid.New(), createdBy, entity.OptimizerRunGenerate)
	recentRun.MarkComplete(0)
	require.NoError(t, repo.Create(ctx, recentRun))

	stillRunning := entity.NewOptimizerRun(uuid.New(), createdBy, entity.OptimizerRunGenerate)
	stillRunning.RequestedAt = entity.Now().AddDate(0, 0, -60)
	require.NoError(t, repo.Create(ctx, stillRunning))

	removed, err := repo.CleanupOldRuns(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, recentRun.ID)
	assert.NoError(t, err, "recent complete run should survive cleanup")
	_, err = repo.GetByID(ctx, stillRunning.ID)
	assert.NoError(t, err, "non-terminal run should survive cleanup regardless of age")
}
