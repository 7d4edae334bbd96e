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

func TestStaffRepository_CreateAndGet(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	staff := &entity.Staff{ID: uuid.New(), Name: "Morgan Lee"}
	require.NoError(t, repo.Create(ctx, staff))

	retrieved, err := repo.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.Name, retrieved.Name)
}

func TestStaffRepository_GetByID_NotFound(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}

func TestStaffRepository_Update(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	staff := &entity.Staff{ID: uuid.New(), Name: "Alex Chen"}
	require.NoError(t, repo.Create(ctx, staff))

	staff.Name = "Alex Chen-Woods"
	require.NoError(t, repo.Update(ctx, staff))

	retrieved, _ := repo.GetByID(ctx, staff.ID)
	assert.Equal(t, "Alex Chen-Woods", retrieved.Name)
}

func TestStaffRepository_Update_NotFound(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	err := repo.Update(ctx, &entity.Staff{ID: uuid.New(), Name: "Ghost"})
	assert.True(t, repository.IsNotFound(err))
}

func TestStaffRepository_Delete(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	staff := &entity.Staff{ID: uuid.New(), Name: "Riley Park"}
	require.NoError(t, repo.Create(ctx, staff))
	require.NoError(t, repo.Delete(ctx, staff.ID))

	_, err := repo.GetByID(ctx, staff.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestStaffRepository_GetAllAndCount(t *testing.T) {
	repo := NewStaffRepository()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, &entity.Staff{ID: uuid.New(), Name: name}))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
