package job

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/metrics"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
	"github.com/schedcu/rotacheck/internal/repository/memory"
)

func newUUID() entity.StableId { return uuid.New() }

func newTestPrometheusRegisterer() prometheus.Registerer { return prometheus.NewRegistry() }

func newTestHandlers(t *testing.T, optimizerURL string) (*Handlers, *memory.Database) {
	t.Helper()
	db := memory.NewDatabase()
	store := configstore.New(configstore.NewMemoryBackend())
	client := optimizerclient.NewClient(optimizerURL, 0, time.Second)
	log := zap.NewNop().Sugar()
	reg := metrics.NewWithRegistry(newTestPrometheusRegisterer())
	return NewHandlers(client, db, store, log, reg), db
}

func TestHandleGenerate_PersistsAssignmentsAndMarksComplete(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(optimizerclient.GenerateResponse{
			Success: true,
			Schedule: &struct {
				Assignments []optimizerclient.WireShiftAssignment `json:"assignments"`
			}{Assignments: []optimizerclient.WireShiftAssignment{}},
		})
	}))
	defer server.Close()

	handlers, db := newTestHandlers(t, server.URL)
	ctx := t.Context()

	sched := &entity.Schedule{ID: newUUID(), StartDate: start, StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{}}
	require.NoError(t, db.ScheduleRepository().Create(ctx, sched))

	run := entity.NewOptimizerRun(sched.ID, newUUID(), entity.OptimizerRunGenerate)
	require.NoError(t, db.OptimizerRunRepository().Create(ctx, run))

	payload, err := json.Marshal(GeneratePayload{OptimizerRunID: run.ID, ScheduleID: sched.ID})
	require.NoError(t, err)
	task := asynq.NewTask(TypeGenerate, payload)

	require.NoError(t, handlers.HandleGenerate(ctx, task))

	updated, err := db.OptimizerRunRepository().GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OptimizerRunComplete, updated.State)
}

func TestHandleGenerate_MarksFailedOnInfeasible(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(optimizerclient.GenerateResponse{
			Success: false,
			Error:   &optimizerclient.WireError{Code: "INFEASIBLE", Message: "no valid schedule"},
		})
	}))
	defer server.Close()

	handlers, db := newTestHandlers(t, server.URL)
	ctx := t.Context()

	sched := &entity.Schedule{ID: newUUID(), StartDate: start, StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{}}
	require.NoError(t, db.ScheduleRepository().Create(ctx, sched))

	run := entity.NewOptimizerRun(sched.ID, newUUID(), entity.OptimizerRunGenerate)
	require.NoError(t, db.OptimizerRunRepository().Create(ctx, run))

	payload, err := json.Marshal(GeneratePayload{OptimizerRunID: run.ID, ScheduleID: sched.ID})
	require.NoError(t, err)
	task := asynq.NewTask(TypeGenerate, payload)

	require.NoError(t, handlers.HandleGenerate(ctx, task))

	updated, err := db.OptimizerRunRepository().GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OptimizerRunFailed, updated.State)
	assert.Equal(t, entity.OptimizerErrInfeasible, updated.ErrorCode)
}

func TestHandleCheckFeasibility_MarksCompleteWithViolationCount(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(optimizerclient.CheckFeasibilityResponse{
			Feasible: false,
			Reasons:  []string{"not enough night staff", "juhu conflict"},
		})
	}))
	defer server.Close()

	handlers, db := newTestHandlers(t, server.URL)
	ctx := t.Context()

	sched := &entity.Schedule{ID: newUUID(), StartDate: start, StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{}}
	require.NoError(t, db.ScheduleRepository().Create(ctx, sched))

	run := entity.NewOptimizerRun(sched.ID, newUUID(), entity.OptimizerRunCheckFeasibility)
	require.NoError(t, db.OptimizerRunRepository().Create(ctx, run))

	payload, err := json.Marshal(CheckFeasibilityPayload{OptimizerRunID: run.ID, ScheduleID: sched.ID})
	require.NoError(t, err)
	task := asynq.NewTask(TypeCheckFeasibility, payload)

	require.NoError(t, handlers.HandleCheckFeasibility(ctx, task))

	updated, err := db.OptimizerRunRepository().GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OptimizerRunComplete, updated.State)
	assert.Equal(t, 2, updated.ViolationCount)
}
