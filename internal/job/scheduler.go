// Package job wires the external-optimizer round trip behind an Asynq
// queue: an EnqueueX/HandleX split with asynq.Timeout/MaxRetry budgeting
// for the two round trips this domain has, /generate and
// /check-feasibility.
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/schedcu/rotacheck/internal/entity"
)

// Job type names registered with the Asynq mux.
const (
	TypeGenerate         = "optimizer:generate"
	TypeCheckFeasibility = "optimizer:check_feasibility"
)

// Scheduler enqueues optimizer round trips onto the Asynq queue.
type Scheduler struct {
	client    *asynq.Client
	redisAddr string
}

// NewScheduler connects to Redis at redisAddr and verifies the connection.
func NewScheduler(redisAddr string) (*Scheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("job: failed to connect to Redis: %w", err)
	}

	return &Scheduler{client: client, redisAddr: redisAddr}, nil
}

// GeneratePayload is TypeGenerate's task payload.
type GeneratePayload struct {
	OptimizerRunID entity.StableId `json:"optimizer_run_id"`
	ScheduleID     entity.StableId `json:"schedule_id"`
}

// EnqueueGenerate enqueues a /generate round trip for an already-created
// OptimizerRun record. The caller is responsible for creating that record
// in PENDING state before enqueueing, so GET /api/optimizer-runs/:id has
// something to return immediately.
func (s *Scheduler) EnqueueGenerate(ctx context.Context, runID, scheduleID entity.StableId) (*asynq.TaskInfo, error) {
	payload := GeneratePayload{OptimizerRunID: runID, ScheduleID: scheduleID}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("job: failed to marshal generate payload: %w", err)
	}

	task := asynq.NewTask(TypeGenerate, payloadBytes)

	// 30s is the recommended client-side timeout on the external-optimizer
	// round trip; MaxRetry(1) leaves the bulk of retry/backoff to the HTTP
	// client itself rather than re-running a solver call from scratch.
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(1), asynq.Timeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("job: failed to enqueue generate job: %w", err)
	}
	return info, nil
}

// CheckFeasibilityPayload is TypeCheckFeasibility's task payload.
type CheckFeasibilityPayload struct {
	OptimizerRunID entity.StableId `json:"optimizer_run_id"`
	ScheduleID     entity.StableId `json:"schedule_id"`
}

// EnqueueCheckFeasibility enqueues a /check-feasibility round trip.
func (s *Scheduler) EnqueueCheckFeasibility(ctx context.Context, runID, scheduleID entity.StableId) (*asynq.TaskInfo, error) {
	payload := CheckFeasibilityPayload{OptimizerRunID: runID, ScheduleID: scheduleID}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("job: failed to marshal check-feasibility payload: %w", err)
	}

	task := asynq.NewTask(TypeCheckFeasibility, payloadBytes)

	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(1), asynq.Timeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("job: failed to enqueue check-feasibility job: %w", err)
	}
	return info, nil
}

// Close releases the underlying Asynq client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}

// GetTaskInfo retrieves a task's current status from the given queue.
func (s *Scheduler) GetTaskInfo(ctx context.Context, queue, taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.redisAddr})
	defer inspector.Close()
	return inspector.GetTaskInfo(queue, taskID)
}
