package entity

import (
	"time"

	"github.com/google/uuid"
)

// OptimizerRunKind distinguishes the two external-optimizer round trips:
// a full generation request and a lightweight feasibility pre-check.
type OptimizerRunKind string

const (
	OptimizerRunGenerate         OptimizerRunKind = "GENERATE"
	OptimizerRunCheckFeasibility OptimizerRunKind = "CHECK_FEASIBILITY"
)

// OptimizerRunState is the lifecycle of one round trip to the external
// CP-SAT auto-generator: PENDING/COMPLETE/FAILED with an added RUNNING
// state for the in-flight HTTP call.
type OptimizerRunState string

const (
	OptimizerRunPending  OptimizerRunState = "PENDING"
	OptimizerRunRunning  OptimizerRunState = "RUNNING"
	OptimizerRunComplete OptimizerRunState = "COMPLETE"
	OptimizerRunFailed   OptimizerRunState = "FAILED"
)

// OptimizerErrorCode is the external solver's error taxonomy.
type OptimizerErrorCode string

const (
	OptimizerErrInfeasible   OptimizerErrorCode = "INFEASIBLE"
	OptimizerErrTimeout      OptimizerErrorCode = "TIMEOUT"
	OptimizerErrInvalidInput OptimizerErrorCode = "INVALID_INPUT"
)

// OptimizerRun tracks one /generate or /check-feasibility call end to end:
// PENDING through RUNNING to either COMPLETE or FAILED.
type OptimizerRun struct {
	ID             StableId
	ScheduleID     StableId
	Kind           OptimizerRunKind
	State          OptimizerRunState
	RequestedAt    time.Time
	CompletedAt    *time.Time
	ErrorCode      OptimizerErrorCode
	ErrorMessage   *string
	ViolationCount int
	CreatedBy      StableId
}

// NewOptimizerRun starts a new pending run.
func NewOptimizerRun(scheduleID, createdBy StableId, kind OptimizerRunKind) *OptimizerRun {
	return &OptimizerRun{
		ID:          uuid.New(),
		ScheduleID:  scheduleID,
		Kind:        kind,
		State:       OptimizerRunPending,
		RequestedAt: Now(),
		CreatedBy:   createdBy,
	}
}

// MarkRunning transitions a pending run to in-flight.
func (r *OptimizerRun) MarkRunning() {
	r.State = OptimizerRunRunning
}

// MarkComplete transitions a run to COMPLETE, recording how many
// violations the resulting schedule still carries.
func (r *OptimizerRun) MarkComplete(violationCount int) {
	now := Now()
	r.State = OptimizerRunComplete
	r.CompletedAt = &now
	r.ViolationCount = violationCount
}

// MarkFailed transitions a run to FAILED with the optimizer's error code
// and message.
func (r *OptimizerRun) MarkFailed(code OptimizerErrorCode, message string) {
	now := Now()
	r.State = OptimizerRunFailed
	r.CompletedAt = &now
	r.ErrorCode = code
	r.ErrorMessage = &message
}

// IsTerminal reports whether the run has reached COMPLETE or FAILED.
func (r *OptimizerRun) IsTerminal() bool {
	return r.State == OptimizerRunComplete || r.State == OptimizerRunFailed
}
