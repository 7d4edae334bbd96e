package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/logger"
	"github.com/schedcu/rotacheck/internal/metrics"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
	"github.com/schedcu/rotacheck/internal/repository"

	"go.uber.org/zap"
)

// Handlers executes the queued optimizer round trips: one struct holding
// the collaborators each HandleX needs, registered against the Asynq mux
// in RegisterHandlers.
type Handlers struct {
	optimizer   *optimizerclient.Client
	db          repository.Database
	configStore *configstore.Store
	log         *zap.SugaredLogger
	metrics     *metrics.Registry
}

// NewHandlers builds a Handlers.
func NewHandlers(optimizer *optimizerclient.Client, db repository.Database, store *configstore.Store, log *zap.SugaredLogger, reg *metrics.Registry) *Handlers {
	return &Handlers{optimizer: optimizer, db: db, configStore: store, log: log, metrics: reg}
}

// loadConfig reads the persisted constraint configuration via the shared
// configstore.Store, deep-merged over the documented defaults. Handlers
// and the HTTP layer both go through this store rather than each owning
// their own copy, keeping the persisted config under a single owner.
func (h *Handlers) loadConfig(ctx context.Context) entity.ConstraintConfig {
	var wire optimizerclient.WireConstraintConfig
	defaults := optimizerclient.ToWireConstraintConfig(entity.DefaultConstraintConfig())
	if err := h.configStore.Get(configstore.KeyConfig, defaults, &wire); err != nil {
		logger.LogStorageDegraded(h.log, "configstore.Get(KeyConfig)", err)
		return entity.DefaultConstraintConfig()
	}
	return optimizerclient.FromWireConstraintConfig(wire)
}

// RegisterHandlers wires both job types into mux.
func (h *Handlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeGenerate, h.HandleGenerate)
	mux.HandleFunc(TypeCheckFeasibility, h.HandleCheckFeasibility)
}

// HandleGenerate drives one /generate round trip end to end: load the
// schedule and staff roster, call the optimizer, and persist the outcome
// on the OptimizerRun record.
func (h *Handlers) HandleGenerate(ctx context.Context, t *asynq.Task) error {
	var payload GeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("job: unmarshal generate payload: %w", asynq.SkipRetry)
	}

	run, schedule, staff, err := h.loadRunAndSchedule(ctx, payload.OptimizerRunID, payload.ScheduleID)
	if errors.Is(err, errRunHandled) {
		return nil
	}
	if err != nil {
		return err
	}

	run.MarkRunning()
	if err := h.db.OptimizerRunRepository().Update(ctx, run); err != nil {
		h.log.Errorw("failed to mark optimizer run running", "run_id", run.ID, "error", err)
	}
	h.metrics.IncrementActiveOptimizerRuns()
	defer h.metrics.DecrementActiveOptimizerRuns()

	previousPeriodEnd, err := h.db.ScheduleRepository().GetPreviousPeriodTrail(ctx, schedule.StartDate)
	if err != nil {
		h.log.Warnw("no previous-period trail available", "schedule_id", schedule.ID, "error", err)
	}

	req := optimizerclient.GenerateRequest{
		Staff:             optimizerclient.ToWireStaff(dereferenceStaff(staff)),
		StartDate:         schedule.StartDate.Format("2006-01-02"),
		Constraints:       optimizerclient.ToWireConstraintConfig(h.loadConfig(ctx)),
		PreviousPeriodEnd: optimizerclient.ToWireAssignments(previousPeriodEnd),
	}

	started := time.Now()
	resp, err := h.optimizer.Generate(ctx, req)
	duration := time.Since(started)
	logger.LogOptimizerRoundTrip(h.log, string(entity.OptimizerRunGenerate), duration.Milliseconds(), err)

	if err != nil {
		code, message := classifyOptimizerError(err)
		run.MarkFailed(code, message)
		h.metrics.RecordOptimizerRun("generate", false, duration.Seconds())
		if updateErr := h.db.OptimizerRunRepository().Update(ctx, run); updateErr != nil {
			h.log.Errorw("failed to persist failed optimizer run", "run_id", run.ID, "error", updateErr)
		}
		// A wire-level failure the optimizer itself reported is not a
		// transient fault; don't ask Asynq to retry it.
		return nil
	}

	assignments, convErr := optimizerclient.FromWireAssignments(resp.Schedule.Assignments)
	if convErr != nil {
		run.MarkFailed(entity.OptimizerErrInvalidInput, convErr.Error())
		_ = h.db.OptimizerRunRepository().Update(ctx, run)
		return nil
	}
	schedule.Assignments = assignments
	for _, j := range resp.StaffJuhuDays {
		staffID, parseErr := optimizerclient.ParseStableID(j.StaffID)
		if parseErr != nil {
			continue
		}
		schedule.StaffJuhuDays[staffID] = optimizerclient.WireToDayOfWeek(j.JuhuDay)
	}

	if err := h.db.ScheduleRepository().Update(ctx, schedule); err != nil {
		h.log.Errorw("failed to persist generated schedule", "schedule_id", schedule.ID, "error", err)
		run.MarkFailed(entity.OptimizerErrInvalidInput, "generated schedule could not be persisted")
		_ = h.db.OptimizerRunRepository().Update(ctx, run)
		return fmt.Errorf("job: persist generated schedule: %w", err)
	}

	run.MarkComplete(0)
	h.metrics.RecordOptimizerRun("generate", true, duration.Seconds())
	if err := h.db.OptimizerRunRepository().Update(ctx, run); err != nil {
		h.log.Errorw("failed to persist completed optimizer run", "run_id", run.ID, "error", err)
	}
	h.recordAudit(ctx, run.CreatedBy, "GENERATE_SCHEDULE", "Schedule#"+schedule.ID.String(), nil,
		map[string]int{"assignmentCount": len(assignments)}, "")

	return nil
}

// HandleCheckFeasibility drives one /check-feasibility round trip.
func (h *Handlers) HandleCheckFeasibility(ctx context.Context, t *asynq.Task) error {
	var payload CheckFeasibilityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("job: unmarshal check-feasibility payload: %w", asynq.SkipRetry)
	}

	run, schedule, staff, err := h.loadRunAndSchedule(ctx, payload.OptimizerRunID, payload.ScheduleID)
	if errors.Is(err, errRunHandled) {
		return nil
	}
	if err != nil {
		return err
	}

	run.MarkRunning()
	if err := h.db.OptimizerRunRepository().Update(ctx, run); err != nil {
		h.log.Errorw("failed to mark optimizer run running", "run_id", run.ID, "error", err)
	}

	previousPeriodEnd, err := h.db.ScheduleRepository().GetPreviousPeriodTrail(ctx, schedule.StartDate)
	if err != nil {
		h.log.Warnw("no previous-period trail available", "schedule_id", schedule.ID, "error", err)
	}

	req := optimizerclient.CheckFeasibilityRequest{
		Staff:             optimizerclient.ToWireStaff(dereferenceStaff(staff)),
		StartDate:         schedule.StartDate.Format("2006-01-02"),
		Constraints:       optimizerclient.ToWireConstraintConfig(h.loadConfig(ctx)),
		PreviousPeriodEnd: optimizerclient.ToWireAssignments(previousPeriodEnd),
	}

	started := time.Now()
	resp, err := h.optimizer.CheckFeasibility(ctx, req)
	duration := time.Since(started)
	logger.LogOptimizerRoundTrip(h.log, string(entity.OptimizerRunCheckFeasibility), duration.Milliseconds(), err)

	if err != nil {
		code, message := classifyOptimizerError(err)
		run.MarkFailed(code, message)
		h.metrics.RecordOptimizerRun("check_feasibility", false, duration.Seconds())
		_ = h.db.OptimizerRunRepository().Update(ctx, run)
		return nil
	}

	violationCount := 0
	if !resp.Feasible {
		violationCount = len(resp.Reasons)
	}
	run.MarkComplete(violationCount)
	h.metrics.RecordOptimizerRun("check_feasibility", true, duration.Seconds())
	h.metrics.RecordFeasibilityCheck(resp.Feasible, duration.Seconds())
	if err := h.db.OptimizerRunRepository().Update(ctx, run); err != nil {
		h.log.Errorw("failed to persist completed optimizer run", "run_id", run.ID, "error", err)
	}

	return nil
}

// errRunHandled signals that loadRunAndSchedule already marked the run
// FAILED and persisted it; callers should stop without touching the
// (nil) schedule/staff results and without asking Asynq to retry.
var errRunHandled = errors.New("job: optimizer run already handled")

func (h *Handlers) loadRunAndSchedule(ctx context.Context, runID, scheduleID entity.StableId) (*entity.OptimizerRun, *entity.Schedule, []*entity.Staff, error) {
	run, err := h.db.OptimizerRunRepository().GetByID(ctx, runID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("job: load optimizer run: %w", err)
	}
	schedule, err := h.db.ScheduleRepository().GetByID(ctx, scheduleID)
	if err != nil {
		run.MarkFailed(entity.OptimizerErrInvalidInput, "schedule not found")
		_ = h.db.OptimizerRunRepository().Update(ctx, run)
		return nil, nil, nil, errRunHandled
	}
	staff, err := h.db.StaffRepository().GetAll(ctx)
	if err != nil {
		run.MarkFailed(entity.OptimizerErrInvalidInput, "staff roster unavailable")
		_ = h.db.OptimizerRunRepository().Update(ctx, run)
		return nil, nil, nil, errRunHandled
	}
	return run, schedule, staff, nil
}

// recordAudit persists an AuditLog entry for one optimizer round trip.
// Marshal failures or storage errors are logged but never fail the job
// the audit trail is describing.
func (h *Handlers) recordAudit(ctx context.Context, userID entity.StableId, action, resource string, oldValue, newValue interface{}, ip string) {
	oldJSON, err := json.Marshal(oldValue)
	if err != nil {
		h.log.Errorw("failed to marshal audit old value", "action", action, "error", err)
		return
	}
	newJSON, err := json.Marshal(newValue)
	if err != nil {
		h.log.Errorw("failed to marshal audit new value", "action", action, "error", err)
		return
	}

	entry := entity.NewAuditLog(userID, action, resource, string(oldJSON), string(newJSON), ip)
	if err := h.db.AuditLogRepository().Create(ctx, &entry); err != nil {
		h.log.Errorw("failed to record audit log", "action", action, "error", err)
	}
}

func dereferenceStaff(staff []*entity.Staff) []entity.Staff {
	out := make([]entity.Staff, len(staff))
	for i, s := range staff {
		out[i] = *s
	}
	return out
}

// classifyOptimizerError maps an error from Client.Generate/CheckFeasibility
// to the OptimizerRun's error fields. A *optimizerclient.OptimizerError
// carries the optimizer's own code; anything else is a transport failure,
// classified as TIMEOUT since that is the only transport-level code the
// optimizer's error taxonomy defines.
func classifyOptimizerError(err error) (entity.OptimizerErrorCode, string) {
	var optErr *optimizerclient.OptimizerError
	if errors.As(err, &optErr) {
		return entity.OptimizerErrorCode(optErr.Code), optErr.Message
	}
	return entity.OptimizerErrTimeout, err.Error()
}
