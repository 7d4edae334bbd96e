package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hibiken/asynq"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/configvalidator"
	"github.com/schedcu/rotacheck/internal/constraint"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/feasibility"
	"github.com/schedcu/rotacheck/internal/impact"
	"github.com/schedcu/rotacheck/internal/logger"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
	"github.com/schedcu/rotacheck/internal/repository"

	"go.uber.org/zap"
)

// Enqueuer is the slice of job.Scheduler's behavior the HTTP layer needs:
// starting a /generate or /check-feasibility round trip. Kept as an
// interface (rather than a concrete *job.Scheduler field) so tests can
// substitute a fake and avoid depending on a live Redis connection.
type Enqueuer interface {
	EnqueueGenerate(ctx context.Context, runID, scheduleID entity.StableId) (*asynq.TaskInfo, error)
	EnqueueCheckFeasibility(ctx context.Context, runID, scheduleID entity.StableId) (*asynq.TaskInfo, error)
}

// Handlers holds every collaborator the HTTP surface needs: the
// repository layer, the persisted config store, the optimizer job queue,
// and the feasibility checker.
type Handlers struct {
	db          repository.Database
	configStore *configstore.Store
	scheduler   Enqueuer
	checker     *feasibility.Checker
	log         *zap.SugaredLogger
}

// NewHandlers builds a Handlers.
func NewHandlers(db repository.Database, store *configstore.Store, scheduler Enqueuer, log *zap.SugaredLogger) *Handlers {
	return &Handlers{
		db:          db,
		configStore: store,
		scheduler:   scheduler,
		checker:     feasibility.NewChecker(constraint.NewRegistry()),
		log:         log,
	}
}

func (h *Handlers) loadConfig(ctx context.Context) entity.ConstraintConfig {
	var wire optimizerclient.WireConstraintConfig
	defaults := optimizerclient.ToWireConstraintConfig(entity.DefaultConstraintConfig())
	if err := h.configStore.Get(configstore.KeyConfig, defaults, &wire); err != nil {
		logger.LogStorageDegraded(h.log, "configstore.Get(KeyConfig)", err)
		return entity.DefaultConstraintConfig()
	}
	return optimizerclient.FromWireConstraintConfig(wire)
}

func (h *Handlers) loadScheduleAndStaff(ctx context.Context, id entity.StableId) (*entity.Schedule, []*entity.Staff, error) {
	schedule, err := h.db.ScheduleRepository().GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	staff, err := h.db.StaffRepository().GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return schedule, staff, nil
}

func dereferenceStaff(staff []*entity.Staff) []entity.Staff {
	out := make([]entity.Staff, len(staff))
	for i, s := range staff {
		out[i] = *s
	}
	return out
}

func parseIDParam(c echo.Context, name string) (entity.StableId, error) {
	return uuid.Parse(c.Param(name))
}

// Health reports liveness and the repository layer's own health check.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.db.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponseWithCode("STORAGE_DEGRADED", err.Error()))
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]string{"status": "ok"}))
}

// CheckFeasibilityNow runs POST /api/schedules/:id/feasibility: the
// synchronous, in-process feasibility evaluation, distinct from the
// asynchronous /check-feasibility round trip to the external optimizer
// that CheckFeasibility below enqueues.
func (h *Handlers) CheckFeasibilityNow(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid schedule id"))
	}

	ctx := c.Request().Context()
	schedule, staff, err := h.loadScheduleAndStaff(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}

	previousPeriod, err := h.db.ScheduleRepository().GetPreviousPeriodTrail(ctx, schedule.StartDate)
	if err != nil {
		h.log.Warnw("no previous-period trail available", "schedule_id", schedule.ID, "error", err)
	}

	cfg := h.loadConfig(ctx)
	evalCtx := constraint.NewContext(schedule, dereferenceStaff(staff), cfg, previousPeriod)
	result := h.checker.Check(evalCtx)

	return c.JSON(http.StatusOK, SuccessResponse(result))
}

// ImpactRequest is POST /api/schedules/:id/impact's body.
type ImpactRequest struct {
	StaffID string `json:"staffId"`
	Date    string `json:"date"`
}

// ImpactCellResponse is one entry of the impact response's flattened map.
type ImpactCellResponse struct {
	StaffID string `json:"staffId"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`
}

// Impact runs POST /api/schedules/:id/impact: which other cells are
// affected by editing the given (staffId, date) cell.
func (h *Handlers) Impact(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid schedule id"))
	}

	var req ImpactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid staffId"))
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid date"))
	}

	ctx := c.Request().Context()
	schedule, staff, err := h.loadScheduleAndStaff(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}

	records := impact.Calculate(schedule, dereferenceStaff(staff), staffID, date)
	folded := impact.Fold(records)

	out := make([]ImpactCellResponse, 0, len(folded))
	for key, reason := range folded {
		out = append(out, ImpactCellResponse{
			StaffID: key.StaffID.String(),
			Date:    calendar.DateOnly(key.Date).Format("2006-01-02"),
			Reason:  string(reason),
		})
	}

	return c.JSON(http.StatusOK, SuccessResponse(out))
}

// ValidateConfigRequest is POST /api/config/validate's body.
type ValidateConfigRequest struct {
	Config     optimizerclient.WireConstraintConfig `json:"config"`
	StaffCount *int                                 `json:"staffCount,omitempty"`
}

// ValidateConfig runs POST /api/config/validate: the config sanity
// pre-check, advisory and never blocking.
func (h *Handlers) ValidateConfig(c echo.Context) error {
	var req ValidateConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}

	ctx := c.Request().Context()
	staffCount := 0
	if req.StaffCount != nil {
		staffCount = *req.StaffCount
	} else if n, err := h.db.StaffRepository().Count(ctx); err == nil {
		staffCount = int(n)
	}

	cfg := optimizerclient.FromWireConstraintConfig(req.Config)
	result := configvalidator.Validate(staffCount, cfg)

	return c.JSON(http.StatusOK, SuccessResponseWithValidation(nil, result))
}

// OptimizerRunResponse is the handle returned by the two enqueue endpoints
// and by GET /api/optimizer-runs/:id.
type OptimizerRunResponse struct {
	ID             string  `json:"id"`
	ScheduleID     string  `json:"scheduleId"`
	Kind           string  `json:"kind"`
	State          string  `json:"state"`
	ErrorCode      string  `json:"errorCode,omitempty"`
	ErrorMessage   *string `json:"errorMessage,omitempty"`
	ViolationCount int     `json:"violationCount,omitempty"`
}

func toOptimizerRunResponse(run *entity.OptimizerRun) OptimizerRunResponse {
	return OptimizerRunResponse{
		ID:             run.ID.String(),
		ScheduleID:     run.ScheduleID.String(),
		Kind:           string(run.Kind),
		State:          string(run.State),
		ErrorCode:      string(run.ErrorCode),
		ErrorMessage:   run.ErrorMessage,
		ViolationCount: run.ViolationCount,
	}
}

// currentUser is a placeholder CreatedBy until authentication lands.
var currentUser = uuid.Nil

// Generate runs POST /api/schedules/:id/generate: creates a PENDING
// OptimizerRun, enqueues the /generate round trip, and returns the run
// handle immediately rather than blocking the request on the solver.
func (h *Handlers) Generate(c echo.Context) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid schedule id"))
	}
	ctx := c.Request().Context()
	if _, err := h.db.ScheduleRepository().GetByID(ctx, scheduleID); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}

	run := entity.NewOptimizerRun(scheduleID, currentUser, entity.OptimizerRunGenerate)
	if err := h.db.OptimizerRunRepository().Create(ctx, run); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
	}
	if _, err := h.scheduler.EnqueueGenerate(ctx, run.ID, scheduleID); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("QUEUE_ERROR", err.Error()))
	}

	return c.JSON(http.StatusAccepted, SuccessResponse(toOptimizerRunResponse(run)))
}

// CheckFeasibility runs POST /api/schedules/:id/check-feasibility: enqueues
// the external-optimizer pre-check, as distinct from the synchronous
// CheckFeasibilityNow above.
func (h *Handlers) CheckFeasibility(c echo.Context) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid schedule id"))
	}
	ctx := c.Request().Context()
	if _, err := h.db.ScheduleRepository().GetByID(ctx, scheduleID); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}

	run := entity.NewOptimizerRun(scheduleID, currentUser, entity.OptimizerRunCheckFeasibility)
	if err := h.db.OptimizerRunRepository().Create(ctx, run); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
	}
	if _, err := h.scheduler.EnqueueCheckFeasibility(ctx, run.ID, scheduleID); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("QUEUE_ERROR", err.Error()))
	}

	return c.JSON(http.StatusAccepted, SuccessResponse(toOptimizerRunResponse(run)))
}

// GetOptimizerRun runs GET /api/optimizer-runs/:id: polls a run's state,
// the only way a caller observes the outcome of the two async endpoints
// above.
func (h *Handlers) GetOptimizerRun(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid run id"))
	}
	run, err := h.db.OptimizerRunRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}
	return c.JSON(http.StatusOK, SuccessResponse(toOptimizerRunResponse(run)))
}
