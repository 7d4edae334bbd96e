package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/exportimport"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
)

// ExportRequest is POST /api/export's body.
type ExportRequest struct {
	ScheduleID string `json:"scheduleId"`
}

// Export runs POST /api/export: builds the self-contained envelope from
// the current staff roster, the named schedule, the persisted
// configuration, and the previous period's boundary trail.
func (h *Handlers) Export(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", "invalid scheduleId"))
	}

	ctx := c.Request().Context()
	schedule, staff, err := h.loadScheduleAndStaff(ctx, scheduleID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}

	previousPeriod, err := h.db.ScheduleRepository().GetPreviousPeriodTrail(ctx, schedule.StartDate)
	if err != nil {
		h.log.Warnw("no previous-period trail available", "schedule_id", schedule.ID, "error", err)
	}

	cfg := h.loadConfig(ctx)
	env, err := exportimport.Export(dereferenceStaff(staff), schedule, cfg, previousPeriod, entity.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}

	return c.JSON(http.StatusOK, SuccessResponse(env))
}

// Import runs POST /api/import: decodes and validates an export envelope,
// then atomically replaces the engine's current staff roster, schedule,
// and configuration. Local state is left untouched if decoding or
// validation fails.
func (h *Handlers) Import(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}

	imported, err := exportimport.Import(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_INPUT", err.Error()))
	}

	ctx := c.Request().Context()
	tx, err := h.db.BeginTx(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
	}

	for i := range imported.Staff {
		if err := tx.StaffRepository().Create(ctx, &imported.Staff[i]); err != nil {
			_ = tx.Rollback()
			return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
		}
	}

	if imported.Schedule.ID == uuid.Nil {
		imported.Schedule.ID = uuid.New()
	}
	if err := tx.ScheduleRepository().Create(ctx, imported.Schedule); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("STORAGE_ERROR", err.Error()))
	}

	oldConfig := h.loadConfig(ctx)
	wireConfig := optimizerclient.ToWireConstraintConfig(imported.Config)
	if err := h.configStore.Put(configstore.KeyConfig, wireConfig); err != nil {
		h.log.Errorw("failed to persist imported config", "error", err)
	} else {
		h.recordAudit(ctx, currentUser, "IMPORT_CONFIG", "ConstraintConfig", oldConfig, imported.Config, c.RealIP())
	}

	return c.JSON(http.StatusOK, SuccessResponse(map[string]string{"scheduleId": imported.Schedule.ID.String()}))
}

// recordAudit persists an AuditLog entry for one config mutation. Marshal
// failures or storage errors are logged but never fail the request the
// audit trail is describing.
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
