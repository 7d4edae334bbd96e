package feasibility

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/rotacheck/internal/constraint"
	"github.com/schedcu/rotacheck/internal/entity"
)

var checkerTestStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func disabledConfig() entity.ConstraintConfig {
	cfg := entity.DefaultConstraintConfig()
	for id := range cfg.EnabledConstraints {
		cfg.EnabledConstraints[id] = false
	}
	for id, params := range cfg.SoftConstraints {
		params.Enabled = false
		cfg.SoftConstraints[id] = params
	}
	// monthly-night's descriptor is registered with SeverityClassSoft, but
	// Enabled() gates it through EnabledConstraints (cleared above); its
	// SoftConstraints entry is cleared too and is not consulted.
	cfg.SoftConstraints[entity.SoftConstraintID(entity.ConstraintMonthlyNight)] = entity.SoftConstraintParams{Enabled: false}
	return cfg
}

func fullPeriodOff(staffID entity.StableId, start time.Time) []entity.ShiftAssignment {
	out := make([]entity.ShiftAssignment, entity.PeriodLength)
	for i := 0; i < entity.PeriodLength; i++ {
		out[i] = entity.ShiftAssignment{StaffID: staffID, Date: start.AddDate(0, 0, i), Shift: entity.ShiftOff}
	}
	return out
}

func TestChecker_Check_AllConstraintsDisabledYieldsFeasible(t *testing.T) {
	staffID := uuid.New()
	staff := []entity.Staff{{ID: staffID, Name: "Staff 0"}}
	sched := &entity.Schedule{
		ID:            uuid.New(),
		StartDate:     checkerTestStart,
		Assignments:   fullPeriodOff(staffID, checkerTestStart),
		StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{staffID: entity.Sunday},
	}

	ctx := constraint.NewContext(sched, staff, disabledConfig(), nil)
	checker := NewChecker(constraint.NewRegistry())

	result := checker.Check(ctx)
	assert.True(t, result.Feasible)
	assert.Empty(t, result.Violations)
	assert.Equal(t, "POSSIBLE", result.TopLineIndicator())
}

func TestChecker_Check_StampsConstraintMetadataOnViolation(t *testing.T) {
	staffID := uuid.New()
	staff := []entity.Staff{{ID: staffID, Name: "Staff 0"}}

	assignments := fullPeriodOff(staffID, checkerTestStart)
	// Work the staff member's configured juhu day (the first Sunday,
	// offset 6 from a Monday start), violating the juhu constraint.
	for i := range assignments {
		if assignments[i].Date.Equal(checkerTestStart.AddDate(0, 0, 6)) {
			assignments[i].Shift = entity.ShiftDay
		}
	}

	cfg := disabledConfig()
	cfg.EnabledConstraints[entity.ConstraintJuhu] = true

	sched := &entity.Schedule{
		ID:            uuid.New(),
		StartDate:     checkerTestStart,
		Assignments:   assignments,
		StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{staffID: entity.Sunday},
	}

	ctx := constraint.NewContext(sched, staff, cfg, nil)
	checker := NewChecker(constraint.NewRegistry())

	result := checker.Check(ctx)
	require.Len(t, result.Violations, 1)

	v := result.Violations[0]
	assert.Equal(t, string(entity.ConstraintJuhu), v.ConstraintID)
	assert.Equal(t, "Juhu (legal weekly off-day)", v.ConstraintName)
	assert.Equal(t, entity.SeverityError, v.Severity)
	assert.False(t, result.Feasible)
	assert.Equal(t, "IMPOSSIBLE", result.TopLineIndicator())
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 0, result.WarningCount())
}

func TestChecker_Check_SoftOnlyViolationsLeaveScheduleFeasible(t *testing.T) {
	staffID := uuid.New()
	staff := []entity.Staff{{ID: staffID, Name: "Staff 0"}}

	// All 28 days Off: exceeds SoftMaxPeriodOff's default max of 9, but
	// is not itself a hard-constraint violation.
	assignments := fullPeriodOff(staffID, checkerTestStart)

	cfg := disabledConfig()
	cfg.SoftConstraints[entity.SoftMaxPeriodOff] = entity.SoftConstraintParams{Enabled: true, MaxOff: 9}

	sched := &entity.Schedule{
		ID:            uuid.New(),
		StartDate:     checkerTestStart,
		Assignments:   assignments,
		StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{},
	}

	ctx := constraint.NewContext(sched, staff, cfg, nil)
	checker := NewChecker(constraint.NewRegistry())

	result := checker.Check(ctx)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, entity.SeverityWarning, result.Violations[0].Severity)
	assert.True(t, result.Feasible, "warning-only violations never flip feasibility")
}
