// Package optimizerclient talks to the external auto-generation/solver
// service over HTTP. It owns the wire DTOs, which are kept separate from
// internal/entity since the entity types carry no JSON tags and the wire
// shapes are independently versioned.
package optimizerclient

import (
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
)

// WireStaff is one entry in the request's staff roster.
type WireStaff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WireShiftAssignment is one cell of a schedule on the wire. Dates are
// YYYY-MM-DD strings, not RFC3339.
type WireShiftAssignment struct {
	StaffID string `json:"staffId"`
	Date    string `json:"date"`
	Shift   string `json:"shift"`
	Locked  bool   `json:"locked,omitempty"`
}

// WireStaffRange mirrors entity.StaffRange.
type WireStaffRange struct {
	Min int `json:"min"`
	Max int `json:"max,omitempty"`
}

// WireDailyStaffing mirrors entity.DailyStaffing.
type WireDailyStaffing struct {
	Day     WireStaffRange `json:"day"`
	Evening WireStaffRange `json:"evening"`
	Night   WireStaffRange `json:"night"`
}

// WireSoftConstraintParams mirrors entity.SoftConstraintParams, flattened
// to the wire's "enabled, ...params" shape.
type WireSoftConstraintParams struct {
	Enabled      bool `json:"enabled"`
	MaxDays      int  `json:"maxDays,omitempty"`
	MinBlockSize int  `json:"minBlockSize,omitempty"`
	MaxOff       int  `json:"maxOff,omitempty"`
}

// WireConstraintConfig is the request's "constraints" object.
type WireConstraintConfig struct {
	MaxConsecutiveNights  int                                 `json:"maxConsecutiveNights"`
	MonthlyNightsRequired int                                 `json:"monthlyNightsRequired"`
	WeeklyWorkHours       int                                 `json:"weeklyWorkHours"`
	WeekdayStaffing       WireDailyStaffing                   `json:"weekdayStaffing"`
	WeekendStaffing       WireDailyStaffing                   `json:"weekendStaffing"`
	ConstraintSeverity    map[string]string                   `json:"constraintSeverity,omitempty"`
	SoftConstraints       map[string]WireSoftConstraintParams `json:"softConstraints,omitempty"`
}

// GenerateRequest is the full /generate request body.
type GenerateRequest struct {
	Staff             []WireStaff            `json:"staff"`
	StartDate         string                 `json:"startDate"`
	Constraints       WireConstraintConfig   `json:"constraints"`
	PreviousPeriodEnd []WireShiftAssignment  `json:"previousPeriodEnd,omitempty"`
	LockedAssignments []WireShiftAssignment  `json:"lockedAssignments,omitempty"`
}

// CheckFeasibilityRequest is the /check-feasibility body: the same
// request minus the optimization-only fields.
type CheckFeasibilityRequest struct {
	Staff             []WireStaff           `json:"staff"`
	StartDate         string                `json:"startDate"`
	Constraints       WireConstraintConfig  `json:"constraints"`
	PreviousPeriodEnd []WireShiftAssignment `json:"previousPeriodEnd,omitempty"`
}

// WireStaffJuhuDay is one entry of the response's staffJuhuDays array.
type WireStaffJuhuDay struct {
	StaffID string `json:"staffId"`
	JuhuDay int    `json:"juhuDay"`
}

// OptimizerDiagnosis accompanies an INFEASIBLE error with actionable detail.
type OptimizerDiagnosis struct {
	ConflictingConstraints []string `json:"conflicting_constraints,omitempty"`
	ConflictingInputs       []string `json:"conflicting_inputs,omitempty"`
	Suggestions             []string `json:"suggestions,omitempty"`
}

// WireError is the response's "error" object.
type WireError struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Diagnosis *OptimizerDiagnosis `json:"diagnosis,omitempty"`
}

// GenerateResponse is the /generate response body.
type GenerateResponse struct {
	Success bool `json:"success"`
	Schedule *struct {
		Assignments []WireShiftAssignment `json:"assignments"`
	} `json:"schedule,omitempty"`
	StaffJuhuDays []WireStaffJuhuDay `json:"staffJuhuDays,omitempty"`
	Error         *WireError         `json:"error,omitempty"`
}

// FeasibilityAnalysis is the /check-feasibility response's "analysis" object.
type FeasibilityAnalysis struct {
	StaffCount      int `json:"staffCount"`
	WeekdayMinStaff int `json:"weekdayMinStaff"`
	WeekendMinStaff int `json:"weekendMinStaff"`
	OffDaysRequired int `json:"offDaysRequired"`
	WeeklyWorkHours int `json:"weeklyWorkHours"`
}

// CheckFeasibilityResponse is the /check-feasibility response body.
type CheckFeasibilityResponse struct {
	Feasible bool                 `json:"feasible"`
	Reasons  []string             `json:"reasons,omitempty"`
	Analysis *FeasibilityAnalysis `json:"analysis,omitempty"`
}

const wireDateLayout = "2006-01-02"

// DayOfWeekToWire converts entity.DayOfWeek to its wire int (0=Sunday,
// the same convention on both sides).
func DayOfWeekToWire(d entity.DayOfWeek) int {
	return int(d)
}

// WireToDayOfWeek is the inverse of DayOfWeekToWire.
func WireToDayOfWeek(v int) entity.DayOfWeek {
	return entity.DayOfWeek(v)
}

// ToWireStaff converts the engine's staff roster to wire DTOs.
func ToWireStaff(staff []entity.Staff) []WireStaff {
	out := make([]WireStaff, len(staff))
	for i, s := range staff {
		out[i] = WireStaff{ID: s.ID.String(), Name: s.Name}
	}
	return out
}

// ToWireAssignments converts a slice of entity.ShiftAssignment to wire DTOs.
func ToWireAssignments(assignments []entity.ShiftAssignment) []WireShiftAssignment {
	out := make([]WireShiftAssignment, len(assignments))
	for i, a := range assignments {
		out[i] = WireShiftAssignment{
			StaffID: a.StaffID.String(),
			Date:    a.Date.Format(wireDateLayout),
			Shift:   string(a.Shift),
			Locked:  a.Locked,
		}
	}
	return out
}

// FromWireAssignments converts wire DTOs back into entity.ShiftAssignment,
// parsing dates as UTC midnight. It returns an error if any date or shift
// value fails to parse/validate.
func FromWireAssignments(wire []WireShiftAssignment) ([]entity.ShiftAssignment, error) {
	out := make([]entity.ShiftAssignment, 0, len(wire))
	for _, w := range wire {
		date, err := time.Parse(wireDateLayout, w.Date)
		if err != nil {
			return nil, err
		}
		staffID, err := parseStableID(w.StaffID)
		if err != nil {
			return nil, err
		}
		if !entity.ValidateShiftType(w.Shift) {
			return nil, entity.ErrUnknownShiftType
		}
		out = append(out, entity.ShiftAssignment{
			StaffID: staffID,
			Date:    date.UTC(),
			Shift:   entity.ShiftType(w.Shift),
			Locked:  w.Locked,
		})
	}
	return out, nil
}

// ToWireStaffing converts entity.DailyStaffing to its wire shape.
func ToWireStaffing(d entity.DailyStaffing) WireDailyStaffing {
	return WireDailyStaffing{
		Day:     WireStaffRange{Min: d.Day.Min, Max: d.Day.Max},
		Evening: WireStaffRange{Min: d.Evening.Min, Max: d.Evening.Max},
		Night:   WireStaffRange{Min: d.Night.Min, Max: d.Night.Max},
	}
}

// ToWireConstraintConfig converts the engine's configuration into the
// wire's "constraints" object.
func ToWireConstraintConfig(cfg entity.ConstraintConfig) WireConstraintConfig {
	severity := make(map[string]string, len(cfg.ConstraintSeverity))
	for id, class := range cfg.ConstraintSeverity {
		severity[string(id)] = string(class)
	}
	soft := make(map[string]WireSoftConstraintParams, len(cfg.SoftConstraints))
	for id, params := range cfg.SoftConstraints {
		soft[string(id)] = WireSoftConstraintParams{
			Enabled:      params.Enabled,
			MaxDays:      params.MaxDays,
			MinBlockSize: params.MinBlockSize,
			MaxOff:       params.MaxOff,
		}
	}
	return WireConstraintConfig{
		MaxConsecutiveNights:  cfg.MaxConsecutiveNights,
		MonthlyNightsRequired: cfg.MonthlyNightsRequired,
		WeeklyWorkHours:       cfg.WeeklyWorkHours,
		WeekdayStaffing:       ToWireStaffing(cfg.WeekdayStaffing),
		WeekendStaffing:       ToWireStaffing(cfg.WeekendStaffing),
		ConstraintSeverity:    severity,
		SoftConstraints:       soft,
	}
}

func parseStableID(s string) (entity.StableId, error) {
	return uuid.Parse(s)
}

// ParseStableID parses a wire-format staff/schedule id back into an
// entity.StableId.
func ParseStableID(s string) (entity.StableId, error) {
	return uuid.Parse(s)
}

// FromWireStaffing is the inverse of ToWireStaffing.
func FromWireStaffing(wire WireDailyStaffing) entity.DailyStaffing {
	return entity.DailyStaffing{
		Day:     entity.StaffRange{Min: wire.Day.Min, Max: wire.Day.Max},
		Evening: entity.StaffRange{Min: wire.Evening.Min, Max: wire.Evening.Max},
		Night:   entity.StaffRange{Min: wire.Night.Min, Max: wire.Night.Max},
	}
}

// FromWireConstraintConfig is the inverse of ToWireConstraintConfig. It
// starts from entity.DefaultConstraintConfig(), so ConstraintSeverity and
// SoftConstraints entries the wire object omits keep their default values.
// The scalar and staffing fields are copied from the wire object as-is: one
// it omits reads as zero, not as its default.
func FromWireConstraintConfig(wire WireConstraintConfig) entity.ConstraintConfig {
	cfg := entity.DefaultConstraintConfig()
	cfg.MaxConsecutiveNights = wire.MaxConsecutiveNights
	cfg.MonthlyNightsRequired = wire.MonthlyNightsRequired
	cfg.WeeklyWorkHours = wire.WeeklyWorkHours
	cfg.WeekdayStaffing = FromWireStaffing(wire.WeekdayStaffing)
	cfg.WeekendStaffing = FromWireStaffing(wire.WeekendStaffing)

	for id, class := range wire.ConstraintSeverity {
		cfg.ConstraintSeverity[entity.HardConstraintID(id)] = entity.SeverityClass(class)
	}
	for id, params := range wire.SoftConstraints {
		cfg.SoftConstraints[entity.SoftConstraintID(id)] = entity.SoftConstraintParams{
			Enabled:      params.Enabled,
			MaxDays:      params.MaxDays,
			MinBlockSize: params.MinBlockSize,
			MaxOff:       params.MaxOff,
		}
	}
	return cfg
}
