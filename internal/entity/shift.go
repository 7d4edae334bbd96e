// Package entity holds the pure data types the constraint engine operates
// on: staff, assignments, schedules, configuration, and the violations the
// engine produces. Nothing in this package performs I/O.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// StableId is the identifier type shared by every entity in this package.
type StableId = uuid.UUID

// DayOfWeek follows the 0=Sunday convention used throughout the wire
// protocol.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Now returns the current instant truncated to UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// ShiftType is one of the four shift states a cell can hold.
type ShiftType string

const (
	ShiftDay      ShiftType = "D"
	ShiftEvening  ShiftType = "E"
	ShiftNight    ShiftType = "N"
	ShiftOff      ShiftType = "Off"
)

// IsWork reports whether the shift represents a worked day (i.e. not Off).
func (s ShiftType) IsWork() bool {
	return s != ShiftOff
}

// Valid reports whether s is one of the four known shift states.
func (s ShiftType) Valid() bool {
	switch s {
	case ShiftDay, ShiftEvening, ShiftNight, ShiftOff:
		return true
	default:
		return false
	}
}

// Staff is a rostered employee. A juhu (weekly legal off-day) is attached
// externally via Schedule.StaffJuhuDays, not owned here.
type Staff struct {
	ID   StableId
	Name string
}

// ShiftAssignment binds one staff member to one shift on one date. Locked
// marks a cell the auto-generator must preserve across a regeneration.
type ShiftAssignment struct {
	StaffID StableId
	Date    time.Time
	Shift   ShiftType
	Locked  bool
}

// Schedule is a 28-day rotating roster. Assignments need not be dense —
// every assignment's Date must lie in [StartDate, StartDate+28) but not
// every cell in that window need be present.
type Schedule struct {
	ID            StableId
	Name          string
	StartDate     time.Time
	Assignments   []ShiftAssignment
	StaffJuhuDays map[StableId]DayOfWeek
}

// PeriodLength is the fixed length, in days, of a schedule window.
const PeriodLength = 28

// EndDateExclusive returns StartDate+28, the exclusive upper bound of the
// schedule's date window.
func (s *Schedule) EndDateExclusive() time.Time {
	return s.StartDate.AddDate(0, 0, PeriodLength)
}

// Contains reports whether date lies in [StartDate, StartDate+28).
func (s *Schedule) Contains(date time.Time) bool {
	d := dateOnly(date)
	start := dateOnly(s.StartDate)
	end := start.AddDate(0, 0, PeriodLength)
	return !d.Before(start) && d.Before(end)
}

// DayOffset returns the zero-based offset of date within the schedule
// window (may be negative or >= PeriodLength for out-of-window dates).
func (s *Schedule) DayOffset(date time.Time) int {
	start := dateOnly(s.StartDate)
	d := dateOnly(date)
	return int(d.Sub(start).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StaffRange defines a min/max headcount requirement for one shift type on
// one class of day (weekday or weekend).
type StaffRange struct {
	Min int
	Max int
}

// DailyStaffing is the required headcount per shift type for one class of
// day. Two instances exist in ConstraintConfig: weekday and weekend.
type DailyStaffing struct {
	Day     StaffRange
	Evening StaffRange
	Night   StaffRange
}

// HardConstraintID identifies one of the seven hard constraints.
type HardConstraintID string

const (
	ConstraintShiftOrder       HardConstraintID = "shift-order"
	ConstraintNightOffDay      HardConstraintID = "night-off-day"
	ConstraintConsecutiveNight HardConstraintID = "consecutive-night"
	ConstraintWeeklyOff        HardConstraintID = "weekly-off"
	ConstraintJuhu             HardConstraintID = "juhu"
	ConstraintStaffing         HardConstraintID = "staffing"
	ConstraintMonthlyNight     HardConstraintID = "monthly-night"
)

// SoftConstraintID identifies one of the ten soft (tier-weighted) constraints.
type SoftConstraintID string

const (
	SoftMaxConsecutiveWork     SoftConstraintID = "max-consecutive-work"
	SoftNightBlockPolicy       SoftConstraintID = "night-block-policy"
	SoftMaxPeriodOff           SoftConstraintID = "max-period-off"
	SoftMaxConsecutiveOff      SoftConstraintID = "max-consecutive-off"
	SoftGradualShiftProgression SoftConstraintID = "gradual-shift-progression"
	SoftMaxSameShiftConsecutive SoftConstraintID = "max-same-shift-consecutive"
	SoftRestClustering         SoftConstraintID = "rest-clustering"
	SoftPostRestDayShift       SoftConstraintID = "post-rest-day-shift"
	SoftWeekendFairness        SoftConstraintID = "weekend-fairness"
	SoftShiftContinuity        SoftConstraintID = "shift-continuity"
)

// SeverityClass is a constraint's natural (undowngraded) severity kind.
type SeverityClass string

const (
	SeverityClassHard SeverityClass = "hard"
	SeverityClassSoft SeverityClass = "soft"
)

// Severity is the effective severity carried on an emitted Violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// JurisdictionProfile selects whether juhu's immutability rule applies.
// See DESIGN.md Open Question #2.
type JurisdictionProfile string

const (
	JurisdictionDefault             JurisdictionProfile = "default"
	JurisdictionConfigurableJuhu    JurisdictionProfile = "configurable-juhu"
)

// SoftConstraintParams carries constraint-specific tuning knobs. Only the
// fields relevant to a given constraint are consulted; zero values fall
// back to each constraint's own documented default.
type SoftConstraintParams struct {
	Enabled       bool
	MaxDays       int // maxConsecutiveWork, maxConsecutiveOff
	MinBlockSize  int // nightBlockPolicy (informational)
	MaxOff        int // maxPeriodOff
}

// SoftConstraintConfig maps a soft-constraint id to its parameters.
type SoftConstraintConfig map[SoftConstraintID]SoftConstraintParams

// ConstraintConfig is the process-lifetime, versioned configuration that
// parameterizes every constraint check.
type ConstraintConfig struct {
	WeeklyWorkHours        int
	MaxConsecutiveNights   int
	MonthlyNightsRequired  int
	WeekdayStaffing        DailyStaffing
	WeekendStaffing        DailyStaffing
	EnabledConstraints     map[HardConstraintID]bool
	ConstraintSeverity     map[HardConstraintID]SeverityClass
	SoftConstraints        SoftConstraintConfig
	JurisdictionProfile    JurisdictionProfile
}

// DefaultConstraintConfig returns a config with every constraint enabled,
// hard constraints at their natural severity, and the documented
// soft-constraint defaults.
func DefaultConstraintConfig() ConstraintConfig {
	return ConstraintConfig{
		WeeklyWorkHours:       40,
		MaxConsecutiveNights:  4,
		MonthlyNightsRequired: 7,
		EnabledConstraints: map[HardConstraintID]bool{
			ConstraintShiftOrder:       true,
			ConstraintNightOffDay:      true,
			ConstraintConsecutiveNight: true,
			ConstraintWeeklyOff:        true,
			ConstraintJuhu:             true,
			ConstraintStaffing:         true,
			ConstraintMonthlyNight:     true,
		},
		ConstraintSeverity: map[HardConstraintID]SeverityClass{
			ConstraintShiftOrder:       SeverityClassHard,
			ConstraintNightOffDay:      SeverityClassHard,
			ConstraintConsecutiveNight: SeverityClassHard,
			ConstraintWeeklyOff:        SeverityClassHard,
			ConstraintJuhu:             SeverityClassHard,
			ConstraintStaffing:         SeverityClassHard,
			ConstraintMonthlyNight:     SeverityClassSoft,
		},
		SoftConstraints: SoftConstraintConfig{
			SoftMaxConsecutiveWork:      {Enabled: true, MaxDays: 5},
			SoftNightBlockPolicy:        {Enabled: true, MinBlockSize: 2},
			SoftMaxPeriodOff:            {Enabled: true, MaxOff: 9},
			SoftMaxConsecutiveOff:       {Enabled: true, MaxDays: 2},
			SoftGradualShiftProgression: {Enabled: true},
			SoftMaxSameShiftConsecutive: {Enabled: true},
			SoftRestClustering:          {Enabled: true},
			SoftPostRestDayShift:        {Enabled: true},
			SoftWeekendFairness:         {Enabled: true},
			SoftShiftContinuity:         {Enabled: true},
		},
		JurisdictionProfile: JurisdictionDefault,
	}
}

// RequiredWeeklyOffDays derives the minimum number of Off days a staff
// member must have in a week: 7 − ⌈weeklyWorkHours/8⌉.
func (c *ConstraintConfig) RequiredWeeklyOffDays() int {
	workDays := (c.WeeklyWorkHours + 7) / 8 // ceil(weeklyWorkHours/8)
	required := 7 - workDays
	if required < 0 {
		return 0
	}
	return required
}

// Tier is a soft constraint's priority class used by the downstream
// optimizer to scale penalties. 1 is highest priority.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

// TierWeight returns the fixed penalty multiplier for a tier.
func TierWeight(t Tier) int {
	switch t {
	case Tier1:
		return 1000
	case Tier2:
		return 100
	case Tier3:
		return 10
	default:
		return 0
	}
}
