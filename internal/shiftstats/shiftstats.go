// Package shiftstats computes the per-staff, per-date, and per-week
// aggregates the constraint engine needs: shift counts, staffing counts,
// and completeness ratios, via a single group-and-count pass over the
// assignment list, generalized to the broader set of aggregates this
// domain's constraints consult.
package shiftstats

import (
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// AssignmentIndex is a precomputed (staffID, date) → shift lookup, built
// once per evaluation and shared across constraints instead of each one
// re-scanning the assignment list — a correctness-preserving,
// performance-only decision.
type AssignmentIndex struct {
	byStaffDate map[indexKey]entity.ShiftType
	byStaff     map[entity.StableId][]entity.ShiftAssignment
	byDate      map[time.Time][]entity.ShiftAssignment
}

type indexKey struct {
	staffID entity.StableId
	date    time.Time
}

// BuildIndex constructs an AssignmentIndex over a schedule's assignments.
func BuildIndex(assignments []entity.ShiftAssignment) *AssignmentIndex {
	idx := &AssignmentIndex{
		byStaffDate: make(map[indexKey]entity.ShiftType, len(assignments)),
		byStaff:     make(map[entity.StableId][]entity.ShiftAssignment),
		byDate:      make(map[time.Time][]entity.ShiftAssignment),
	}
	for _, a := range assignments {
		d := calendar.DateOnly(a.Date)
		idx.byStaffDate[indexKey{a.StaffID, d}] = a.Shift
		idx.byStaff[a.StaffID] = append(idx.byStaff[a.StaffID], a)
		idx.byDate[d] = append(idx.byDate[d], a)
	}
	return idx
}

// ShiftOn returns the shift assigned to staffID on date, and whether any
// assignment exists for that cell.
func (idx *AssignmentIndex) ShiftOn(staffID entity.StableId, date time.Time) (entity.ShiftType, bool) {
	s, ok := idx.byStaffDate[indexKey{staffID, calendar.DateOnly(date)}]
	return s, ok
}

// ForStaff returns all assignments for one staff member.
func (idx *AssignmentIndex) ForStaff(staffID entity.StableId) []entity.ShiftAssignment {
	return idx.byStaff[staffID]
}

// ForDate returns all assignments on one date, across all staff.
func (idx *AssignmentIndex) ForDate(date time.Time) []entity.ShiftAssignment {
	return idx.byDate[calendar.DateOnly(date)]
}

// Completeness returns |assignments| / (|staff| × 28), the schedule's
// overall completeness ratio. Returns 0 if staffCount is 0.
func Completeness(assignmentCount, staffCount int) float64 {
	denom := staffCount * entity.PeriodLength
	if denom == 0 {
		return 0
	}
	return float64(assignmentCount) / float64(denom)
}

// WeekCompleteness returns the in-week completeness ratio
// (assignments-in-week / 7) gating the weekly-off constraint.
func WeekCompleteness(idx *AssignmentIndex, staffID entity.StableId, weekDates []time.Time) float64 {
	count := 0
	for _, d := range weekDates {
		if _, ok := idx.ShiftOn(staffID, d); ok {
			count++
		}
	}
	return float64(count) / float64(len(weekDates))
}

// StaffingCount counts assignments of shift type s on date across all staff.
func StaffingCount(idx *AssignmentIndex, date time.Time, s entity.ShiftType) int {
	n := 0
	for _, a := range idx.ForDate(date) {
		if a.Shift == s {
			n++
		}
	}
	return n
}

// NightCount counts Night-shift assignments for one staff member across
// the full set of assignments passed in (typically the 28-day period).
func NightCount(assignments []entity.ShiftAssignment) int {
	n := 0
	for _, a := range assignments {
		if a.Shift == entity.ShiftNight {
			n++
		}
	}
	return n
}

// OffDates returns the dates of the Off assignments within assignments, in
// the order they appear there. It does not filter by staff member.
func OffDates(assignments []entity.ShiftAssignment) []time.Time {
	var dates []time.Time
	for _, a := range assignments {
		if a.Shift == entity.ShiftOff {
			dates = append(dates, a.Date)
		}
	}
	return dates
}
