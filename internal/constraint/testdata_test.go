package constraint

import (
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
)

// newStaff returns n staff members with stable, readable names for
// assertions ("Staff 0", "Staff 1", ...).
func newStaff(n int) []entity.Staff {
	staff := make([]entity.Staff, n)
	for i := range staff {
		staff[i] = entity.Staff{ID: uuid.New(), Name: staffName(i)}
	}
	return staff
}

func staffName(i int) string {
	return []string{"Staff 0", "Staff 1", "Staff 2", "Staff 3", "Staff 4", "Staff 5"}[i]
}

// assignRun builds assignments for one staff member starting at startDate,
// one entry per element of shifts, in order.
func assignRun(staffID entity.StableId, startDate time.Time, shifts ...entity.ShiftType) []entity.ShiftAssignment {
	out := make([]entity.ShiftAssignment, len(shifts))
	for i, s := range shifts {
		out[i] = entity.ShiftAssignment{StaffID: staffID, Date: startDate.AddDate(0, 0, i), Shift: s}
	}
	return out
}

// fillOff pads assignments for staffID across the full 28-day period
// starting at start, defaulting every day not already present to Off.
func fillOff(existing []entity.ShiftAssignment, staffID entity.StableId, start time.Time) []entity.ShiftAssignment {
	present := make(map[time.Time]bool, len(existing))
	for _, a := range existing {
		present[dateOnly(a.Date)] = true
	}
	out := append([]entity.ShiftAssignment{}, existing...)
	for i := 0; i < entity.PeriodLength; i++ {
		d := dateOnly(start.AddDate(0, 0, i))
		if !present[d] {
			out = append(out, entity.ShiftAssignment{StaffID: staffID, Date: d, Shift: entity.ShiftOff})
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// testStart is a fixed Monday so week/weekend arithmetic in tests is
// deterministic.
var testStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func newTestSchedule(staffID entity.StableId, assignments []entity.ShiftAssignment) *entity.Schedule {
	return &entity.Schedule{
		ID:            uuid.New(),
		Name:          "test",
		StartDate:     testStart,
		Assignments:   assignments,
		StaffJuhuDays: map[entity.StableId]entity.DayOfWeek{},
	}
}
