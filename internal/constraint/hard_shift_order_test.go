package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/rotacheck/internal/entity"
)

func TestCheckShiftOrder_ForbidsNightToDay(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftNight, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckShiftOrder(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, staff[0].ID, *violations[0].Context.StaffID)
}

func TestCheckShiftOrder_ForbidsEveningToDay(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftEvening, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckShiftOrder(ctx)
	require.Len(t, violations, 1)
}

func TestCheckShiftOrder_AllowsDayToEvening(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftDay, entity.ShiftEvening, entity.ShiftNight)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 3))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	assert.Empty(t, CheckShiftOrder(ctx))
}

func TestCheckShiftOrder_CrossesPreviousPeriodBoundary(t *testing.T) {
	staff := newStaff(1)
	prevDay := testStart.AddDate(0, 0, -1)
	previous := []entity.ShiftAssignment{{StaffID: staff[0].ID, Date: prevDay, Shift: entity.ShiftNight}}

	assignments := fillOff(nil, staff[0].ID, testStart)
	// day 0 becomes Day, which follows a previous-period Night.
	for i := range assignments {
		if dateOnly(assignments[i].Date).Equal(dateOnly(testStart)) {
			assignments[i].Shift = entity.ShiftDay
		}
	}

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), previous)

	violations := CheckShiftOrder(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, dateOnly(testStart), *violations[0].Context.Date)
}
