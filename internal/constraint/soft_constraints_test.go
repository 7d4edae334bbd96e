package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

func TestCheckMaxConsecutiveWork_FlagsOverrun(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart,
		entity.ShiftDay, entity.ShiftDay, entity.ShiftDay, entity.ShiftDay,
		entity.ShiftDay, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 6))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckMaxConsecutiveWork(ctx)
	require.Len(t, violations, 1)
}

func TestCheckMaxConsecutiveWork_DisabledProducesNoViolation(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart,
		entity.ShiftDay, entity.ShiftDay, entity.ShiftDay, entity.ShiftDay,
		entity.ShiftDay, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 6))

	cfg := entity.DefaultConstraintConfig()
	cfg.SoftConstraints[entity.SoftMaxConsecutiveWork] = entity.SoftConstraintParams{Enabled: false}

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, cfg, nil)

	assert.Empty(t, CheckMaxConsecutiveWork(ctx))
}

func TestCheckNightBlockPolicy_FlagsIsolatedNight(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftOff, entity.ShiftNight, entity.ShiftOff)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 3))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckNightBlockPolicy(ctx)
	require.Len(t, violations, 1)
}

func TestCheckNightBlockPolicy_PairedNightsProduceNoViolation(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftNight, entity.ShiftNight)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	assert.Empty(t, CheckNightBlockPolicy(ctx))
}

func TestCheckMaxPeriodOff_FlagsTooManyOffDays(t *testing.T) {
	staff := newStaff(1)
	assignments := fillOff(nil, staff[0].ID, testStart) // all 28 days Off

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckMaxPeriodOff(ctx)
	require.Len(t, violations, 1)
	assert.Len(t, violations[0].Context.Dates, 28)
}

func TestCheckMaxConsecutiveOff_FlagsOverrun(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftOff, entity.ShiftOff, entity.ShiftOff)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 3))
	for i := range assignments {
		if dateOnly(assignments[i].Date).Equal(dateOnly(testStart.AddDate(0, 0, 3))) {
			assignments[i].Shift = entity.ShiftDay
		}
	}

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	// Default maxDays is 2 and one violation fires per day beyond it: the
	// Off run on days 0-2 fires on day 2, and the Off run on days 4-27
	// fires on each of days 6-27 (22 more).
	violations := CheckMaxConsecutiveOff(ctx)
	require.Len(t, violations, 23)
}

func TestCheckGradualShiftProgression_FlagsDayToNight(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftDay, entity.ShiftNight)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckGradualShiftProgression(ctx)
	require.Len(t, violations, 1)
}

func TestCheckGradualShiftProgression_AllowsDayToEvening(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftDay, entity.ShiftEvening)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	assert.Empty(t, CheckGradualShiftProgression(ctx))
}

func TestCheckMaxSameShiftConsecutive_FlagsFifthDay(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart,
		entity.ShiftDay, entity.ShiftDay, entity.ShiftDay, entity.ShiftDay, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 5))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckMaxSameShiftConsecutive(ctx)
	require.Len(t, violations, 1)
}

func TestCheckMaxSameShiftConsecutive_TracksEachShiftTypeIndependently(t *testing.T) {
	staff := newStaff(1)
	// Four D then four E: neither streak alone reaches 5.
	assignments := assignRun(staff[0].ID, testStart,
		entity.ShiftDay, entity.ShiftDay, entity.ShiftDay, entity.ShiftDay,
		entity.ShiftEvening, entity.ShiftEvening, entity.ShiftEvening, entity.ShiftEvening)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 8))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	assert.Empty(t, CheckMaxSameShiftConsecutive(ctx))
}

func TestCheckRestClustering_FlagsIsolatedOffDay(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftDay, entity.ShiftOff, entity.ShiftDay)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 3))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckRestClustering(ctx)
	require.Len(t, violations, 1)
}

func TestCheckPostRestDayShift_FlagsOffToNight(t *testing.T) {
	staff := newStaff(1)
	assignments := assignRun(staff[0].ID, testStart, entity.ShiftOff, entity.ShiftNight)
	assignments = fillOff(assignments, staff[0].ID, testStart.AddDate(0, 0, 2))

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckPostRestDayShift(ctx)
	require.Len(t, violations, 1)
}

func TestCheckWeekendFairness_FlagsOutlier(t *testing.T) {
	staff := newStaff(3)
	var assignments []entity.ShiftAssignment
	for i := 0; i < entity.PeriodLength; i++ {
		d := testStart.AddDate(0, 0, i)
		shift := entity.ShiftOff
		if calendar.IsWeekend(d) {
			// staff[0] works every weekend day; the other two never do.
			assignments = append(assignments, entity.ShiftAssignment{StaffID: staff[0].ID, Date: d, Shift: entity.ShiftDay})
		}
		assignments = append(assignments,
			entity.ShiftAssignment{StaffID: staff[1].ID, Date: d, Shift: shift},
			entity.ShiftAssignment{StaffID: staff[2].ID, Date: d, Shift: shift},
		)
	}

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckWeekendFairness(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, staff[0].ID, *violations[0].Context.StaffID)
}

func TestCheckShiftContinuity_FlagsExcessiveChanges(t *testing.T) {
	staff := newStaff(1)
	shifts := make([]entity.ShiftType, 0, entity.PeriodLength)
	for i := 0; i < entity.PeriodLength; i++ {
		if i%2 == 0 {
			shifts = append(shifts, entity.ShiftDay)
		} else {
			shifts = append(shifts, entity.ShiftEvening)
		}
	}
	assignments := assignRun(staff[0].ID, testStart, shifts...)

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	violations := CheckShiftContinuity(ctx)
	require.Len(t, violations, 1)
}

func TestCheckShiftContinuity_StableScheduleProducesNoViolation(t *testing.T) {
	staff := newStaff(1)
	var assignments []entity.ShiftAssignment
	for i := 0; i < entity.PeriodLength; i++ {
		assignments = append(assignments, entity.ShiftAssignment{
			StaffID: staff[0].ID, Date: testStart.AddDate(0, 0, i), Shift: entity.ShiftDay,
		})
	}

	sched := newTestSchedule(staff[0].ID, assignments)
	ctx := NewContext(sched, staff, entity.DefaultConstraintConfig(), nil)

	assert.Empty(t, CheckShiftContinuity(ctx))
}
