package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// forbiddenTransitions are the three illegal day-to-day transitions:
// N→D, N→E, E→D. Off participates in none of them.
var forbiddenTransitions = map[entity.ShiftType]map[entity.ShiftType]bool{
	entity.ShiftNight: {
		entity.ShiftDay:     true,
		entity.ShiftEvening: true,
	},
	entity.ShiftEvening: {
		entity.ShiftDay: true,
	},
}

// CheckShiftOrder forbids N→D, N→E, and E→D transitions, checked both
// within the 28-day period and across the left boundary (last
// previous-period day into day 0).
func CheckShiftOrder(ctx *Context) []entity.Violation {
	var violations []entity.Violation

	for _, staff := range ctx.Staff {
		// Boundary: last previous-period day (-1) into day 0.
		if v, ok := checkTransition(ctx, staff, calendar.AddDays(ctx.Schedule.StartDate, -1), ctx.Schedule.StartDate); ok {
			violations = append(violations, v)
		}

		calendar.Iterate28Days(ctx.Schedule.StartDate, func(offset int, date time.Time) {
			if offset == entity.PeriodLength-1 {
				return
			}
			next := calendar.AddDays(date, 1)
			if v, ok := checkTransition(ctx, staff, date, next); ok {
				violations = append(violations, v)
			}
		})
	}
	return violations
}

func checkTransition(ctx *Context, staff entity.Staff, from, to time.Time) (entity.Violation, bool) {
	fromShift, fromOK := ctx.ShiftOnOrBefore(staff.ID, from)
	toShift, toOK := ctx.Index().ShiftOn(staff.ID, to)
	if !fromOK || !toOK {
		return entity.Violation{}, false
	}
	if !forbiddenTransitions[fromShift][toShift] {
		return entity.Violation{}, false
	}
	return entity.Violation{
		Message: fmt.Sprintf("%s: %s→%s transition on %s is not allowed", staff.Name, fromShift, toShift, to.Format("2006-01-02")),
		Context: entity.ViolationContext{
			StaffID:   &staff.ID,
			StaffName: staff.Name,
			Date:      &to,
		},
	}, true
}
