package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckPostRestDayShift warns on an Off-then-N transition, checked across
// the left boundary too.
func CheckPostRestDayShift(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftPostRestDayShift]
	if !params.Enabled {
		return nil
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		if v, ok := checkOffNTransition(ctx, staff, calendar.AddDays(ctx.Schedule.StartDate, -1), ctx.Schedule.StartDate); ok {
			violations = append(violations, v)
		}
		calendar.Iterate28Days(ctx.Schedule.StartDate, func(offset int, date time.Time) {
			if offset == entity.PeriodLength-1 {
				return
			}
			next := calendar.AddDays(date, 1)
			if v, ok := checkOffNTransition(ctx, staff, date, next); ok {
				violations = append(violations, v)
			}
		})
	}
	return violations
}

func checkOffNTransition(ctx *Context, staff entity.Staff, from, to time.Time) (entity.Violation, bool) {
	fromShift, fromOK := ctx.ShiftOnOrBefore(staff.ID, from)
	toShift, toOK := ctx.Index().ShiftOn(staff.ID, to)
	if !fromOK || !toOK {
		return entity.Violation{}, false
	}
	if fromShift != entity.ShiftOff || toShift != entity.ShiftNight {
		return entity.Violation{}, false
	}
	return entity.Violation{
		Message: fmt.Sprintf("%s: Off→Night transition on %s", staff.Name, to.Format("2006-01-02")),
		Context: entity.ViolationContext{
			StaffID:   &staff.ID,
			StaffName: staff.Name,
			Date:      &to,
		},
	}, true
}
