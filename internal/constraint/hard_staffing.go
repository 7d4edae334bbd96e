package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/shiftstats"
)

// CheckStaffing requires each date's D/E/N headcount to meet the
// weekday/weekend minimum from Config.WeekdayStaffing/WeekendStaffing.
// Gated globally on ScheduleCompleteness >= 0.5: a sparsely assigned
// schedule can't yet be judged understaffed.
func CheckStaffing(ctx *Context) []entity.Violation {
	if ctx.ScheduleCompleteness < 0.5 {
		return nil
	}

	var violations []entity.Violation

	calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
		required := ctx.Config.WeekdayStaffing
		if calendar.IsWeekend(date) {
			required = ctx.Config.WeekendStaffing
		}

		checkShift(ctx, date, entity.ShiftDay, required.Day, &violations)
		checkShift(ctx, date, entity.ShiftEvening, required.Evening, &violations)
		checkShift(ctx, date, entity.ShiftNight, required.Night, &violations)
	})
	return violations
}

func checkShift(ctx *Context, date time.Time, shift entity.ShiftType, req entity.StaffRange, violations *[]entity.Violation) {
	if req.Min <= 0 {
		return
	}
	count := shiftstats.StaffingCount(ctx.Index(), date, shift)
	if count >= req.Min {
		return
	}
	d := date
	*violations = append(*violations, entity.Violation{
		Message: fmt.Sprintf("%s shift on %s has %d staff, below minimum of %d", shift, date.Format("2006-01-02"), count, req.Min),
		Context: entity.ViolationContext{
			Date: &d,
		},
	})
}
