package constraint

import (
	"fmt"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/shiftstats"
)

// CheckWeeklyOff requires each of the schedule's four weeks to give every
// staff member at least RequiredWeeklyOffDays() Off days. A week is only
// checked once its own completeness reaches 50% — a sparsely-assigned
// week can't yet be judged to have failed.
func CheckWeeklyOff(ctx *Context) []entity.Violation {
	var violations []entity.Violation
	required := ctx.Config.RequiredWeeklyOffDays()

	for w := 0; w < 4; w++ {
		weekDates := calendar.WeekBoundaries(ctx.Schedule.StartDate, w)

		for _, staff := range ctx.Staff {
			completeness := shiftstats.WeekCompleteness(ctx.Index(), staff.ID, weekDates)
			if completeness < 0.5 {
				continue
			}

			offCount := 0
			for _, d := range weekDates {
				if shift, ok := ctx.Index().ShiftOn(staff.ID, d); ok && shift == entity.ShiftOff {
					offCount++
				}
			}
			if offCount >= required {
				continue
			}

			weekStart := weekDates[0]
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: only %d off days in week of %s (requires %d)",
					staff.Name, offCount, weekStart.Format("2006-01-02"), required),
				Context: entity.ViolationContext{
					StaffID:   &staff.ID,
					StaffName: staff.Name,
					Date:      &weekStart,
					Dates:     weekDates,
				},
			})
		}
	}
	return violations
}
