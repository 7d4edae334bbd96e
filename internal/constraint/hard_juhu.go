package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckJuhu requires each staff member be Off on their assigned juhu day
// (the legal weekly rest day) every week it occurs within the period.
// Staff with no juhu day configured are skipped. This constraint is
// immutable-error by default (DESIGN.md Open Question #2); EffectiveSeverity
// handles the JurisdictionConfigurableJuhu downgrade, not this check.
func CheckJuhu(ctx *Context) []entity.Violation {
	var violations []entity.Violation

	calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
		for _, staff := range ctx.Staff {
			juhuDay, ok := ctx.Schedule.StaffJuhuDays[staff.ID]
			if !ok {
				continue
			}
			if calendar.DayOfWeek(date) != juhuDay {
				continue
			}
			shift, assigned := ctx.Index().ShiftOn(staff.ID, date)
			if !assigned || shift == entity.ShiftOff {
				continue
			}
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: not off on juhu day %s", staff.Name, date.Format("2006-01-02")),
				Context: entity.ViolationContext{
					StaffID:   &staff.ID,
					StaffName: staff.Name,
					Date:      &date,
				},
			})
		}
	})
	return violations
}
