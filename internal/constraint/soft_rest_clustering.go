package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckRestClustering warns on an isolated Off day: neither neighbor
// (-1, +1) is also Off.
func CheckRestClustering(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftRestClustering]
	if !params.Enabled {
		return nil
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
			shift, ok := ctx.Index().ShiftOn(staff.ID, date)
			if !ok || shift != entity.ShiftOff {
				return
			}
			prev, prevOK := mergedNeighbor(ctx, staff.ID, calendar.AddDays(date, -1))
			next, nextOK := mergedNeighbor(ctx, staff.ID, calendar.AddDays(date, 1))
			if prevOK && prev == entity.ShiftOff {
				return
			}
			if nextOK && next == entity.ShiftOff {
				return
			}
			d := date
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: isolated Off day on %s", staff.Name, date.Format("2006-01-02")),
				Context: entity.ViolationContext{
					StaffID:   &staff.ID,
					StaffName: staff.Name,
					Date:      &d,
				},
			})
		})
	}
	return violations
}
