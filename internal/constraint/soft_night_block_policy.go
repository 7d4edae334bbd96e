package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckNightBlockPolicy warns on an isolated Night shift: a day whose shift
// is N but whose immediate neighbors (-1, +1) are both not N. minBlockSize
// is informational only, echoed in the message.
func CheckNightBlockPolicy(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftNightBlockPolicy]
	if !params.Enabled {
		return nil
	}
	minBlock := params.MinBlockSize
	if minBlock <= 0 {
		minBlock = 2
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
			shift, ok := ctx.Index().ShiftOn(staff.ID, date)
			if !ok || shift != entity.ShiftNight {
				return
			}
			prev, prevOK := mergedNeighbor(ctx, staff.ID, calendar.AddDays(date, -1))
			next, nextOK := mergedNeighbor(ctx, staff.ID, calendar.AddDays(date, 1))
			if prevOK && prev == entity.ShiftNight {
				return
			}
			if nextOK && next == entity.ShiftNight {
				return
			}
			d := date
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: isolated Night shift on %s (preferred block size %d)",
					staff.Name, date.Format("2006-01-02"), minBlock),
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
