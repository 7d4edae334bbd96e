package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// shiftContinuityLimit is the maximum number of non-Off shift-type changes
// tolerated across a period before shift-continuity warns.
const shiftContinuityLimit = 10

// CheckShiftContinuity counts how many times a staff member's non-Off
// shift differs from their previous non-Off shift across the 28 days
// (Off days do not reset or count toward the comparison); warns if the
// count exceeds shiftContinuityLimit.
func CheckShiftContinuity(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftShiftContinuity]
	if !params.Enabled {
		return nil
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		changes := 0
		var last entity.ShiftType
		haveLast := false

		calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
			shift, ok := ctx.Index().ShiftOn(staff.ID, date)
			if !ok || !shift.IsWork() {
				return
			}
			if haveLast && shift != last {
				changes++
			}
			last = shift
			haveLast = true
		})

		if changes <= shiftContinuityLimit {
			continue
		}
		violations = append(violations, entity.Violation{
			Message: fmt.Sprintf("%s: %d shift-type changes this period exceeds the preferred limit of %d",
				staff.Name, changes, shiftContinuityLimit),
			Context: entity.ViolationContext{
				StaffID:   &staff.ID,
				StaffName: staff.Name,
			},
		})
	}
	return violations
}
