package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckWeekendFairness counts Saturday+Sunday non-Off assignments per
// staff, computes the mean across all staff, and warns on any staff whose
// count exceeds mean+2.
func CheckWeekendFairness(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftWeekendFairness]
	if !params.Enabled {
		return nil
	}
	if len(ctx.Staff) == 0 {
		return nil
	}

	counts := make(map[entity.StableId]int, len(ctx.Staff))
	total := 0
	calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
		if !calendar.IsWeekend(date) {
			return
		}
		for _, staff := range ctx.Staff {
			shift, ok := ctx.Index().ShiftOn(staff.ID, date)
			if ok && shift.IsWork() {
				counts[staff.ID]++
				total++
			}
		}
	})

	mean := float64(total) / float64(len(ctx.Staff))
	threshold := mean + 2

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		count := counts[staff.ID]
		if float64(count) <= threshold {
			continue
		}
		violations = append(violations, entity.Violation{
			Message: fmt.Sprintf("%s: %d weekend shifts exceeds the fair-share threshold of %.1f (mean %.1f)",
				staff.Name, count, threshold, mean),
			Context: entity.ViolationContext{
				StaffID:   &staff.ID,
				StaffName: staff.Name,
			},
		})
	}
	return violations
}
