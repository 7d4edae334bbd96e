package constraint

import (
	"fmt"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/shiftstats"
)

// CheckMonthlyNight flags each staff member whose Night-shift count across
// the full period differs from Config.MonthlyNightsRequired, whether below
// or above it. Always emits warning severity regardless of the
// ConstraintSeverity toggle (DESIGN.md Open Question #1) —
// EffectiveSeverity enforces that, not this check.
func CheckMonthlyNight(ctx *Context) []entity.Violation {
	var violations []entity.Violation

	for _, staff := range ctx.Staff {
		count := shiftstats.NightCount(ctx.Index().ForStaff(staff.ID))
		required := ctx.Config.MonthlyNightsRequired
		if count == required {
			continue
		}
		word := "below"
		if count > required {
			word = "above"
		}
		violations = append(violations, entity.Violation{
			Message: fmt.Sprintf("%s: %d Night shifts this period, %s the required %d",
				staff.Name, count, word, required),
			Context: entity.ViolationContext{
				StaffID:   &staff.ID,
				StaffName: staff.Name,
			},
		})
	}
	return violations
}
