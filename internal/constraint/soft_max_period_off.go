package constraint

import (
	"fmt"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/shiftstats"
)

// CheckMaxPeriodOff warns when a staff member's total Off days across the
// 28-day period exceeds softConstraints.maxPeriodOff.maxOff (default 9),
// reporting the full Off-day list.
func CheckMaxPeriodOff(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftMaxPeriodOff]
	if !params.Enabled {
		return nil
	}
	limit := params.MaxOff
	if limit <= 0 {
		limit = 9
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		offDates := shiftstats.OffDates(ctx.Index().ForStaff(staff.ID))
		if len(offDates) <= limit {
			continue
		}
		violations = append(violations, entity.Violation{
			Message: fmt.Sprintf("%s: %d off days this period exceeds the preferred maximum of %d",
				staff.Name, len(offDates), limit),
			Context: entity.ViolationContext{
				StaffID:   &staff.ID,
				StaffName: staff.Name,
				Dates:     offDates,
			},
		})
	}
	return violations
}
