package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckMaxConsecutiveOff is symmetric to CheckMaxConsecutiveWork but for Off
// streaks, against softConstraints.maxConsecutiveOff.maxDays (default 2).
func CheckMaxConsecutiveOff(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftMaxConsecutiveOff]
	if !params.Enabled {
		return nil
	}
	limit := params.MaxDays
	if limit <= 0 {
		limit = 2
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		staff := staff
		walkStreak(ctx, staff.ID, limit, isOff, func(day, streakStart time.Time, length int) {
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: %d consecutive off days (%s→%s) exceeds the preferred limit of %d",
					staff.Name, length, streakStart.Format("2006-01-02"), day.Format("2006-01-02"), limit),
				Context: entity.ViolationContext{
					StaffID:   &staff.ID,
					StaffName: staff.Name,
					Date:      &day,
					Dates:     []time.Time{streakStart, day},
				},
			})
		})
	}
	return violations
}
