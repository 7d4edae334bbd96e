package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckMaxConsecutiveWork warns when a staff member's run of non-Off days
// exceeds softConstraints.maxConsecutiveWork.maxDays (default 5), seeded
// across the previous-period boundary.
func CheckMaxConsecutiveWork(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftMaxConsecutiveWork]
	if !params.Enabled {
		return nil
	}
	limit := params.MaxDays
	if limit <= 0 {
		limit = 5
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		staff := staff
		walkStreak(ctx, staff.ID, limit, isNonOff, func(day, streakStart time.Time, length int) {
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: %d consecutive work days (%s→%s) exceeds the preferred limit of %d",
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
