package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckConsecutiveNight forbids a run of Night shifts longer than
// Config.MaxConsecutiveNights, threading the run length across the
// previous-period boundary.
func CheckConsecutiveNight(ctx *Context) []entity.Violation {
	var violations []entity.Violation
	limit := ctx.Config.MaxConsecutiveNights

	for _, staff := range ctx.Staff {
		staff := staff
		walkStreak(ctx, staff.ID, limit, isNight, func(day, streakStart time.Time, length int) {
			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: %d consecutive Night shifts (%s→%s) exceeds the limit of %d",
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
