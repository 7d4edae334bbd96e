package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// maxSameShiftLimit is the longest same-shift streak allowed;
// max-same-shift-consecutive fires from the 5th consecutive day on.
const maxSameShiftLimit = 4

// CheckMaxSameShiftConsecutive warns, separately for each of D/E/N, on a
// streak of the same shift type of length >= 5, seeded by trailing
// same-shift days from the previous period, firing on the fifth day and on
// every further day of the streak.
func CheckMaxSameShiftConsecutive(ctx *Context) []entity.Violation {
	params := ctx.Config.SoftConstraints[entity.SoftMaxSameShiftConsecutive]
	if !params.Enabled {
		return nil
	}

	var violations []entity.Violation
	for _, staff := range ctx.Staff {
		staff := staff
		for _, shift := range []entity.ShiftType{entity.ShiftDay, entity.ShiftEvening, entity.ShiftNight} {
			shift := shift
			walkStreak(ctx, staff.ID, maxSameShiftLimit, sameShiftPredicate(shift), func(day, streakStart time.Time, length int) {
				violations = append(violations, entity.Violation{
					Message: fmt.Sprintf("%s: %d consecutive %s shifts (%s→%s)",
						staff.Name, length, shift, streakStart.Format("2006-01-02"), day.Format("2006-01-02")),
					Context: entity.ViolationContext{
						StaffID:   &staff.ID,
						StaffName: staff.Name,
						Date:      &day,
						Dates:     []time.Time{streakStart, day},
					},
				})
			})
		}
	}
	return violations
}
