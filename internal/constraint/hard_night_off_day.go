package constraint

import (
	"fmt"
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// CheckNightOffDay forbids the three-day pattern N, Off, D (a legal-rest
// violation): sliding windows starting at offsets −2..+25 relative to day
// 0, each window's first day (N), middle day (Off), and third day (D).
// A violation is reported only when the D (window's third day) lies inside
// the current period.
func CheckNightOffDay(ctx *Context) []entity.Violation {
	var violations []entity.Violation

	for _, staff := range ctx.Staff {
		for offset := -2; offset <= entity.PeriodLength-3; offset++ {
			day1 := calendar.AddDays(ctx.Schedule.StartDate, offset)
			day2 := calendar.AddDays(ctx.Schedule.StartDate, offset+1)
			day3 := calendar.AddDays(ctx.Schedule.StartDate, offset+2)

			if !ctx.Schedule.Contains(day3) {
				continue
			}

			s1, ok1 := ctx.ShiftOnOrBefore(staff.ID, day1)
			s2, ok2 := ctx.ShiftOnOrBefore(staff.ID, day2)
			s3, ok3 := ctx.ShiftOnOrBefore(staff.ID, day3)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			if s1 != entity.ShiftNight || s2 != entity.ShiftOff || s3 != entity.ShiftDay {
				continue
			}

			violations = append(violations, entity.Violation{
				Message: fmt.Sprintf("%s: Night→Off→Day pattern (%s, %s, %s) violates rest requirements",
					staff.Name, day1.Format("2006-01-02"), day2.Format("2006-01-02"), day3.Format("2006-01-02")),
				Context: entity.ViolationContext{
					StaffID:   &staff.ID,
					StaffName: staff.Name,
					Date:      &day3,
					Dates:     []time.Time{day1, day2, day3},
				},
			})
		}
	}
	return violations
}
