// Package configvalidator runs the config sanity pre-check: advisory
// checks independent of the constraint engine, surfaced before a
// schedule is even generated. Built directly on validation.Result.
package configvalidator

import (
	"fmt"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/validation"
)

// Validate produces advisory messages for a staff count and constraint
// config:
//   - zero staff;
//   - minDay+minEvening+minNight > |staff| for either weekday or weekend
//     staffing (per-day coverage infeasible);
//   - total required Nights (minNight × 28) exceeding total available
//     Night-shift capacity (|staff| × monthlyNightsRequired);
//   - maxConsecutiveNights < 1.
func Validate(staffCount int, cfg entity.ConstraintConfig) *validation.Result {
	result := validation.NewResult()

	if staffCount == 0 {
		result.AddError(validation.CodeNoStaff, "no staff are configured; no schedule can be generated")
		return result
	}

	checkDailyCoverage(result, "weekday", staffCount, cfg.WeekdayStaffing)
	checkDailyCoverage(result, "weekend", staffCount, cfg.WeekendStaffing)

	requiredNights := cfg.WeekdayStaffing.Night.Min * entity.PeriodLength
	availableNightCapacity := staffCount * cfg.MonthlyNightsRequired
	if requiredNights > availableNightCapacity {
		result.AddWarningWithContext(
			validation.CodeNightQuotaInfeasible,
			fmt.Sprintf("required Night-shift coverage (%d) exceeds total available Night capacity (%d) under the current monthly quota", requiredNights, availableNightCapacity),
			map[string]interface{}{"required": requiredNights, "available": availableNightCapacity},
		)
	}

	if cfg.MaxConsecutiveNights < 1 {
		result.AddError(validation.CodeInvalidMaxConsecutive, "maxConsecutiveNights must be at least 1")
	}

	return result
}

func checkDailyCoverage(result *validation.Result, label string, staffCount int, staffing entity.DailyStaffing) {
	required := staffing.Day.Min + staffing.Evening.Min + staffing.Night.Min
	if required > staffCount {
		result.AddWarningWithContext(
			validation.CodeStaffingInfeasible,
			fmt.Sprintf("%s minimum staffing (%d) exceeds available staff (%d)", label, required, staffCount),
			map[string]interface{}{"required": required, "available": staffCount, "dayClass": label},
		)
	}
}
