package entity

import "errors"

// Domain-specific errors
var (
	ErrInvalidDateRange       = errors.New("invalid date range: end date must be after start date")
	ErrAssignmentOutOfWindow  = errors.New("assignment date lies outside the schedule's 28-day window")
	ErrUnknownShiftType       = errors.New("unknown shift type")
	ErrInvalidOptimizerRunState = errors.New("invalid optimizer run state transition")
	ErrEmptyExportEnvelope    = errors.New("export envelope missing required fields")
)

// ValidateShiftType reports whether s is one of D, E, N, Off.
func ValidateShiftType(s string) bool {
	return ShiftType(s).Valid()
}

// ValidateAssignmentWindow reports whether every assignment's date lies in
// the schedule's [StartDate, StartDate+28) window.
func ValidateAssignmentWindow(sched *Schedule) error {
	for _, a := range sched.Assignments {
		if !sched.Contains(a.Date) {
			return ErrAssignmentOutOfWindow
		}
	}
	return nil
}
