// Package calendar provides the day-of-week and 28-day windowing arithmetic
// every sliding-window constraint and week-boundary check relies on. Plain
// functions, no state.
package calendar

import (
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
)

// DayOfWeek returns t's weekday using the 0=Sunday convention.
func DayOfWeek(t time.Time) entity.DayOfWeek {
	return entity.DayOfWeek(t.Weekday())
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// DateOnly truncates t to a UTC midnight instant, the canonical
// representation used for date-keyed maps throughout the engine.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// Iterate28Days calls fn once for each of the 28 dates in
// [startDate, startDate+28), in order, passing the zero-based offset.
func Iterate28Days(startDate time.Time, fn func(offset int, date time.Time)) {
	start := DateOnly(startDate)
	for offset := 0; offset < entity.PeriodLength; offset++ {
		fn(offset, start.AddDate(0, 0, offset))
	}
}

// WeekBoundaries returns the 7 dates of week index w (0-3) of a 28-day
// schedule starting at startDate. w must be in [0,4).
func WeekBoundaries(startDate time.Time, w int) []time.Time {
	start := DateOnly(startDate).AddDate(0, 0, w*7)
	dates := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// WeekIndexOf returns which of the four non-overlapping weeks (0-3) date
// falls in, relative to startDate. Returns -1 if date lies outside the
// 28-day window.
func WeekIndexOf(startDate, date time.Time) int {
	offset := int(DateOnly(date).Sub(DateOnly(startDate)).Hours() / 24)
	if offset < 0 || offset >= entity.PeriodLength {
		return -1
	}
	return offset / 7
}

// PreviousPeriodWindow returns the [startDate-7, startDate) half-open
// interval the previous-period trail is drawn from.
func PreviousPeriodWindow(startDate time.Time) (time.Time, time.Time) {
	start := DateOnly(startDate)
	return start.AddDate(0, 0, -7), start
}
