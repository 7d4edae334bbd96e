package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfWeekConvention(t *testing.T) {
	sunday := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, int(DayOfWeek(sunday)))

	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, int(DayOfWeek(monday)))
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(sunday))
	assert.False(t, IsWeekend(monday))
}

func TestIterate28Days(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	count := 0
	var last time.Time
	Iterate28Days(start, func(offset int, date time.Time) {
		count++
		last = date
	})
	assert.Equal(t, 28, count)
	assert.Equal(t, start.AddDate(0, 0, 27), last)
}

func TestWeekBoundaries(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	week0 := WeekBoundaries(start, 0)
	assert.Len(t, week0, 7)
	assert.Equal(t, start, week0[0])

	week1 := WeekBoundaries(start, 1)
	assert.Equal(t, start.AddDate(0, 0, 7), week1[0])
}

func TestWeekIndexOf(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WeekIndexOf(start, start))
	assert.Equal(t, 0, WeekIndexOf(start, start.AddDate(0, 0, 6)))
	assert.Equal(t, 1, WeekIndexOf(start, start.AddDate(0, 0, 7)))
	assert.Equal(t, 3, WeekIndexOf(start, start.AddDate(0, 0, 27)))
	assert.Equal(t, -1, WeekIndexOf(start, start.AddDate(0, 0, 28)))
	assert.Equal(t, -1, WeekIndexOf(start, start.AddDate(0, 0, -1)))
}

func TestPreviousPeriodWindow(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	lo, hi := PreviousPeriodWindow(start)
	assert.Equal(t, start.AddDate(0, 0, -7), lo)
	assert.Equal(t, start, hi)
}
