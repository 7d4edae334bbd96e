package constraint

import (
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// StreakPredicate reports whether a shift satisfies a streak (e.g. "is
// Night", "is non-Off", "is same shift type as the streak").
type StreakPredicate func(entity.ShiftType) bool

// seedStreak walks backward from day −1 up to 7 days into the previous-
// period trail, counting consecutive days satisfying pred, and returns
// the count plus the earliest matching date (the streak's start, if any
// trailing days matched). Breaks on the first non-matching date or a gap
// (no assignment).
func seedStreak(ctx *Context, staffID entity.StableId, startDate time.Time, pred StreakPredicate) (count int, earliestDate time.Time, found bool) {
	for back := 1; back <= 7; back++ {
		date := calendar.AddDays(startDate, -back)
		shift, ok := ctx.PrevIndex().ShiftOn(staffID, date)
		if !ok || !pred(shift) {
			break
		}
		count++
		earliestDate = date
		found = true
	}
	return count, earliestDate, found
}

// walkStreak threads a running streak length and start date across the
// 28-day period for one staff member, calling onExceed whenever the
// running length exceeds limit. pred decides whether a given day's shift
// extends the streak; non-matching days (including unassigned gaps) reset
// it to zero. This is the shared backward-seed-then-forward-walk pattern
// every consecutive-X constraint uses to stay correct across the previous-
// period boundary.
func walkStreak(
	ctx *Context,
	staffID entity.StableId,
	limit int,
	pred StreakPredicate,
	onExceed func(day time.Time, streakStart time.Time, length int),
) {
	seedCount, seedStart, seeded := seedStreak(ctx, staffID, ctx.Schedule.StartDate, pred)

	length := seedCount
	streakStart := seedStart
	if !seeded {
		streakStart = time.Time{}
	}

	calendar.Iterate28Days(ctx.Schedule.StartDate, func(_ int, date time.Time) {
		shift, ok := ctx.Index().ShiftOn(staffID, date)
		if ok && pred(shift) {
			if length == 0 {
				streakStart = date
			}
			length++
		} else {
			length = 0
			return
		}

		if length > limit {
			onExceed(date, streakStart, length)
		}
	})
}

// Predicates shared by the consecutive-X constraints.
func isNight(s entity.ShiftType) bool    { return s == entity.ShiftNight }
func isNonOff(s entity.ShiftType) bool   { return s.IsWork() }
func isOff(s entity.ShiftType) bool      { return s == entity.ShiftOff }

// sameShiftPredicate returns a predicate matching exactly one shift type,
// used by max-same-shift-consecutive which tracks D/E/N independently.
func sameShiftPredicate(target entity.ShiftType) StreakPredicate {
	return func(s entity.ShiftType) bool { return s == target }
}

// mergedNeighbor resolves the shift on date, current period or previous
// trail, returning false if nothing is assigned there. Used by the
// neighbor-lookup soft constraints (night-block-policy, gradual-shift-
// progression, post-rest-day-shift) which only need a 1-day lookback/ahead
// rather than a full streak walk.
func mergedNeighbor(ctx *Context, staffID entity.StableId, date time.Time) (entity.ShiftType, bool) {
	return ctx.ShiftOnOrBefore(staffID, date)
}
