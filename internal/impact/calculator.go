// Package impact computes which other (staffId, date) cells are affected
// by editing one target cell, so the UI can highlight them before a full
// re-evaluation completes, in the same plain-function style as the
// shiftstats package.
package impact

import (
	"time"

	"github.com/schedcu/rotacheck/internal/calendar"
	"github.com/schedcu/rotacheck/internal/entity"
)

// Reason names why a cell is impacted by editing a target cell.
type Reason string

const (
	ReasonStaffing Reason = "staffing"
	ReasonSequence Reason = "sequence"
	ReasonJuhu     Reason = "juhu"
)

// reasonPriority ranks reasons for colour resolution when a cell is
// reachable by more than one reason: sequence > juhu > staffing.
var reasonPriority = map[Reason]int{
	ReasonSequence: 3,
	ReasonJuhu:     2,
	ReasonStaffing: 1,
}

// Record is one (staffId, date, reason) impact entry.
type Record struct {
	StaffID entity.StableId
	Date    time.Time
	Reason  Reason
}

// CellKey identifies one schedule cell for map-folding purposes.
type CellKey struct {
	StaffID entity.StableId
	Date    time.Time
}

// Calculate returns the dense list of impact records for editing
// (targetStaffID, targetDate) within sched, given the full staff roster
// and each staff member's juhu day:
//   - staffing: every other staff member on targetDate.
//   - sequence: the same staff on targetDate−2 … targetDate+2, excluding
//     the target, clipped to the 28-day window.
//   - juhu: when the target staff has a known juhu day, every date in the
//     period on that weekday, excluding the target.
func Calculate(sched *entity.Schedule, staff []entity.Staff, targetStaffID entity.StableId, targetDate time.Time) []Record {
	targetDate = calendar.DateOnly(targetDate)
	var records []Record

	for _, s := range staff {
		if s.ID == targetStaffID {
			continue
		}
		records = append(records, Record{StaffID: s.ID, Date: targetDate, Reason: ReasonStaffing})
	}

	for offset := -2; offset <= 2; offset++ {
		if offset == 0 {
			continue
		}
		d := calendar.AddDays(targetDate, offset)
		if !sched.Contains(d) {
			continue
		}
		records = append(records, Record{StaffID: targetStaffID, Date: d, Reason: ReasonSequence})
	}

	if juhuDay, ok := sched.StaffJuhuDays[targetStaffID]; ok {
		calendar.Iterate28Days(sched.StartDate, func(_ int, d time.Time) {
			if d.Equal(targetDate) {
				return
			}
			if calendar.DayOfWeek(d) != juhuDay {
				return
			}
			records = append(records, Record{StaffID: targetStaffID, Date: d, Reason: ReasonJuhu})
		})
	}

	return records
}

// Fold collapses records into a cellKey → reason map, keeping the
// highest-priority reason for each key. The UI consumes this map only
// for visualization.
func Fold(records []Record) map[CellKey]Reason {
	folded := make(map[CellKey]Reason, len(records))
	for _, r := range records {
		key := CellKey{StaffID: r.StaffID, Date: r.Date}
		existing, ok := folded[key]
		if !ok || reasonPriority[r.Reason] > reasonPriority[existing] {
			folded[key] = r.Reason
		}
	}
	return folded
}
