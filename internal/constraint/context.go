// Package constraint implements the registry of hard and soft shift-roster
// constraints and the shared evaluation context they run against. The
// severity bucketing follows the same warning/error split as
// validation.Result, and the registry itself is a plain struct-plus-
// function-values shape: no class hierarchy, just a descriptor table
// dispatching a check function.
package constraint

import (
	"time"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/shiftstats"
)

// Context is the immutable bundle passed to every constraint check.
// Constraints never mutate it and return owned violation slices;
// evaluation is therefore trivially parallelizable across constraints
// even though the reference checker runs them serially.
type Context struct {
	Schedule              *entity.Schedule
	Staff                 []entity.Staff
	Config                entity.ConstraintConfig
	PreviousPeriod        []entity.ShiftAssignment
	ScheduleCompleteness  float64

	index       *shiftstats.AssignmentIndex
	prevIndex   *shiftstats.AssignmentIndex
	staffByID   map[entity.StableId]entity.Staff
}

// NewContext builds an evaluation context, precomputing the assignment
// indices and completeness ratio so every constraint shares one O(n) pass
// instead of each repeating its own scan.
func NewContext(sched *entity.Schedule, staff []entity.Staff, cfg entity.ConstraintConfig, previousPeriod []entity.ShiftAssignment) *Context {
	idx := shiftstats.BuildIndex(sched.Assignments)
	prevIdx := shiftstats.BuildIndex(previousPeriod)

	byID := make(map[entity.StableId]entity.Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	completeness := shiftstats.Completeness(len(sched.Assignments), len(staff))

	return &Context{
		Schedule:             sched,
		Staff:                staff,
		Config:               cfg,
		PreviousPeriod:       previousPeriod,
		ScheduleCompleteness: completeness,
		index:                idx,
		prevIndex:            prevIdx,
		staffByID:            byID,
	}
}

// Index returns the precomputed current-period assignment index.
func (c *Context) Index() *shiftstats.AssignmentIndex { return c.index }

// PrevIndex returns the precomputed previous-period-trail assignment index.
func (c *Context) PrevIndex() *shiftstats.AssignmentIndex { return c.prevIndex }

// StaffName looks up a staff member's display name, returning "" if unknown.
func (c *Context) StaffName(id entity.StableId) string {
	if s, ok := c.staffByID[id]; ok {
		return s.Name
	}
	return ""
}

// ShiftOnOrBefore resolves the shift assigned to staffID on date, checking
// the current period first and falling back to the previous-period trail.
// This is the merged lookup every boundary-crossing constraint uses.
func (c *Context) ShiftOnOrBefore(staffID entity.StableId, date time.Time) (entity.ShiftType, bool) {
	if s, ok := c.index.ShiftOn(staffID, date); ok {
		return s, ok
	}
	return c.prevIndex.ShiftOn(staffID, date)
}
