// Package exportimport implements the export/import envelope: a
// self-contained JSON snapshot of everything a schedule needs to travel
// between installations (staff roster, schedule, configuration, and the
// previous period's boundary trail).
//
// Kept on the standard library's encoding/json rather than a third-party
// validation library: the envelope's presence check is a fixed, four-field
// check against a document this package itself defines, not schema
// validation against an external or evolving contract — go-playground/
// validator targets struct-tag field validation on arbitrary request
// DTOs, which is a different problem than "did the whole document
// round-trip intact."
package exportimport

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
)

// Envelope is the wire shape of one export. Version pins the schema this
// envelope was written against so Import can detect a stale format.
type Envelope struct {
	Version           int                                    `json:"version"`
	ExportedAt        time.Time                              `json:"exportedAt"`
	Staff             []optimizerclient.WireStaff             `json:"staff"`
	Schedule          *ExportedSchedule                       `json:"schedule"`
	Config            *optimizerclient.WireConstraintConfig   `json:"config"`
	PreviousPeriodEnd []optimizerclient.WireShiftAssignment    `json:"previousPeriodEnd,omitempty"`
}

// ExportedSchedule is the schedule slice of an Envelope.
type ExportedSchedule struct {
	StartDate     string                                  `json:"startDate"`
	Assignments   []optimizerclient.WireShiftAssignment     `json:"assignments"`
	StaffJuhuDays []optimizerclient.WireStaffJuhuDay         `json:"staffJuhuDays,omitempty"`
}

// CurrentVersion is the envelope schema version this build writes.
const CurrentVersion = 1

const envelopeDateLayout = "2006-01-02"

// Export builds a self-contained Envelope from the engine's in-memory
// state. exportedAt is passed in by the caller rather than computed here,
// since entity.Now() reaches for the wall clock and callers that need
// deterministic snapshots (tests, replays) should control it explicitly.
func Export(staff []entity.Staff, schedule *entity.Schedule, cfg entity.ConstraintConfig, previousPeriodEnd []entity.ShiftAssignment, exportedAt time.Time) (*Envelope, error) {
	if schedule == nil {
		return nil, fmt.Errorf("exportimport: export: %w", entity.ErrEmptyExportEnvelope)
	}

	juhuDays := make([]optimizerclient.WireStaffJuhuDay, 0, len(schedule.StaffJuhuDays))
	for staffID, day := range schedule.StaffJuhuDays {
		juhuDays = append(juhuDays, optimizerclient.WireStaffJuhuDay{
			StaffID: staffID.String(),
			JuhuDay: optimizerclient.DayOfWeekToWire(day),
		})
	}

	wireConfig := optimizerclient.ToWireConstraintConfig(cfg)

	return &Envelope{
		Version:    CurrentVersion,
		ExportedAt: exportedAt,
		Staff:      optimizerclient.ToWireStaff(staff),
		Schedule: &ExportedSchedule{
			StartDate:     schedule.StartDate.Format(envelopeDateLayout),
			Assignments:   optimizerclient.ToWireAssignments(schedule.Assignments),
			StaffJuhuDays: juhuDays,
		},
		Config:            &wireConfig,
		PreviousPeriodEnd: optimizerclient.ToWireAssignments(previousPeriodEnd),
	}, nil
}

// Marshal serializes env to JSON, matching the format Import expects.
func Marshal(env *Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}

// ImportedState is the decoded, validated result of Import, ready to
// replace the engine's in-memory state atomically.
type ImportedState struct {
	Staff             []entity.Staff
	Schedule          *entity.Schedule
	Config            entity.ConstraintConfig
	PreviousPeriodEnd []entity.ShiftAssignment
}

// Import decodes raw, validates presence of version/staff/schedule/config,
// and converts every wire type back to its entity form.
// A non-nil error wraps entity.ErrEmptyExportEnvelope when a required
// section is missing; otherwise it reports a JSON decode failure, an
// unparsable staff id, assignment, start date or juhu entry, or an
// assignment outside the schedule's window. The caller's existing state is
// left untouched either way, since Import never mutates anything itself.
func Import(raw []byte) (*ImportedState, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("exportimport: decode envelope: %w", err)
	}

	if err := validatePresence(&env); err != nil {
		return nil, err
	}

	staff := make([]entity.Staff, len(env.Staff))
	for i, s := range env.Staff {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, fmt.Errorf("exportimport: staff[%d].id: %w", i, err)
		}
		staff[i] = entity.Staff{ID: id, Name: s.Name}
	}

	assignments, err := optimizerclient.FromWireAssignments(env.Schedule.Assignments)
	if err != nil {
		return nil, fmt.Errorf("exportimport: schedule.assignments: %w", err)
	}

	startDate, err := time.Parse(envelopeDateLayout, env.Schedule.StartDate)
	if err != nil {
		return nil, fmt.Errorf("exportimport: schedule.startDate: %w", err)
	}

	juhuDays := make(map[entity.StableId]entity.DayOfWeek, len(env.Schedule.StaffJuhuDays))
	for _, j := range env.Schedule.StaffJuhuDays {
		id, err := uuid.Parse(j.StaffID)
		if err != nil {
			return nil, fmt.Errorf("exportimport: schedule.staffJuhuDays: %w", err)
		}
		juhuDays[id] = optimizerclient.WireToDayOfWeek(j.JuhuDay)
	}

	schedule := &entity.Schedule{
		StartDate:     startDate.UTC(),
		Assignments:   assignments,
		StaffJuhuDays: juhuDays,
	}
	if err := entity.ValidateAssignmentWindow(schedule); err != nil {
		return nil, fmt.Errorf("exportimport: %w", err)
	}

	cfg := optimizerclient.FromWireConstraintConfig(*env.Config)

	previousPeriodEnd, err := optimizerclient.FromWireAssignments(env.PreviousPeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("exportimport: previousPeriodEnd: %w", err)
	}

	return &ImportedState{
		Staff:             staff,
		Schedule:          schedule,
		Config:            cfg,
		PreviousPeriodEnd: previousPeriodEnd,
	}, nil
}

func validatePresence(env *Envelope) error {
	if env.Version == 0 || env.Staff == nil || env.Schedule == nil || env.Config == nil {
		return fmt.Errorf("exportimport: import: %w", entity.ErrEmptyExportEnvelope)
	}
	return nil
}

