package constraint

import "github.com/schedcu/rotacheck/internal/entity"

// Registry is the ordered collection of constraint descriptors the
// feasibility checker iterates. Order is fixed at construction: hard
// constraints first, in their natural rule order, then soft constraints
// in tier order — this is the ordering the UI depends on for stable
// highlighting.
type Registry struct {
	entries []Descriptor
}

// NewRegistry builds the full registry of seven hard and ten soft
// constraints.
func NewRegistry() *Registry {
	return &Registry{entries: []Descriptor{
		{ID: string(entity.ConstraintShiftOrder), Name: "Shift order", SeverityClass: entity.SeverityClassHard, Check: CheckShiftOrder},
		{ID: string(entity.ConstraintNightOffDay), Name: "Night-off-day rest", SeverityClass: entity.SeverityClassHard, Check: CheckNightOffDay},
		{ID: string(entity.ConstraintConsecutiveNight), Name: "Consecutive nights", SeverityClass: entity.SeverityClassHard, Check: CheckConsecutiveNight},
		{ID: string(entity.ConstraintWeeklyOff), Name: "Weekly off days", SeverityClass: entity.SeverityClassHard, Check: CheckWeeklyOff},
		{ID: string(entity.ConstraintJuhu), Name: "Juhu (legal weekly off-day)", SeverityClass: entity.SeverityClassHard, Check: CheckJuhu},
		{ID: string(entity.ConstraintStaffing), Name: "Minimum staffing", SeverityClass: entity.SeverityClassHard, Check: CheckStaffing},
		{ID: string(entity.ConstraintMonthlyNight), Name: "Monthly night quota", SeverityClass: entity.SeverityClassSoft, Check: CheckMonthlyNight},

		{ID: string(entity.SoftMaxConsecutiveWork), Name: "Max consecutive work days", SeverityClass: entity.SeverityClassSoft, Check: CheckMaxConsecutiveWork},
		{ID: string(entity.SoftNightBlockPolicy), Name: "Night block policy", SeverityClass: entity.SeverityClassSoft, Check: CheckNightBlockPolicy},
		{ID: string(entity.SoftMaxPeriodOff), Name: "Max off days per period", SeverityClass: entity.SeverityClassSoft, Check: CheckMaxPeriodOff},
		{ID: string(entity.SoftMaxConsecutiveOff), Name: "Max consecutive off days", SeverityClass: entity.SeverityClassSoft, Check: CheckMaxConsecutiveOff},
		{ID: string(entity.SoftGradualShiftProgression), Name: "Gradual shift progression", SeverityClass: entity.SeverityClassSoft, Check: CheckGradualShiftProgression},
		{ID: string(entity.SoftMaxSameShiftConsecutive), Name: "Max same shift consecutive", SeverityClass: entity.SeverityClassSoft, Check: CheckMaxSameShiftConsecutive},
		{ID: string(entity.SoftRestClustering), Name: "Rest clustering", SeverityClass: entity.SeverityClassSoft, Check: CheckRestClustering},
		{ID: string(entity.SoftPostRestDayShift), Name: "Post-rest-day shift", SeverityClass: entity.SeverityClassSoft, Check: CheckPostRestDayShift},
		{ID: string(entity.SoftWeekendFairness), Name: "Weekend fairness", SeverityClass: entity.SeverityClassSoft, Check: CheckWeekendFairness},
		{ID: string(entity.SoftShiftContinuity), Name: "Shift continuity", SeverityClass: entity.SeverityClassSoft, Check: CheckShiftContinuity},
	}}
}

// Entries returns the registry's descriptors in evaluation order.
func (r *Registry) Entries() []Descriptor {
	return r.entries
}

// Enabled reports whether d is enabled under cfg. monthly-night is a
// special case: its SeverityClass is soft (so EffectiveSeverity always
// warns for it), but its on/off toggle still lives in
// cfg.EnabledConstraints, not cfg.SoftConstraints, because it's one of
// the seven hard-constraint ids the config's enablement table actually
// carries a key for. Every other hard constraint consults
// EnabledConstraints and every other soft constraint consults
// SoftConstraints[id].Enabled.
func Enabled(d Descriptor, cfg entity.ConstraintConfig) bool {
	if d.IsHard() || d.ID == string(entity.ConstraintMonthlyNight) {
		enabled, ok := cfg.EnabledConstraints[entity.HardConstraintID(d.ID)]
		return !ok || enabled
	}
	params, ok := cfg.SoftConstraints[entity.SoftConstraintID(d.ID)]
	return !ok || params.Enabled
}

// EffectiveSeverity resolves the severity a violation from d should carry
// under cfg:
//   - hard constraints emit error unless user-downgraded to soft in
//     cfg.ConstraintSeverity, in which case they emit warning;
//   - juhu is immutable (always error when enabled) unless cfg's
//     jurisdiction profile explicitly permits downgrading it (DESIGN.md
//     Open Question #2);
//   - monthly-night is always soft (warning) regardless of the toggle;
//   - soft constraints always emit warning.
func EffectiveSeverity(d Descriptor, cfg entity.ConstraintConfig) entity.Severity {
	if d.ID == string(entity.ConstraintMonthlyNight) {
		return entity.SeverityWarning
	}
	if !d.IsHard() {
		return entity.SeverityWarning
	}
	if d.ID == string(entity.ConstraintJuhu) && cfg.JurisdictionProfile != entity.JurisdictionConfigurableJuhu {
		return entity.SeverityError
	}
	class, ok := cfg.ConstraintSeverity[entity.HardConstraintID(d.ID)]
	if ok && class == entity.SeverityClassSoft {
		return entity.SeverityWarning
	}
	return entity.SeverityError
}
