// Package feasibility runs the constraint registry against one schedule
// snapshot and folds the result into a single pass/fail verdict, in the
// same accumulate-then-summarize style as internal/validation.Result.
package feasibility

import (
	"github.com/schedcu/rotacheck/internal/constraint"
	"github.com/schedcu/rotacheck/internal/entity"
)

// Checker evaluates a registry of constraints against one context.
type Checker struct {
	registry *constraint.Registry
}

// NewChecker builds a Checker over the given registry. Callers normally
// pass constraint.NewRegistry(), but tests may substitute a smaller
// registry to isolate individual constraints.
func NewChecker(registry *constraint.Registry) *Checker {
	return &Checker{registry: registry}
}

// Check runs every enabled registry entry against ctx, stamping each
// returned violation with its constraint id, name, and effective severity,
// and derives the overall feasibility verdict.
//
// No global state: a fresh Checker, registry, and context produce the same
// result every time — check(ctx) == check(ctx), independent of the order
// constraints are registered in.
func (c *Checker) Check(ctx *constraint.Context) entity.FeasibilityResult {
	var violations []entity.Violation

	for _, d := range c.registry.Entries() {
		if !constraint.Enabled(d, ctx.Config) {
			continue
		}
		severity := constraint.EffectiveSeverity(d, ctx.Config)
		for _, v := range d.Check(ctx) {
			v.ConstraintID = d.ID
			v.ConstraintName = d.Name
			v.Severity = severity
			violations = append(violations, v)
		}
	}

	return entity.NewFeasibilityResult(violations)
}
