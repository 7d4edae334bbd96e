package constraint

import "github.com/schedcu/rotacheck/internal/entity"

// CheckFunc is a pure function from an evaluation context to the
// violations it finds. Same context in, same violations out — order
// independent, no shared mutable state.
type CheckFunc func(ctx *Context) []entity.Violation

// Descriptor is one entry in the constraint registry: stable id,
// display name, natural severity class, and its check function. A
// uniform descriptor table suffices in place of a class hierarchy —
// polymorphism here is just dispatching Check.
type Descriptor struct {
	ID            string
	Name          string
	SeverityClass entity.SeverityClass
	Check         CheckFunc
}

// IsHard reports whether this descriptor is one of the six hard
// (legal/coverage) constraints; monthly-night carries SeverityClassSoft and
// is not one of them.
func (d Descriptor) IsHard() bool {
	return d.SeverityClass == entity.SeverityClassHard
}
