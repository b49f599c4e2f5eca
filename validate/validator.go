package validate

import "github.com/katalvlaran/motifscan/ir"

// Validator is a pluggable pre/post-compile check (spec.md §4.3). OnEdge
// fires once per structural edge during statement lowering; OnMotif fires
// once at the end of compilation, against the fully-populated IR.
type Validator interface {
	OnEdge(m *ir.Motif, u, v string, exists bool, action ir.ActionTag) error
	OnMotif(m *ir.Motif) error
}

// Defaults returns the two validators shipped in the core, in the order
// compile.Compile runs them by default.
func Defaults() []Validator {
	return []Validator{
		EdgeExistenceConsistency{},
		ConstraintSatisfiability{},
	}
}
