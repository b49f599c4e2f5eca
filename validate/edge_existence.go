package validate

import (
	"fmt"

	"github.com/katalvlaran/motifscan/ir"
)

// EdgeExistenceConsistency fails if two declarations of the same ordered
// pair disagree on Exists. ir.Motif.AddStructuralEdge already rejects this
// at insertion time; this validator re-checks it as an OnEdge hook so a
// caller that substitutes a different Motif-building path still gets the
// same guarantee (spec.md §4.3).
type EdgeExistenceConsistency struct{}

func (EdgeExistenceConsistency) OnEdge(m *ir.Motif, u, v string, exists bool, _ ir.ActionTag) error {
	for _, e := range m.Skeleton.Edges {
		if e.U == u && e.V == v && e.Exists != exists {
			return fmt.Errorf("validate: edge (%s,%s): %w", u, v, ir.ErrEdgeDisagreement)
		}
	}
	return nil
}

func (EdgeExistenceConsistency) OnMotif(*ir.Motif) error { return nil }
