package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifscan/ir"
)

func TestAddStructuralEdgeDedupsIdentical(t *testing.T) {
	m := ir.NewMotif()
	i1, merged1, err := m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	require.NoError(t, err)
	assert.False(t, merged1)

	i2, merged2, err := m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	require.NoError(t, err)
	assert.True(t, merged2)
	assert.Equal(t, i1, i2)
	assert.Len(t, m.Skeleton.Edges, 1)
}

func TestAddStructuralEdgeDistinctActionIsParallel(t *testing.T) {
	m := ir.NewMotif()
	_, _, err := m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	require.NoError(t, err)
	_, _, err = m.AddStructuralEdge("A", "B", true, ir.ActionPositive, "")
	require.NoError(t, err)
	assert.Len(t, m.Skeleton.Edges, 2)
}

func TestAddStructuralEdgeDisagreementErrors(t *testing.T) {
	m := ir.NewMotif()
	_, _, err := m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	require.NoError(t, err)
	_, _, err = m.AddStructuralEdge("A", "B", false, ir.ActionDefault, "")
	assert.ErrorIs(t, err, ir.ErrEdgeDisagreement)
}

func TestAddNodeConstraintRejectsUnknownNode(t *testing.T) {
	m := ir.NewMotif()
	err := m.AddNodeConstraint("X", ir.Clause{Attr: "size", Op: ir.OpGt, Values: []ir.Literal{ir.IntLiteral(1)}})
	assert.ErrorIs(t, err, ir.ErrUnknownNode)
}

func TestAddNamedEdgeDuplicateDifferentTarget(t *testing.T) {
	m := ir.NewMotif()
	i1, _, _ := m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	i2, _, _ := m.AddStructuralEdge("A", "C", true, ir.ActionDefault, "")
	require.NoError(t, m.AddNamedEdge("ab", i1))
	err := m.AddNamedEdge("ab", i2)
	assert.ErrorIs(t, err, ir.ErrDuplicateEdgeName)
}

func TestPropagateAutomorphismsDeepMerges(t *testing.T) {
	m := ir.NewMotif()
	_, _, _ = m.AddStructuralEdge("A", "C", true, ir.ActionDefault, "")
	_, _, _ = m.AddStructuralEdge("B", "C", true, ir.ActionDefault, "")
	require.NoError(t, m.AddNodeConstraint("A", ir.Clause{Attr: "size", Op: ir.OpGt, Values: []ir.Literal{ir.IntLiteral(1)}}))
	require.NoError(t, m.AddNodeConstraint("B", ir.Clause{Attr: "color", Op: ir.OpEq, Values: []ir.Literal{ir.StrLiteral("red")}}))
	require.NoError(t, m.AddAutomorphism("A", "B"))

	m.PropagateAutomorphisms()

	if diff := cmp.Diff(m.Nc["A"], m.Nc["B"]); diff != "" {
		t.Fatalf("Nc[A] and Nc[B] diverge after propagation (-A +B):\n%s", diff)
	}
	assert.Len(t, m.Nc["A"], 2)
}

func TestImplicitSymmetryDoesNotPropagate(t *testing.T) {
	// A -> C and B -> C are structurally symmetric but never declared ===;
	// per spec.md §9 only explicit pairs propagate constraints.
	m := ir.NewMotif()
	_, _, _ = m.AddStructuralEdge("A", "C", true, ir.ActionDefault, "")
	_, _, _ = m.AddStructuralEdge("B", "C", true, ir.ActionDefault, "")
	require.NoError(t, m.AddNodeConstraint("A", ir.Clause{Attr: "size", Op: ir.OpGt, Values: []ir.Literal{ir.IntLiteral(1)}}))

	m.PropagateAutomorphisms()

	assert.Empty(t, m.Nc["B"])
}

func TestStringIsStableRegardlessOfInsertionOrder(t *testing.T) {
	m1 := ir.NewMotif()
	_, _, _ = m1.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	_, _, _ = m1.AddStructuralEdge("B", "C", true, ir.ActionDefault, "")

	m2 := ir.NewMotif()
	_, _, _ = m2.AddStructuralEdge("B", "C", true, ir.ActionDefault, "")
	_, _, _ = m2.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")

	assert.Equal(t, m1.String(), m2.String())
}

func TestPositiveAndNegativeEdgeSplit(t *testing.T) {
	m := ir.NewMotif()
	_, _, _ = m.AddStructuralEdge("A", "B", true, ir.ActionDefault, "")
	_, _, _ = m.AddStructuralEdge("B", "C", false, ir.ActionDefault, "")

	assert.Len(t, m.PositiveEdges(), 1)
	assert.Len(t, m.NegativeEdges(), 1)
}
