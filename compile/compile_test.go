package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifscan/compile"
	"github.com/katalvlaran/motifscan/ir"
	"github.com/katalvlaran/motifscan/validate"
)

func TestCompileSimpleEdge(t *testing.T) {
	m, err := compile.Compile("A -> B")
	require.NoError(t, err)
	require.Len(t, m.Skeleton.Edges, 1)
	e := m.Skeleton.Edges[0]
	assert.Equal(t, "A", e.U)
	assert.Equal(t, "B", e.V)
	assert.True(t, e.Exists)
	assert.Equal(t, ir.ActionDefault, e.Action)
}

func TestCompileNegativeEdge(t *testing.T) {
	m, err := compile.Compile("A !> B")
	require.NoError(t, err)
	require.Len(t, m.Skeleton.Edges, 1)
	assert.False(t, m.Skeleton.Edges[0].Exists)
}

func TestCompileNodeConstraint(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.radius >= 3
	`)
	require.NoError(t, err)
	require.Contains(t, m.Nc, "A")
	require.Len(t, m.Nc["A"], 1)
	assert.Equal(t, ir.OpGe, m.Nc["A"][0].Op)
}

func TestCompileNamedEdgeConstraint(t *testing.T) {
	m, err := compile.Compile(`
		A -> B as ab
		ab.weight == 7
	`)
	require.NoError(t, err)
	key := ir.EdgeKey{U: "A", V: "B"}
	require.Contains(t, m.Ec, key)
	require.Len(t, m.Ec[key], 1)
	assert.Equal(t, ir.OpEq, m.Ec[key][0].Op)
	assert.Equal(t, ir.IntLiteral(7), m.Ec[key][0].Values[0])
}

func TestCompileUnresolvedIdentifier(t *testing.T) {
	_, err := compile.Compile(`
		A -> B
		ghost.weight == 7
	`)
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrUnresolvedIdentifier)
}

func TestCompileAutomorphismPropagation(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A -> C
		A.kind == "soma"
		A === B
	`)
	require.NoError(t, err)
	require.Contains(t, m.Nc, "B")
	assert.ElementsMatch(t, m.Nc["A"], m.Nc["B"])
}

func TestCompileMacroExpansion(t *testing.T) {
	src := `
		triangle(x, y, z) {
			x -> y
			y -> z
			z -> x
		}
		triangle(A, B, C)
	`
	m, err := compile.Compile(src)
	require.NoError(t, err)
	require.Len(t, m.Skeleton.Edges, 3)
	assert.True(t, m.EdgeExists("A", "B"))
	assert.True(t, m.EdgeExists("B", "C"))
	assert.True(t, m.EdgeExists("C", "A"))
}

func TestCompileMacroDoubleInvocationNamesDoNotCollide(t *testing.T) {
	src := `
		pair(x, y) {
			x -> y as link
			link.weight >= 1
		}
		pair(A, B)
		pair(C, D)
	`
	m, err := compile.Compile(src)
	require.NoError(t, err)
	require.Len(t, m.Skeleton.Edges, 2)
	assert.True(t, m.EdgeExists("A", "B"))
	assert.True(t, m.EdgeExists("C", "D"))
	abKey := ir.EdgeKey{U: "A", V: "B"}
	cdKey := ir.EdgeKey{U: "C", V: "D"}
	assert.Len(t, m.Ec[abKey], 1)
	assert.Len(t, m.Ec[cdKey], 1)
}

func TestCompileMacroArityMismatch(t *testing.T) {
	src := `
		pair(x, y) {
			x -> y
		}
		pair(A)
	`
	_, err := compile.Compile(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrMacroArity)
}

func TestCompileUndefinedMacro(t *testing.T) {
	_, err := compile.Compile("ghostMacro(A, B)")
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrUndefinedMacro)
}

func TestCompileMacroRecursionDirect(t *testing.T) {
	src := `
		loop(x, y) {
			loop(x, y)
		}
		loop(A, B)
	`
	_, err := compile.Compile(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrMacroRecursion)
}

func TestCompileMacroRecursionIndirect(t *testing.T) {
	src := `
		a(x, y) {
			b(x, y)
		}
		b(x, y) {
			a(x, y)
		}
		a(A, B)
	`
	_, err := compile.Compile(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrMacroRecursion)
}

func TestCompileDuplicateMacro(t *testing.T) {
	src := `
		dup(x) { x -> x }
		dup(x) { x -> x }
	`
	_, err := compile.Compile(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, compile.ErrDuplicateMacro)
}

func TestCompileEdgeDisagreementRejected(t *testing.T) {
	_, err := compile.Compile(`
		A -> B
		A !> B
	`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ir.ErrEdgeDisagreement)
}

func TestCompileConstraintCollisionRejected(t *testing.T) {
	_, err := compile.Compile(`
		A -> B
		A.radius == 3
		A.radius == 4
	`)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrConstraintCollision)
}

func TestCompileWithoutValidatorsSkipsChecks(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.radius == 3
		A.radius == 4
	`, compile.WithValidators())
	require.NoError(t, err)
	require.Contains(t, m.Nc, "A")
	assert.Len(t, m.Nc["A"], 2)
}

func TestCompileSyntaxErrorPropagates(t *testing.T) {
	_, err := compile.Compile("A -> ")
	require.Error(t, err)
}

func TestCompileDynamicConstraint(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.radius > B.radius
	`)
	require.NoError(t, err)
	require.Contains(t, m.Dn, "A")
	require.Len(t, m.Dn["A"], 1)
	assert.Equal(t, "radius", m.Dn["A"][0].OtherAttr)
	assert.Equal(t, "B", m.Dn["A"][0].OtherEntity)
}

func TestCompileInAndContainsOperators(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.type in ["soma", "axon"]
		A.tags contains "exc"
	`)
	require.NoError(t, err)
	require.Len(t, m.Nc["A"], 2)
	assert.Equal(t, ir.OpIn, m.Nc["A"][0].Op)
	assert.Equal(t, ir.OpContains, m.Nc["A"][1].Op)
}

// TestCompileStringRoundTripPreservesQuotedStringLiteral exercises the full
// compile -> String -> reparse -> compile round trip for a quoted-string
// clause: a bareword and a quoted string lex to distinct literal kinds, so
// m.String() must re-quote LitStr values or the reparsed motif would pick up
// ir.IdentLiteral instead of ir.StrLiteral and fail to compare equal.
func TestCompileStringRoundTripPreservesQuotedStringLiteral(t *testing.T) {
	m1, err := compile.Compile(`
		A -> B
		A.type == "foo"
	`)
	require.NoError(t, err)
	require.Len(t, m1.Nc["A"], 1)
	require.Equal(t, ir.LitStr, m1.Nc["A"][0].Values[0].Kind)

	rendered := m1.String()
	assert.Contains(t, rendered, `"foo"`)

	m2, err := compile.Compile(rendered)
	require.NoError(t, err)

	require.Len(t, m2.Nc["A"], 1)
	assert.Equal(t, ir.LitStr, m2.Nc["A"][0].Values[0].Kind)
	assert.Equal(t, m1.String(), m2.String())
}
