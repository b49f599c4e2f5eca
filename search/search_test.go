package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifscan/compile"
	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/ir"
	"github.com/katalvlaran/motifscan/search"
)

func countAll(t *testing.T, m *ir.Motif, host graph.Host, opts search.Options) int {
	t.Helper()
	eng, err := search.NewEngine(m, host, opts)
	require.NoError(t, err)
	cur := eng.Search(context.Background())
	n := 0
	for cur.Next() {
		n++
	}
	require.NoError(t, cur.Err())
	return n
}

// Scenario 1: edge count.
func TestScenarioEdgeCount(t *testing.T) {
	m, err := compile.Compile("A -> B")
	require.NoError(t, err)

	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("x", "z", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, countAll(t, m, g, search.Options{}))
}

// Scenario 2: triangle with attribute.
func TestScenarioTriangleWithAttribute(t *testing.T) {
	m, err := compile.Compile(`
		A -> B [weight >= 7]
		B -> C
		C -> A
	`)
	require.NoError(t, err)

	g := graph.NewGraph()
	edges := []struct {
		from, to string
		weight   int64
	}{
		{"x", "y", 1}, {"y", "z", 10}, {"z", "x", 5},
		{"z", "a", 5}, {"a", "b", 1}, {"b", "c", 10}, {"c", "a", 5},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.from, e.to, map[string]interface{}{"weight": e.weight})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, countAll(t, m, g, search.Options{}))
}

// Scenario 3: negative edge.
func TestScenarioNegativeEdge(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A -> C
		B !> C
	`)
	require.NoError(t, err)

	g := graph.NewGraph()
	for _, to := range []string{"B", "C", "D"} {
		_, err := g.AddEdge("A", to, nil)
		require.NoError(t, err)
	}

	eng, err := search.NewEngine(m, g, search.Options{})
	require.NoError(t, err)
	cur := eng.Search(context.Background())
	var mappings []search.Mapping
	for cur.Next() {
		mp := cur.Mapping()
		cp := make(search.Mapping, len(mp))
		for k, v := range mp {
			cp[k] = v
		}
		mappings = append(mappings, cp)
	}
	require.NoError(t, cur.Err())
	for _, mp := range mappings {
		assert.False(t, g.HasEdge(mp["B"], mp["C"]), "B!>C must hold for %v", mp)
	}
	assert.NotEmpty(t, mappings)
}

// Scenario 4: automorphism dedup.
func TestScenarioAutomorphismDedup(t *testing.T) {
	m, err := compile.Compile(`
		A -> C
		B -> C
		A === B
	`)
	require.NoError(t, err)

	g := graph.NewGraph()
	_, err = g.AddEdge("X", "Z", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("Y", "Z", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, countAll(t, m, g, search.Options{}))
	assert.Equal(t, 1, countAll(t, m, g, search.Options{ExcludeAutomorphisms: true}))
}

// Scenario 5: multigraph ANY vs ALL.
func TestScenarioMultigraphAnyVsAll(t *testing.T) {
	m, err := compile.Compile(`a -> b [size > 15]`)
	require.NoError(t, err)

	g := graph.NewGraph(graph.WithMultiEdges())
	_, err = g.AddEdge("A", "B", map[string]interface{}{"size": int64(10)})
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", map[string]interface{}{"size": int64(20)})
	require.NoError(t, err)

	assert.Equal(t, 1, countAll(t, m, g, search.Options{Quantifier: search.MatchAny}))
	assert.Equal(t, 0, countAll(t, m, g, search.Options{Quantifier: search.MatchAll}))
}

// Scenario 6: dynamic node constraint.
func TestScenarioDynamicNodeConstraint(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.radius > B.radius
	`)
	require.NoError(t, err)

	g := graph.NewGraph()
	for _, e := range []struct{ from, to string }{{"A", "B"}, {"B", "C"}, {"C", "A"}} {
		_, err := g.AddEdge(e.from, e.to, nil)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex("A", map[string]interface{}{"radius": int64(25)}))
	require.NoError(t, g.AddVertex("B", map[string]interface{}{"radius": int64(10)}))
	require.NoError(t, g.AddVertex("C", map[string]interface{}{"radius": int64(5)}))

	assert.Equal(t, 2, countAll(t, m, g, search.Options{}))
}

func TestResultLimitIsPrefixOfUnlimited(t *testing.T) {
	m, err := compile.Compile("A -> B")
	require.NoError(t, err)
	g := graph.NewGraph()
	for _, to := range []string{"y1", "y2", "y3", "y4"} {
		_, err := g.AddEdge("x", to, nil)
		require.NoError(t, err)
	}

	unlimited := countAll(t, m, g, search.Options{})
	limited := countAll(t, m, g, search.Options{ResultLimit: 2})
	assert.Equal(t, 4, unlimited)
	assert.Equal(t, 2, limited)
}

func TestEmptyMotifEmitsOneEmptyMapping(t *testing.T) {
	m, err := compile.Compile("")
	require.NoError(t, err)
	g := graph.NewGraph()
	require.NoError(t, g.AddVertex("x", nil))

	eng, err := search.NewEngine(m, g, search.Options{})
	require.NoError(t, err)
	cur := eng.Search(context.Background())
	require.True(t, cur.Next())
	assert.Empty(t, cur.Mapping())
	require.False(t, cur.Next())
	require.NoError(t, cur.Err())
}

func TestMissingAttributeVacuousSuccess(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.kind != "soma"
	`)
	require.NoError(t, err)
	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil) // x has no "kind" attribute
	require.NoError(t, err)

	assert.Equal(t, 1, countAll(t, m, g, search.Options{}))
}

func TestMissingAttributeOtherOpsFail(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		A.kind == "soma"
	`)
	require.NoError(t, err)
	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, countAll(t, m, g, search.Options{}))
}

func TestMonomorphismIsInjective(t *testing.T) {
	m, err := compile.Compile(`
		A -> B
		B -> A
	`)
	require.NoError(t, err)
	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("y", "x", nil)
	require.NoError(t, err)

	eng, err := search.NewEngine(m, g, search.Options{})
	require.NoError(t, err)
	cur := eng.Search(context.Background())
	for cur.Next() {
		mp := cur.Mapping()
		assert.NotEqual(t, mp["A"], mp["B"])
	}
	require.NoError(t, cur.Err())
}

func TestCancellationStopsSearch(t *testing.T) {
	m, err := compile.Compile("A -> B")
	require.NoError(t, err)
	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, err := search.NewEngine(m, g, search.Options{})
	require.NoError(t, err)
	cur := eng.Search(ctx)
	assert.False(t, cur.Next())
	assert.ErrorIs(t, cur.Err(), search.ErrSearchCancelled)
}

func TestIgnoreDirectionReversesSymmetrically(t *testing.T) {
	forward, err := compile.Compile("A -> B")
	require.NoError(t, err)
	reversed, err := compile.Compile("B -> A")
	require.NoError(t, err)

	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)

	opts := search.Options{IgnoreDirection: true}
	assert.Equal(t, countAll(t, forward, g, opts), countAll(t, reversed, g, opts))
}

func TestInvalidOptionsRejected(t *testing.T) {
	m, err := compile.Compile("A -> B")
	require.NoError(t, err)
	g := graph.NewGraph()

	_, err = search.NewEngine(m, g, search.Options{ResultLimit: -1})
	assert.ErrorIs(t, err, search.ErrNegativeLimit)
}
