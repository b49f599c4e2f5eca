package motif_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/motif"
	"github.com/katalvlaran/motifscan/search"
)

func TestCompileAndCount(t *testing.T) {
	m, err := motif.Compile("A -> B")
	require.NoError(t, err)

	g := graph.NewGraph()
	_, err = g.AddEdge("x", "y", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("x", "z", nil)
	require.NoError(t, err)

	n, err := m.Count(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSearchWithExcludeAutomorphisms(t *testing.T) {
	m, err := motif.Compile(`
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

	all, err := m.Count(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 2, all)

	deduped, err := m.Count(context.Background(), g, motif.WithExcludeAutomorphisms())
	require.NoError(t, err)
	assert.Equal(t, 1, deduped)
}

func TestSearchResultLimit(t *testing.T) {
	m, err := motif.Compile("A -> B")
	require.NoError(t, err)
	g := graph.NewGraph()
	for _, to := range []string{"y1", "y2", "y3"} {
		_, err := g.AddEdge("x", to, nil)
		require.NoError(t, err)
	}

	n, err := m.Count(context.Background(), g, motif.WithResultLimit(2))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSearchRejectsInvalidOptions(t *testing.T) {
	m, err := motif.Compile("A -> B")
	require.NoError(t, err)
	g := graph.NewGraph()

	_, err = m.Search(context.Background(), g, motif.WithResultLimit(-1))
	assert.ErrorIs(t, err, motif.ErrInvalidOptions)
}

func TestMultigraphQuantifier(t *testing.T) {
	m, err := motif.Compile(`a -> b [size > 15]`)
	require.NoError(t, err)

	g := graph.NewGraph(graph.WithMultiEdges())
	_, err = g.AddEdge("A", "B", map[string]interface{}{"size": int64(10)})
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", map[string]interface{}{"size": int64(20)})
	require.NoError(t, err)

	anyN, err := m.Count(context.Background(), g, motif.WithMultigraphEdgeMatch(search.MatchAny))
	require.NoError(t, err)
	assert.Equal(t, 1, anyN)

	allN, err := m.Count(context.Background(), g, motif.WithMultigraphEdgeMatch(search.MatchAll))
	require.NoError(t, err)
	assert.Equal(t, 0, allN)
}

func TestCountAllAcrossHosts(t *testing.T) {
	m, err := motif.Compile("A -> B")
	require.NoError(t, err)

	g1 := graph.NewGraph()
	_, err = g1.AddEdge("x", "y", nil)
	require.NoError(t, err)

	g2 := graph.NewGraph()
	_, err = g2.AddEdge("p", "q", nil)
	require.NoError(t, err)
	_, err = g2.AddEdge("p", "r", nil)
	require.NoError(t, err)

	counts, err := m.CountAll(context.Background(), []graph.Host{g1, g2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestCompilePropagatesSyntaxError(t *testing.T) {
	_, err := motif.Compile("A -> ")
	assert.Error(t, err)
}
