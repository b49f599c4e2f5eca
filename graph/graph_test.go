package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifscan/graph"
)

func TestAddVertexIdempotentMerge(t *testing.T) {
	g := graph.NewGraph()
	require.NoError(t, g.AddVertex("a", map[string]interface{}{"size": 3}))
	require.NoError(t, g.AddVertex("a", map[string]interface{}{"color": "red"}))

	attrs := g.VertexAttrs("a")
	assert.Equal(t, 3, attrs["size"])
	assert.Equal(t, "red", attrs["color"])
	assert.Equal(t, 1, g.VertexCount())
}

func TestAddVertexEmptyID(t *testing.T) {
	g := graph.NewGraph()
	err := g.AddVertex("", nil)
	assert.ErrorIs(t, err, graph.ErrEmptyVertexID)
}

func TestAddEdgeAutoCreatesEndpoints(t *testing.T) {
	g := graph.NewGraph()
	id, err := g.AddEdge("a", "b", map[string]interface{}{"weight": 7})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, g.HasVertex("a"))
	assert.True(t, g.HasVertex("b"))
	assert.True(t, g.HasEdge("a", "b"))
	assert.False(t, g.HasEdge("b", "a"))
}

func TestAddEdgeRejectsLoopByDefault(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddEdge("a", "a", nil)
	assert.ErrorIs(t, err, graph.ErrLoopNotAllowed)
}

func TestAddEdgeLoopsAllowed(t *testing.T) {
	g := graph.NewGraph(graph.WithLoops())
	id, err := g.AddEdge("a", "a", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestAddEdgeRejectsParallelByDefault(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddEdge("a", "b", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("a", "b", nil)
	assert.ErrorIs(t, err, graph.ErrMultiEdgeNotAllowed)
}

func TestAddEdgeParallelAllowedWithMultigraph(t *testing.T) {
	g := graph.NewGraph(graph.WithMultiEdges())
	id1, err := g.AddEdge("a", "b", map[string]interface{}{"weight": 1})
	require.NoError(t, err)
	id2, err := g.AddEdge("a", "b", map[string]interface{}{"weight": 2})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	edges := g.EdgesBetween("a", "b")
	require.Len(t, edges, 2)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestNeighbors(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddEdge("a", "b", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("a", "c", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "a", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, g.OutNeighbors("a"))
	assert.Equal(t, []string{"b"}, g.InNeighbors("a"))
}

func TestRemoveVertexCascadesEdges(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddEdge("a", "b", nil)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", nil)
	require.NoError(t, err)

	require.NoError(t, g.RemoveVertex("b"))
	assert.False(t, g.HasVertex("b"))
	assert.Equal(t, 0, g.EdgeCount())
}

func TestEdgeAttrsEnumeratesParallelEdges(t *testing.T) {
	g := graph.NewGraph(graph.WithMultiEdges())
	_, err := g.AddEdge("a", "b", map[string]interface{}{"weight": 1})
	require.NoError(t, err)
	_, err = g.AddEdge("a", "b", map[string]interface{}{"weight": 9})
	require.NoError(t, err)

	attrSets := g.EdgeAttrs("a", "b")
	require.Len(t, attrSets, 2)
	weights := []interface{}{attrSets[0]["weight"], attrSets[1]["weight"]}
	assert.ElementsMatch(t, []interface{}{1, 9}, weights)
}

func TestHostInterfaceSatisfiedByGraph(t *testing.T) {
	var h graph.Host = graph.NewGraph()
	assert.NotNil(t, h)
}
