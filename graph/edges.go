package graph

import (
	"bytes"
	"sort"
	"strconv"
	"sync/atomic"
)

// AddEdge inserts a directed edge from "from" to "to" carrying attrs.
// Endpoints are auto-created if absent. Returns the new edge's generated ID.
//
// Validation order mirrors the host's construction-time policy: loop check,
// then multi-edge check, then insertion — so callers get the most specific
// applicable error.
func (g *Graph) AddEdge(from, to string, attrs map[string]interface{}) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}

	g.muVert.Lock()
	if from == to && !g.allowLoops {
		g.muVert.Unlock()
		return "", ErrLoopNotAllowed
	}
	if _, ok := g.vertices[from]; !ok {
		g.vertices[from] = &Vertex{ID: from, Attrs: make(map[string]interface{})}
	}
	if _, ok := g.vertices[to]; !ok {
		g.vertices[to] = &Vertex{ID: to, Attrs: make(map[string]interface{})}
	}
	allowMulti := g.allowMulti
	g.muVert.Unlock()

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !allowMulti && len(g.out[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	id := genEdgeID(g)
	e := &Edge{ID: id, From: from, To: to, Attrs: copyAttrs(attrs)}
	g.edges[id] = e
	ensureBucket(g.out, from, to)[id] = struct{}{}
	ensureBucket(g.in, to, from)[id] = struct{}{}
	return id, nil
}

// GetEdge returns the edge with the given ID, or ErrEdgeNotFound.
func (g *Graph) GetEdge(id string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	return e, nil
}

// RemoveEdge deletes the edge with the given ID.
func (g *Graph) RemoveEdge(id string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	e, ok := g.edges[id]
	if !ok {
		return ErrEdgeNotFound
	}
	removeAdjacency(g, e)
	delete(g.edges, id)
	return nil
}

// EdgesBetween returns every parallel edge from "from" to "to", sorted by
// edge ID for determinism.
func (g *Graph) EdgesBetween(from, to string) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	ids := g.out[from][to]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Edge, 0, len(ids))
	for id := range ids {
		out = append(out, g.edges[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyAttrs(attrs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// genEdgeID produces a compact, monotonically increasing edge ID without
// going through fmt.Sprintf's allocation-heavy formatting path.
func genEdgeID(g *Graph) string {
	seq := atomic.AddUint64(&g.nextEdgeSeq, 1)
	var buf bytes.Buffer
	buf.WriteByte('e')
	buf.WriteString(strconv.FormatUint(seq, 10))
	return buf.String()
}
