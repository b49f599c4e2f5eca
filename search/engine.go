package search

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/ir"
)

// nodeHostPair is the memoization key for node-attribute match results,
// grounded on the reference engine's @lru_cache()-wrapped node-attr matcher.
type nodeHostPair struct {
	motifNode string
	hostNode  string
}

// Engine holds everything derived from one (*ir.Motif, graph.Host, Options)
// triple that is reused across an entire search: the candidate order,
// per-motif-node candidate sets, and the node-attribute-match cache. It is
// read-only once built, so the same Engine may back multiple concurrent
// Cursors.
type Engine struct {
	motif *ir.Motif
	host  graph.Host
	opts  Options

	order      []string            // motif node visitation order
	candidates map[string][]string // motif node -> feasible host nodes, precomputed once

	attrCache *lru.Cache[nodeHostPair, bool]
}

// NewEngine builds an Engine for one motif/host/options combination. It
// validates opts, precomputes per-motif-node candidate sets by sweeping
// host nodes through Nc, and derives the VF2 visitation order.
func NewEngine(m *ir.Motif, host graph.Host, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cache, _ := lru.New[nodeHostPair, bool](4096)
	e := &Engine{motif: m, host: host, opts: opts, attrCache: cache}
	e.precomputeCandidates()
	e.order = e.buildOrder()
	return e, nil
}

func (e *Engine) matchesNodeConstraints(motifNode, hostNode string) bool {
	key := nodeHostPair{motifNode: motifNode, hostNode: hostNode}
	if v, ok := e.attrCache.Get(key); ok {
		return v
	}
	attrs := e.host.VertexAttrs(hostNode)
	result := matchesClauses(attrs, e.motif.Nc[motifNode])
	e.attrCache.Add(key, result)
	return result
}

func (e *Engine) precomputeCandidates() {
	e.candidates = make(map[string][]string)
	hostNodes := append([]string(nil), e.host.Nodes()...)
	sort.Strings(hostNodes)
	for _, mn := range e.motif.Nodes() {
		var cands []string
		for _, hn := range hostNodes {
			if e.matchesNodeConstraints(mn, hn) {
				cands = append(cands, hn)
			}
		}
		e.candidates[mn] = cands
	}
}

// buildOrder computes the VF2 visitation order: the first node is the one
// with the fewest feasible candidates; each subsequent node is the
// not-yet-ordered node with the most S+ edges into the already-ordered set
// (so structural pruning kicks in as early as possible), breaking ties by
// fewest candidates, then by name for determinism. Nodes unreachable from
// the first choice (a disconnected motif) are appended the same way,
// restarting from whichever remaining node has fewest candidates.
func (e *Engine) buildOrder() []string {
	nodes := e.motif.Nodes()
	if len(nodes) == 0 {
		return nil
	}
	sort.Strings(nodes)

	adj := make(map[string]map[string]struct{}, len(nodes))
	for _, n := range nodes {
		adj[n] = make(map[string]struct{})
	}
	for _, edge := range e.motif.PositiveEdges() {
		adj[edge.U][edge.V] = struct{}{}
		adj[edge.V][edge.U] = struct{}{}
	}

	remaining := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		remaining[n] = struct{}{}
	}
	ordered := make(map[string]struct{}, len(nodes))
	var order []string

	pickSeed := func() string {
		best := ""
		bestLen := -1
		for n := range remaining {
			l := len(e.candidates[n])
			if bestLen == -1 || l < bestLen || (l == bestLen && n < best) {
				best, bestLen = n, l
			}
		}
		return best
	}

	for len(remaining) > 0 {
		var next string
		bestScore := -1
		bestCandLen := -1
		for n := range remaining {
			score := 0
			for other := range adj[n] {
				if _, in := ordered[other]; in {
					score++
				}
			}
			if score == 0 {
				continue
			}
			l := len(e.candidates[n])
			if next == "" || score > bestScore ||
				(score == bestScore && l < bestCandLen) ||
				(score == bestScore && l == bestCandLen && n < next) {
				next, bestScore, bestCandLen = n, score, l
			}
		}
		if next == "" {
			next = pickSeed()
		}
		order = append(order, next)
		ordered[next] = struct{}{}
		delete(remaining, next)
	}
	return order
}

// hostHasEdge reports whether the host has an edge from x to y, treating
// S+/S- presence as undirected when IgnoreDirection is set.
func (e *Engine) hostHasEdge(x, y string) bool {
	if e.host.HasEdge(x, y) {
		return true
	}
	return e.opts.IgnoreDirection && e.host.HasEdge(y, x)
}

// hostEdgeAttrs returns every parallel edge's attribute map between x and y,
// honoring IgnoreDirection by also including edges stored in reverse.
func (e *Engine) hostEdgeAttrs(x, y string) []map[string]interface{} {
	out := e.host.EdgeAttrs(x, y)
	if e.opts.IgnoreDirection {
		out = append(out, e.host.EdgeAttrs(y, x)...)
	}
	return out
}

// satisfiesQuantifier applies the configured multigraph quantifier to one
// edge constraint bucket against the host edges between x and y.
func (e *Engine) satisfiesQuantifier(x, y string, clauses []ir.Clause) bool {
	edges := e.hostEdgeAttrs(x, y)
	if len(edges) == 0 {
		return false
	}
	switch e.opts.Quantifier {
	case MatchAll:
		for _, attrs := range edges {
			if !matchesClauses(attrs, clauses) {
				return false
			}
		}
		return true
	default: // MatchAny
		for _, attrs := range edges {
			if matchesClauses(attrs, clauses) {
				return true
			}
		}
		return false
	}
}
