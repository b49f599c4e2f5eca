package search

import "context"

// Mapping is one motif-node-to-host-node assignment, keyed by motif node
// name.
type Mapping map[string]string

// frame is one level of the explicit backtracking stack: the motif node at
// this depth, its precomputed host candidates, and the index of the next
// candidate to try.
type frame struct {
	nodeIdx    int
	candidates []string
	pos        int
}

// Cursor is a lazy, non-restartable sequence of mappings produced by one
// Engine over one context. Call Next until it returns false, then check
// Err; a false return with a nil Err means the search is exhausted, not
// cancelled or failed.
type Cursor struct {
	engine *Engine
	ctx    context.Context

	stack  []frame
	mapped []string          // mapped[i] = host node assigned to engine.order[i], "" if unassigned
	used   map[string]string // host node -> motif node, for injectivity

	emptyMotifDone bool
	pendingUnwind  bool
	done           bool
	err            error
	emitted        int
	current        Mapping

	orbits *orbitIndex // computed when the cursor is created, only if ExcludeAutomorphisms is set

	candidatesExplored int
	backtracks         int

	finalized bool
	onFinish  func(candidatesExplored, backtracks, emitted int)
}

// Search starts a new Cursor over the engine's motif and host.
func (e *Engine) Search(ctx context.Context) *Cursor {
	c := &Cursor{
		engine: e,
		ctx:    ctx,
		mapped: make([]string, len(e.order)),
		used:   make(map[string]string, len(e.order)),
	}
	if len(e.order) > 0 {
		c.stack = append(c.stack, frame{nodeIdx: 0, candidates: e.candidates[e.order[0]]})
	}
	if e.opts.ExcludeAutomorphisms {
		c.orbits = computeOrbits(e.motif)
	}
	return c
}

// Err returns the error that stopped the search, if any.
func (c *Cursor) Err() error { return c.err }

// Mapping returns the mapping most recently produced by a successful Next.
func (c *Cursor) Mapping() Mapping { return c.current }

// Next advances the cursor to the next matching mapping. It returns false
// when the search is exhausted, the context is cancelled, or the result
// limit has been reached.
func (c *Cursor) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	if c.engine.opts.ResultLimit > 0 && c.emitted >= c.engine.opts.ResultLimit {
		c.done = true
		c.finalize()
		return false
	}

	if len(c.engine.order) == 0 {
		ok := c.nextEmptyMotif()
		if !ok {
			c.finalize()
		}
		return ok
	}

	if c.pendingUnwind {
		c.unassign(len(c.engine.order) - 1)
		c.pendingUnwind = false
	}

	for {
		if err := c.ctx.Err(); err != nil {
			c.err = ErrSearchCancelled
			c.finalize()
			return false
		}
		if len(c.stack) == 0 {
			c.done = true
			c.finalize()
			return false
		}
		top := &c.stack[len(c.stack)-1]
		if top.pos >= len(top.candidates) {
			c.stack = c.stack[:len(c.stack)-1]
			c.backtracks++
			if len(c.stack) == 0 {
				c.done = true
				c.finalize()
				return false
			}
			c.unassign(c.stack[len(c.stack)-1].nodeIdx)
			continue
		}

		cand := top.candidates[top.pos]
		top.pos++
		c.candidatesExplored++

		if _, taken := c.used[cand]; taken {
			continue
		}
		if !c.edgeFeasible(top.nodeIdx, cand) {
			continue
		}
		c.assign(top.nodeIdx, cand)
		if !c.engine.dynamicNodeClausesResolvable(c.mappedByName()) {
			c.unassign(top.nodeIdx)
			continue
		}

		if top.nodeIdx == len(c.engine.order)-1 {
			if c.passesPostFilters() {
				c.emitted++
				c.pendingUnwind = true
				c.current = c.buildMapping()
				return true
			}
			c.unassign(top.nodeIdx)
			continue
		}

		next := top.nodeIdx + 1
		c.stack = append(c.stack, frame{nodeIdx: next, candidates: c.engine.candidates[c.engine.order[next]]})
	}
}

// finalize runs the attached completion hook exactly once, when the search
// first becomes done, cancelled, or errored. Run installs onFinish to close
// out telemetry and any open tracing span.
func (c *Cursor) finalize() {
	if c.finalized {
		return
	}
	c.finalized = true
	if c.onFinish != nil {
		c.onFinish(c.candidatesExplored, c.backtracks, c.emitted)
	}
}

func (c *Cursor) nextEmptyMotif() bool {
	if c.emptyMotifDone {
		c.done = true
		return false
	}
	if err := c.ctx.Err(); err != nil {
		c.err = ErrSearchCancelled
		return false
	}
	c.emptyMotifDone = true
	c.emitted++
	c.current = Mapping{}
	return true
}

func (c *Cursor) assign(idx int, host string) {
	c.mapped[idx] = host
	c.used[host] = c.engine.order[idx]
}

func (c *Cursor) unassign(idx int) {
	host := c.mapped[idx]
	if host == "" {
		return
	}
	delete(c.used, host)
	c.mapped[idx] = ""
}

func (c *Cursor) mappedByName() map[string]string {
	out := make(map[string]string, len(c.mapped))
	for i, host := range c.mapped {
		if host != "" {
			out[c.engine.order[i]] = host
		}
	}
	return out
}

func (c *Cursor) buildMapping() Mapping {
	m := make(Mapping, len(c.mapped))
	for i, host := range c.mapped {
		m[c.engine.order[i]] = host
	}
	return m
}

// edgeFeasible checks, for the motif node at nodeIdx being tentatively
// mapped to cand, that every S+ edge between it and an already-mapped
// motif node has a corresponding host edge (spec.md §4.4 step 3). It does
// not check edge attribute constraints — those are deferred to the final
// post-filter.
func (c *Cursor) edgeFeasible(nodeIdx int, cand string) bool {
	node := c.engine.order[nodeIdx]
	for _, edge := range c.engine.motif.PositiveEdges() {
		switch {
		case edge.U == node && edge.V == node:
			if !c.engine.hostHasEdge(cand, cand) {
				return false
			}
		case edge.U == node:
			other := c.hostOf(edge.V)
			if other == "" {
				continue
			}
			if !c.engine.hostHasEdge(cand, other) {
				return false
			}
		case edge.V == node:
			other := c.hostOf(edge.U)
			if other == "" {
				continue
			}
			if !c.engine.hostHasEdge(other, cand) {
				return false
			}
		}
	}
	return true
}

// hostOf returns the host node currently mapped to motif node name, or ""
// if name is not yet mapped.
func (c *Cursor) hostOf(name string) string {
	for i, mn := range c.engine.order {
		if mn == name {
			return c.mapped[i]
		}
	}
	return ""
}

// passesPostFilters runs the fixed-order final checks of spec.md §4.4 step
// 4 against a just-completed mapping.
func (c *Cursor) passesPostFilters() bool {
	mapped := c.mappedByName()

	for _, edge := range c.engine.motif.NegativeEdges() {
		x, y := mapped[edge.U], mapped[edge.V]
		if c.engine.hostHasEdge(x, y) {
			return false
		}
	}

	for key, clauses := range c.engine.motif.Ec {
		x, y := mapped[key.U], mapped[key.V]
		if !c.engine.satisfiesQuantifier(x, y, clauses) {
			return false
		}
	}

	if !c.engine.dynamicEdgeClausesHold(mapped) {
		return false
	}

	if !c.engine.dynamicNodeClausesResolvable(mapped) {
		return false
	}

	if c.engine.opts.ExcludeAutomorphisms && c.orbits != nil {
		if !c.orbits.isLexSmallest(mapped) {
			return false
		}
	}

	return true
}
