package search

import "github.com/katalvlaran/motifscan/ir"

// dynTarget is the resolved shape of a DynamicClause's right-hand side: it
// names either a motif node (whose mapped host vertex's attribute is read
// directly) or a named edge (whose mapped host edge instances' attributes
// are read under the engine's multigraph quantifier).
type dynTarget struct {
	isNode bool
	node   string
	edgeU  string
	edgeV  string
}

// resolveTarget classifies a dynamic clause's OtherEntity as a motif node or
// a named edge. Disambiguation already happened once in package compile;
// this mirrors that same two-way check against the completed IR.
func resolveTarget(m *ir.Motif, entity string) dynTarget {
	if m.HasNode(entity) {
		return dynTarget{isNode: true, node: entity}
	}
	if ne, err := m.ResolveEdgeName(entity); err == nil {
		return dynTarget{edgeU: ne.U, edgeV: ne.V}
	}
	return dynTarget{isNode: true, node: entity}
}

// lookupTargetValue reads the value a dynTarget resolves to against a
// mapping: for a node target, its single attribute; for an edge target, one
// representative value honoring the multigraph quantifier (ANY: the first
// parallel edge carrying the key; ALL: the key's value only if every
// parallel edge agrees on it).
func (e *Engine) lookupTargetValue(t dynTarget, attr string, mapped map[string]string) (interface{}, bool) {
	if t.isNode {
		hostNode, ok := mapped[t.node]
		if !ok {
			return nil, false
		}
		v, ok := e.host.VertexAttrs(hostNode)[attr]
		return v, ok
	}
	x, okx := mapped[t.edgeU]
	y, oky := mapped[t.edgeV]
	if !okx || !oky {
		return nil, false
	}
	edges := e.hostEdgeAttrs(x, y)
	if len(edges) == 0 {
		return nil, false
	}
	switch e.opts.Quantifier {
	case MatchAll:
		first, ok := edges[0][attr]
		if !ok {
			return nil, false
		}
		for _, attrs := range edges[1:] {
			v, ok := attrs[attr]
			if !ok {
				return nil, false
			}
			if eq, cok := equalValues(v, first); !cok || !eq {
				return nil, false
			}
		}
		return first, true
	default: // MatchAny
		for _, attrs := range edges {
			if v, ok := attrs[attr]; ok {
				return v, true
			}
		}
		return nil, false
	}
}

// evalDynamicNodeClause evaluates one Dn entry for motif node "node" (host
// value already resolved through mapped) against its OtherEntity target.
func (e *Engine) evalDynamicNodeClause(node string, c ir.DynamicClause, mapped map[string]string) bool {
	hostNode, ok := mapped[node]
	if !ok {
		return true // not yet resolvable; caller only invokes this once it is
	}
	lhs, lhsOK := e.host.VertexAttrs(hostNode)[c.Attr]
	target := resolveTarget(e.motif, c.OtherEntity)
	rhs, rhsOK := e.lookupTargetValue(target, c.OtherAttr, mapped)
	return evalDynamicCompare(c.Op, lhs, lhsOK, rhs, rhsOK)
}

// evalDynamicEdgeClause evaluates one De entry for edge key (u,v), applying
// the multigraph quantifier across the host's parallel edges for the LHS
// just as satisfiesQuantifier does for static edge clauses.
func (e *Engine) evalDynamicEdgeClause(key ir.EdgeKey, c ir.DynamicClause, mapped map[string]string) bool {
	x, okx := mapped[key.U]
	y, oky := mapped[key.V]
	if !okx || !oky {
		return true
	}
	edges := e.hostEdgeAttrs(x, y)
	target := resolveTarget(e.motif, c.OtherEntity)
	rhs, rhsOK := e.lookupTargetValue(target, c.OtherAttr, mapped)

	satisfies := func(attrs map[string]interface{}) bool {
		lhs, lhsOK := attrs[c.Attr]
		return evalDynamicCompare(c.Op, lhs, lhsOK, rhs, rhsOK)
	}
	if len(edges) == 0 {
		return evalDynamicCompare(c.Op, nil, false, rhs, rhsOK)
	}
	switch e.opts.Quantifier {
	case MatchAll:
		for _, attrs := range edges {
			if !satisfies(attrs) {
				return false
			}
		}
		return true
	default:
		for _, attrs := range edges {
			if satisfies(attrs) {
				return true
			}
		}
		return false
	}
}

// dynamicNodeClausesResolvable reports whether every already-mapped motif
// node's Dn entries whose OtherEntity is also mapped currently hold — used
// both for early pruning during partial matching and for the final
// post-filter pass over any remaining entries.
func (e *Engine) dynamicNodeClausesResolvable(mapped map[string]string) bool {
	for node, clauses := range e.motif.Dn {
		if _, ok := mapped[node]; !ok {
			continue
		}
		for _, c := range clauses {
			target := resolveTarget(e.motif, c.OtherEntity)
			if target.isNode {
				if _, ok := mapped[target.node]; !ok {
					continue
				}
			} else {
				if _, ok := mapped[target.edgeU]; !ok {
					continue
				}
				if _, ok := mapped[target.edgeV]; !ok {
					continue
				}
			}
			if !e.evalDynamicNodeClause(node, c, mapped) {
				return false
			}
		}
	}
	return true
}

// dynamicEdgeClausesHold checks every De entry against a complete mapping
// (spec.md §4.4 post-filter step (c), never evaluated during partial
// matching).
func (e *Engine) dynamicEdgeClausesHold(mapped map[string]string) bool {
	for key, clauses := range e.motif.De {
		for _, c := range clauses {
			if !e.evalDynamicEdgeClause(key, c, mapped) {
				return false
			}
		}
	}
	return true
}
