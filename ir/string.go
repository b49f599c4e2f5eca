package ir

import (
	"fmt"
	"sort"
	"strings"
)

// String renders a canonical DSL-like text serialization of the IR: sorted
// edges, sorted constraint buckets, sorted value lists within a bucket. It
// exists to support the idempotence property from spec.md §8
// (compile(t) == compile(pretty_print(compile(t))) modulo value ordering)
// — constraint tables produced from two differently-ordered but semantically
// identical source texts render identically.
//
// Edges, automorphism pairs and node constraints (Nc, Dn) are rendered in
// DSL syntax that Compile accepts. Edge constraints (Ec, De) are not: named
// edges are not re-emitted by name, and their constraints are rendered as
// `U->V.attr OP value` lines keyed by the underlying (u,v) pair, a form the
// DSL parser rejects. A motif with edge constraints therefore does not
// reparse from this text.
func (m *Motif) String() string {
	var b strings.Builder

	edges := append([]StructuralEdge(nil), m.Skeleton.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		if edges[i].V != edges[j].V {
			return edges[i].V < edges[j].V
		}
		return edges[i].Action < edges[j].Action
	})
	for _, e := range edges {
		fmt.Fprintf(&b, "%s %s %s\n", e.U, relationToken(e), e.V)
	}

	var autos []UnorderedPair
	for p := range m.Autos {
		autos = append(autos, p)
	}
	sort.Slice(autos, func(i, j int) bool {
		if autos[i].A != autos[j].A {
			return autos[i].A < autos[j].A
		}
		return autos[i].B < autos[j].B
	})
	for _, p := range autos {
		fmt.Fprintf(&b, "%s === %s\n", p.A, p.B)
	}

	for _, node := range sortedKeys(m.Nc) {
		for _, c := range sortClauses(m.Nc[node]) {
			fmt.Fprintf(&b, "%s.%s %s %s\n", node, c.Attr, c.Op, joinLiterals(c.Values))
		}
	}
	for _, node := range sortedKeysDyn(m.Dn) {
		for _, c := range sortDynamicClauses(m.Dn[node]) {
			fmt.Fprintf(&b, "%s.%s %s %s.%s\n", node, c.Attr, c.Op, c.OtherEntity, c.OtherAttr)
		}
	}

	for _, key := range sortedEdgeKeys(m.Ec) {
		for _, c := range sortClauses(m.Ec[key]) {
			fmt.Fprintf(&b, "%s->%s.%s %s %s\n", key.U, key.V, c.Attr, c.Op, joinLiterals(c.Values))
		}
	}
	for _, key := range sortedEdgeKeysDyn(m.De) {
		for _, c := range sortDynamicClauses(m.De[key]) {
			fmt.Fprintf(&b, "%s->%s.%s %s %s.%s\n", key.U, key.V, c.Attr, c.Op, c.OtherEntity, c.OtherAttr)
		}
	}

	return b.String()
}

func relationToken(e StructuralEdge) string {
	existence := "-"
	if !e.Exists {
		existence = "!"
	}
	switch e.Action {
	case ActionPositive:
		return existence + "+"
	case ActionNegative:
		return existence + "|"
	case ActionCustom:
		return existence + "[" + e.CustomName + "]"
	default:
		return existence + ">"
	}
}

func joinLiterals(vals []Literal) string {
	sorted := append([]Literal(nil), vals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = v.String()
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func sortClauses(in []Clause) []Clause {
	out := append([]Clause(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attr != out[j].Attr {
			return out[i].Attr < out[j].Attr
		}
		if out[i].Op != out[j].Op {
			return out[i].Op < out[j].Op
		}
		return joinLiterals(out[i].Values) < joinLiterals(out[j].Values)
	})
	return out
}

func sortDynamicClauses(in []DynamicClause) []DynamicClause {
	out := append([]DynamicClause(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attr != out[j].Attr {
			return out[i].Attr < out[j].Attr
		}
		if out[i].Op != out[j].Op {
			return out[i].Op < out[j].Op
		}
		if out[i].OtherEntity != out[j].OtherEntity {
			return out[i].OtherEntity < out[j].OtherEntity
		}
		return out[i].OtherAttr < out[j].OtherAttr
	})
	return out
}

func sortedKeys(m map[string][]Clause) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysDyn(m map[string][]DynamicClause) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEdgeKeys(m map[EdgeKey][]Clause) []EdgeKey {
	out := make([]EdgeKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}

func sortedEdgeKeysDyn(m map[EdgeKey][]DynamicClause) []EdgeKey {
	out := make([]EdgeKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}
