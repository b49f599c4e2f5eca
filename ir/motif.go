package ir

import "fmt"

// StructuralEdge is one entry of the skeleton multigraph. Two declarations
// of the same (U, V) merge into a single StructuralEdge when they agree on
// Exists and Action; when they agree on Exists but differ on Action they are
// kept as distinct parallel edges (a multi-edge motif); when they disagree
// on Exists, AddStructuralEdge rejects the second declaration.
type StructuralEdge struct {
	U, V       string
	Exists     bool
	Action     ActionTag
	CustomName string // meaningful only when Action == ActionCustom
}

// EdgeKey identifies an ordered pair of motif nodes for constraint-table
// lookups. Direction matters: (u,v) and (v,u) are distinct keys.
type EdgeKey struct{ U, V string }

// UnorderedPair identifies a declared automorphism; A is always <= B
// lexicographically so that {x,y} and {y,x} hash identically.
type UnorderedPair struct{ A, B string }

// NewUnorderedPair builds a normalized UnorderedPair from two node names.
func NewUnorderedPair(a, b string) UnorderedPair {
	if a <= b {
		return UnorderedPair{A: a, B: b}
	}
	return UnorderedPair{A: b, B: a}
}

// Clause is a static constraint: an attribute compared against a fixed list
// of literals (a singleton for ==/!=/order ops, a set for in/!in/contains).
type Clause struct {
	Attr   string
	Op     Op
	Values []Literal
}

// DynamicClause is a constraint comparing one entity's attribute against
// another entity's attribute, resolved at search time against the host.
type DynamicClause struct {
	Attr        string
	Op          Op
	OtherEntity string
	OtherAttr   string
}

// NamedEdge records the edge instance addressed by a motif's `as NAME`
// clause, so later constraints on NAME.attr resolve to this specific
// skeleton entry even when the edge is one of several parallel edges
// between the same pair.
type NamedEdge struct {
	Name      string
	U, V      string
	EdgeIndex int
}

// Skeleton is the structural multigraph: the ordered list of declared
// edges. Order is insertion order and is not itself meaningful, but keeping
// a stable slice (rather than a set) lets parallel edges with distinct
// Action values coexist under the same (U, V).
type Skeleton struct {
	Edges []StructuralEdge
}

// Motif is the compiled, immutable intermediate representation of a motif.
// Build one with NewMotif and populate it through the Add* mutators, which
// enforce the IR's structural invariants as data arrives; package compile
// drives this during AST lowering.
type Motif struct {
	Skeleton Skeleton
	Named    map[string]NamedEdge
	Nc       map[string][]Clause
	Ec       map[EdgeKey][]Clause
	Dn       map[string][]DynamicClause
	De       map[EdgeKey][]DynamicClause
	Autos    map[UnorderedPair]struct{}
}

// NewMotif returns an empty, ready-to-populate Motif.
func NewMotif() *Motif {
	return &Motif{
		Named: make(map[string]NamedEdge),
		Nc:    make(map[string][]Clause),
		Ec:    make(map[EdgeKey][]Clause),
		Dn:    make(map[string][]DynamicClause),
		De:    make(map[EdgeKey][]DynamicClause),
		Autos: make(map[UnorderedPair]struct{}),
	}
}

// Nodes returns the distinct set of node names appearing in the skeleton, in
// first-seen order.
func (m *Motif) Nodes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range m.Skeleton.Edges {
		for _, n := range [2]string{e.U, e.V} {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	return out
}

// HasNode reports whether name appears as an endpoint of some skeleton edge.
func (m *Motif) HasNode(name string) bool {
	for _, e := range m.Skeleton.Edges {
		if e.U == name || e.V == name {
			return true
		}
	}
	return false
}

// EdgeExists reports whether some skeleton entry connects (u,v), regardless
// of Exists/Action.
func (m *Motif) EdgeExists(u, v string) bool {
	for _, e := range m.Skeleton.Edges {
		if e.U == u && e.V == v {
			return true
		}
	}
	return false
}

// AddStructuralEdge inserts or merges a structural edge declaration. It
// returns the index of the (possibly pre-existing) edge in m.Skeleton.Edges,
// and whether the call merged into an existing entry rather than appending.
//
// Enforces invariant 3 (spec.md §3): two declarations of the same (u,v) that
// disagree on Exists yield ErrEdgeDisagreement. Declarations that agree on
// Exists but differ on Action produce a distinct parallel edge rather than
// an error, per spec.md §4.2's dedup rule.
func (m *Motif) AddStructuralEdge(u, v string, exists bool, action ActionTag, customName string) (int, bool, error) {
	for i, e := range m.Skeleton.Edges {
		if e.U != u || e.V != v {
			continue
		}
		if e.Exists != exists {
			return 0, false, fmt.Errorf("ir: edge (%s,%s): %w", u, v, ErrEdgeDisagreement)
		}
		if e.Action == action && e.CustomName == customName {
			return i, true, nil
		}
	}
	m.Skeleton.Edges = append(m.Skeleton.Edges, StructuralEdge{
		U: u, V: v, Exists: exists, Action: action, CustomName: customName,
	})
	return len(m.Skeleton.Edges) - 1, false, nil
}

// AddNamedEdge binds name to the skeleton entry at edgeIndex. Re-binding the
// same name to the same edge instance is a no-op; re-binding it to a
// different edge instance is an error (names are unique within a motif,
// spec.md §3).
func (m *Motif) AddNamedEdge(name string, edgeIndex int) error {
	if edgeIndex < 0 || edgeIndex >= len(m.Skeleton.Edges) {
		return fmt.Errorf("ir: named edge %q: %w", name, ErrUnknownEdge)
	}
	e := m.Skeleton.Edges[edgeIndex]
	if existing, ok := m.Named[name]; ok {
		if existing.EdgeIndex == edgeIndex {
			return nil
		}
		return fmt.Errorf("ir: edge name %q: %w", name, ErrDuplicateEdgeName)
	}
	m.Named[name] = NamedEdge{Name: name, U: e.U, V: e.V, EdgeIndex: edgeIndex}
	return nil
}

// ResolveEdgeName looks up a previously registered named edge.
func (m *Motif) ResolveEdgeName(name string) (NamedEdge, error) {
	ne, ok := m.Named[name]
	if !ok {
		return NamedEdge{}, fmt.Errorf("ir: %q: %w", name, ErrUnknownEdgeName)
	}
	return ne, nil
}

// AddNodeConstraint appends a static clause to Nc[node]. Enforces invariant
// 2: node must be a skeleton endpoint.
func (m *Motif) AddNodeConstraint(node string, c Clause) error {
	if !m.HasNode(node) {
		return fmt.Errorf("ir: node %q: %w", node, ErrUnknownNode)
	}
	m.Nc[node] = append(m.Nc[node], c)
	return nil
}

// AddDynamicNodeConstraint appends a dynamic clause to Dn[node].
func (m *Motif) AddDynamicNodeConstraint(node string, c DynamicClause) error {
	if !m.HasNode(node) {
		return fmt.Errorf("ir: node %q: %w", node, ErrUnknownNode)
	}
	m.Dn[node] = append(m.Dn[node], c)
	return nil
}

// AddEdgeConstraint appends a static clause to Ec[(u,v)]. Enforces
// invariant 2: (u,v) must exist in the skeleton.
func (m *Motif) AddEdgeConstraint(u, v string, c Clause) error {
	if !m.EdgeExists(u, v) {
		return fmt.Errorf("ir: edge (%s,%s): %w", u, v, ErrUnknownEdge)
	}
	key := EdgeKey{U: u, V: v}
	m.Ec[key] = append(m.Ec[key], c)
	return nil
}

// AddDynamicEdgeConstraint appends a dynamic clause to De[(u,v)].
func (m *Motif) AddDynamicEdgeConstraint(u, v string, c DynamicClause) error {
	if !m.EdgeExists(u, v) {
		return fmt.Errorf("ir: edge (%s,%s): %w", u, v, ErrUnknownEdge)
	}
	key := EdgeKey{U: u, V: v}
	m.De[key] = append(m.De[key], c)
	return nil
}

// AddAutomorphism records an explicit A === B declaration.
func (m *Motif) AddAutomorphism(a, b string) error {
	if !m.HasNode(a) {
		return fmt.Errorf("ir: automorphism: node %q: %w", a, ErrUnknownNode)
	}
	if !m.HasNode(b) {
		return fmt.Errorf("ir: automorphism: node %q: %w", b, ErrUnknownNode)
	}
	m.Autos[NewUnorderedPair(a, b)] = struct{}{}
	return nil
}

// PositiveEdges returns the skeleton entries with Exists == true.
func (m *Motif) PositiveEdges() []StructuralEdge {
	var out []StructuralEdge
	for _, e := range m.Skeleton.Edges {
		if e.Exists {
			out = append(out, e)
		}
	}
	return out
}

// NegativeEdges returns the skeleton entries with Exists == false.
func (m *Motif) NegativeEdges() []StructuralEdge {
	var out []StructuralEdge
	for _, e := range m.Skeleton.Edges {
		if !e.Exists {
			out = append(out, e)
		}
	}
	return out
}

// PropagateAutomorphisms deep-merges Nc[a] and Nc[b] for every explicit
// automorphism pair, per spec.md §4.2 step 6: after propagation, Nc[a] and
// Nc[b] are set-equal. Only declared pairs are considered — implicit
// structural symmetries never propagate constraints (spec.md §9).
//
// Pairs that share a node (A === B, B === C) are merged over repeated
// passes, one pass per declared pair, so constraints reach every node of a
// chain regardless of the order in which pairs are visited.
func (m *Motif) PropagateAutomorphisms() {
	for range m.Autos {
		for pair := range m.Autos {
			merged := mergeClauses(m.Nc[pair.A], m.Nc[pair.B])
			m.Nc[pair.A] = merged
			m.Nc[pair.B] = cloneClauses(merged)
		}
	}
}

// mergeClauses deep-merges two clause slices, grouping by (Attr, Op) and
// unioning value lists (deduplicated, since Literal is comparable).
func mergeClauses(a, b []Clause) []Clause {
	type key struct {
		Attr string
		Op   Op
	}
	order := make([]key, 0, len(a)+len(b))
	values := make(map[key]map[Literal]struct{})

	add := func(c Clause) {
		k := key{Attr: c.Attr, Op: c.Op}
		set, ok := values[k]
		if !ok {
			set = make(map[Literal]struct{})
			values[k] = set
			order = append(order, k)
		}
		for _, v := range c.Values {
			set[v] = struct{}{}
		}
	}
	for _, c := range a {
		add(c)
	}
	for _, c := range b {
		add(c)
	}

	out := make([]Clause, 0, len(order))
	for _, k := range order {
		set := values[k]
		vals := make([]Literal, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		out = append(out, Clause{Attr: k.Attr, Op: k.Op, Values: vals})
	}
	return out
}

func cloneClauses(in []Clause) []Clause {
	out := make([]Clause, len(in))
	for i, c := range in {
		vals := make([]Literal, len(c.Values))
		copy(vals, c.Values)
		out[i] = Clause{Attr: c.Attr, Op: c.Op, Values: vals}
	}
	return out
}
