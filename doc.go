// Command-free library root of motifscan: a motif-description DSL and a
// VF2-style subgraph monomorphism search engine.
//
// A motif is written in a small declarative language (package dsl),
// compiled into an intermediate representation (package ir) by package
// compile, and searched for inside a host graph (package graph) by package
// search. Package motif composes the three into a small public API:
//
//	m, err := motif.Compile(`
//	    A -> B
//	    B -> C
//	    C !> A
//	`)
//	cur, err := m.Search(ctx, host, motif.WithExcludeAutomorphisms())
//	for cur.Next() {
//	    fmt.Println(cur.Mapping())
//	}
//
// The search engine separates required ("S+") from forbidden ("S-")
// structural edges, supports node and edge attribute constraints (static
// and dynamic, compared node-to-node or node-to-edge), ANY/ALL
// quantification over multigraph parallel edges, automorphism-aware result
// deduplication, and cooperative cancellation via context.Context.
//
// See cmd/motifscan for a small command-line demonstration.
package motifscan
