// Package graph provides the host-graph abstraction searched by the motif
// engine: a concurrency-safe, directed multigraph whose vertices and edges
// carry arbitrary attribute maps.
//
// Model:
//   - Vertex{ID, Attrs} — Attrs holds arbitrary keyed attributes (ints,
//     floats, strings, bools) consulted by dynamic and static constraints.
//   - Edge{ID, From, To, Attrs} — parallel edges between the same pair of
//     vertices are permitted when the graph is constructed WithMultiEdges.
//
// Host is the read-only capability surface the search engine consumes; *Graph
// implements it. Hosts are never mutated during a search: the engine only
// enumerates nodes, walks neighbor sets, and reads attribute maps.
//
// Concurrency: all mutating methods hold muVert/muEdgeAdj write locks; all
// readers (including Host methods) hold the matching read lock. A *Graph may
// be built once and then shared read-only across concurrent searches.
package graph
