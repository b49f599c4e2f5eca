// Package ir defines the Motif intermediate representation: the compiled,
// immutable form of a motif that the search engine executes against a host
// graph.
//
// A Motif holds a structural skeleton (a directed multigraph of edges tagged
// with existence and action), a named-edge table, static and dynamic
// constraint tables for nodes and edges, and a set of declared automorphism
// pairs. Mutator methods on Motif enforce the IR's structural invariants
// (edge-existence agreement, node/edge-key resolution) as data is added;
// package compile drives those mutators while lowering a parsed motif, and
// package validate runs deeper satisfiability checks once the IR is
// complete.
//
// Motif values are built once and never mutated again: the search engine
// treats a *Motif as read-only for the lifetime of any number of concurrent
// searches.
package ir
