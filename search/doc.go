// Package search implements the VF2-style subgraph monomorphism engine
// described by the motif intermediate representation: positive/negative
// edge separation, candidate-pair ordering by fewest feasible candidates,
// per-step injectivity and structural pruning, a fixed post-filter order
// (negative edges, static edge constraints under a multigraph quantifier,
// dynamic edge constraints, dynamic node constraints, automorphism
// exclusion), and cooperative cancellation via context.Context.
//
// The engine never recurses: backtracking state lives on an explicit stack
// of frames held by Cursor, so a paused search is just that stack plus a
// cursor position. The automorphism computation over the motif's own small
// skeleton is the one recursive walk in this package.
package search
