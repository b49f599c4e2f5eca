package ir

import "errors"

// Sentinel errors returned by Motif's invariant-enforcing mutators. Package
// compile returns these to its caller unchanged; package validate
// returns its own richer ErrConstraintCollision for deeper satisfiability
// failures that span multiple entries.
var (
	// ErrEdgeDisagreement is returned when two structural declarations of
	// the same ordered (u,v) pair disagree on Exists (spec.md invariant 3).
	ErrEdgeDisagreement = errors.New("ir: structural edge declared with contradictory existence")

	// ErrUnknownNode is returned when a node-keyed constraint names a node
	// absent from the skeleton.
	ErrUnknownNode = errors.New("ir: constraint references unknown node")

	// ErrUnknownEdge is returned when an edge-keyed constraint names a
	// (u,v) pair absent from the skeleton.
	ErrUnknownEdge = errors.New("ir: constraint references unknown edge")

	// ErrDuplicateEdgeName is returned when a named edge is redeclared
	// against a different underlying edge instance.
	ErrDuplicateEdgeName = errors.New("ir: edge name already bound to a different edge")

	// ErrUnknownEdgeName is returned when a named-edge reference does not
	// resolve to any registered name.
	ErrUnknownEdgeName = errors.New("ir: unknown edge name")
)
