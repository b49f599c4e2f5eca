package graph

import "errors"

// Sentinel errors returned by Graph mutators. Wrap with fmt.Errorf("%w", ...)
// when additional context (vertex/edge IDs) is useful to the caller.
var (
	ErrEmptyVertexID    = errors.New("graph: empty vertex id")
	ErrVertexNotFound   = errors.New("graph: vertex not found")
	ErrVertexExists     = errors.New("graph: vertex already exists")
	ErrEdgeNotFound     = errors.New("graph: edge not found")
	ErrLoopNotAllowed   = errors.New("graph: self-loop not allowed")
	ErrMultiEdgeNotAllowed = errors.New("graph: parallel edge not allowed")
)
