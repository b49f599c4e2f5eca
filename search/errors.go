package search

import "errors"

// ErrSearchCancelled is returned by Cursor.Next when the caller's context is
// cancelled mid-search (spec.md §7 error kind 8). Mappings already emitted
// before cancellation remain valid.
var ErrSearchCancelled = errors.New("search: cancelled")

// ErrInvalidQuantifier is returned by NewEngine when Options.Quantifier is
// not one of MatchAny or MatchAll.
var ErrInvalidQuantifier = errors.New("search: invalid multigraph quantifier")

// ErrNegativeLimit is returned by NewEngine when Options.ResultLimit is
// negative; zero means unlimited.
var ErrNegativeLimit = errors.New("search: result limit must be >= 0")
