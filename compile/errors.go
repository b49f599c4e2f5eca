package compile

import "errors"

// Sentinel errors for the closed error-kind set of spec.md §7 that
// originate during AST lowering (as opposed to parsing, which returns
// *dsl.SyntaxError, or validation, which returns validate.ErrConstraintCollision).
var (
	ErrUndefinedMacro       = errors.New("compile: call to undefined macro")
	ErrMacroArity           = errors.New("compile: macro called with wrong number of arguments")
	ErrMacroRecursion       = errors.New("compile: macro recursion detected")
	ErrDuplicateMacro       = errors.New("compile: macro already defined")
	ErrUnresolvedIdentifier = errors.New("compile: identifier is neither a motif node nor a named edge")
)
