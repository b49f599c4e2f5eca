package motif

import "errors"

// ErrInvalidOptions is returned when a CompileOption or SearchOption
// produces a struct that fails its validator.v10 struct-tag checks.
var ErrInvalidOptions = errors.New("motif: invalid options")
