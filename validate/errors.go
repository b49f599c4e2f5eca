package validate

import "errors"

// ErrConstraintCollision is returned by ConstraintSatisfiability for any of
// the six inconsistency shapes it detects: equality/equality disagreement,
// equality violating a range bound, an empty interval, an in/!in
// intersection, a contains/!contains intersection, or an impossible dynamic
// range (spec.md §4.3, error kind 7 of spec.md §7).
var ErrConstraintCollision = errors.New("validate: inconsistent static constraints")
