// Package validate defines the pluggable Validator interface that package
// compile drives during and after AST lowering, plus the two validators
// shipped in the core: EdgeExistenceConsistency and
// ConstraintSatisfiability. Both are grounded line-for-line on dotmotif's
// DisagreeingEdgesValidator and ImpossibleConstraintValidator: equality
// collisions, equality-vs-range violations, empty ranges (strictness-aware),
// in/!in and contains/!contains intersections, and a limited dynamic
// range-impossibility check.
package validate
