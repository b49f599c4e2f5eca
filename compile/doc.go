// Package compile lowers a parsed motif (*dsl.Program) into a validated
// *ir.Motif: it captures macro definitions, rejects macro-definition
// cycles, expands macro invocations by substituting actuals for formals and
// re-feeding the substituted body through statement lowering, disambiguates
// node- vs named-edge-keyed constraints once every statement has been
// lowered, propagates automorphism constraints across declared pairs, and
// finally runs every configured validate.Validator's motif-level check.
//
// This mirrors dotmotif's DotMotifTransformer: a single left-to-right walk
// of the parse tree with deferred resolution, translated from a mutable
// transformer object into a single *compile.transformer value threaded
// through the walk, with the same two-pass generic-constraint-pool
// technique (the pending slice here plays the role of the original's P).
package compile
