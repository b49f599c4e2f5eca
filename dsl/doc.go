// Package dsl tokenizes and parses motif source text into a parse tree.
//
// The grammar is data-driven, built with github.com/alecthomas/participle/v2
// over a lexer of named token rules — the same shape used elsewhere in the
// example corpus for small textual query languages: a simple lexer of
// typed tokens feeding a struct-tag grammar with pointer-field alternation
// for dispatch.
//
// Parse does not interpret macros, resolve named edges, or build an IR —
// it only recognizes the constructs of spec.md §4.1/§6 and hands back a
// *Program for package compile to lower. Syntax errors carry a source
// position and excerpt via SyntaxError.
package dsl
