// Package motif is the public entry point of the module: it composes
// package compile (DSL source to IR) and package search (IR plus a host
// graph to a lazy mapping cursor) behind a single Motif value and a small
// set of functional options, validated with go-playground/validator/v10
// struct tags before any compile or search work begins.
package motif
