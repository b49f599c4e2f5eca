package ir

import (
	"strconv"
	"strings"
)

// ActionTag classifies a structural edge's semantic role. The zero value is
// ActionDefault so that a freshly zero-valued StructuralEdge still denotes a
// meaningful (if generic) edge.
type ActionTag int

const (
	ActionDefault ActionTag = iota
	ActionPositive
	ActionNegative
	ActionCustom
)

func (a ActionTag) String() string {
	switch a {
	case ActionDefault:
		return "default"
	case ActionPositive:
		return "positive"
	case ActionNegative:
		return "negative"
	case ActionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Op is one of the closed set of comparison/membership operators a
// constraint may use.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpIn
	OpNotIn
	OpContains
	OpNotContains
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpIn:
		return "in"
	case OpNotIn:
		return "!in"
	case OpContains:
		return "contains"
	case OpNotContains:
		return "!contains"
	default:
		return "?"
	}
}

// Negated reports whether op is the negative member of a positive/negative
// pair (!=, !in, !contains) — the three operators for which a missing
// attribute vacuously succeeds (spec.md §4.4).
func (o Op) Negated() bool {
	return o == OpNe || o == OpNotIn || o == OpNotContains
}

// LitKind is the tag of a Literal's tagged union.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitIdent
)

// Literal is a typed constraint operand: an integer, a float, a quoted
// string, or a bareword identifier (lexed as a string but tagged
// separately, per spec.md §9). Literal is fully comparable and safe to use
// as a map key, which the constraint tables below rely on for dedup.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   string
}

func IntLiteral(v int64) Literal    { return Literal{Kind: LitInt, Int: v} }
func FloatLiteral(v float64) Literal { return Literal{Kind: LitFloat, Float: v} }
func StrLiteral(v string) Literal   { return Literal{Kind: LitStr, Str: v} }
func IdentLiteral(v string) Literal { return Literal{Kind: LitIdent, Str: v} }

// Value returns the Go value this literal denotes, for use by evaluators
// that compare it against a host attribute.
func (l Literal) Value() interface{} {
	switch l.Kind {
	case LitInt:
		return l.Int
	case LitFloat:
		return l.Float
	default:
		return l.Str
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		s := strconv.FormatFloat(l.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case LitStr:
		return strconv.Quote(l.Str)
	default: // LitIdent
		return l.Str
	}
}
