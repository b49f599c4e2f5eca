package search

import (
	"strings"

	"github.com/katalvlaran/motifscan/ir"
)

// matchesClauses reports whether every clause in clauses holds against
// attrs, applying the missing-attribute and type-mismatch rules of
// spec.md §4.4 to each one independently.
func matchesClauses(attrs map[string]interface{}, clauses []ir.Clause) bool {
	for _, c := range clauses {
		if !matchesClause(attrs, c) {
			return false
		}
	}
	return true
}

// matchesClause evaluates one static clause against a host attribute map.
// A missing key yields an absent sentinel: !=, !in, and !contains succeed
// vacuously against it; every other operator fails. Type-mismatched
// comparisons (e.g. > between a number and a string) fail silently rather
// than error.
func matchesClause(attrs map[string]interface{}, c ir.Clause) bool {
	val, ok := attrs[c.Attr]
	if !ok {
		return c.Op.Negated()
	}
	return evalOp(c.Op, val, c.Values)
}

func evalOp(op ir.Op, hostVal interface{}, literals []ir.Literal) bool {
	switch op {
	case ir.OpEq:
		if len(literals) == 0 {
			return false
		}
		eq, ok := equalLiteral(hostVal, literals[0])
		return ok && eq
	case ir.OpNe:
		if len(literals) == 0 {
			return false
		}
		eq, ok := equalLiteral(hostVal, literals[0])
		return ok && !eq
	case ir.OpGt, ir.OpGe, ir.OpLt, ir.OpLe:
		if len(literals) == 0 {
			return false
		}
		cmp, ok := compareLiteral(hostVal, literals[0])
		if !ok {
			return false
		}
		switch op {
		case ir.OpGt:
			return cmp > 0
		case ir.OpGe:
			return cmp >= 0
		case ir.OpLt:
			return cmp < 0
		default:
			return cmp <= 0
		}
	case ir.OpIn:
		return anyLiteralEquals(hostVal, literals)
	case ir.OpNotIn:
		return !anyLiteralEquals(hostVal, literals)
	case ir.OpContains:
		return hostContainsAnyLiteral(hostVal, literals)
	case ir.OpNotContains:
		return !hostContainsAnyLiteral(hostVal, literals)
	default:
		return false
	}
}

func anyLiteralEquals(hostVal interface{}, literals []ir.Literal) bool {
	for _, l := range literals {
		if eq, ok := equalLiteral(hostVal, l); ok && eq {
			return true
		}
	}
	return false
}

// hostContainsAnyLiteral reports whether hostVal — a slice, a map (keys
// checked), or a string — contains one of literals. Any other host value
// shape is a type mismatch and fails silently.
func hostContainsAnyLiteral(hostVal interface{}, literals []ir.Literal) bool {
	switch v := hostVal.(type) {
	case string:
		for _, l := range literals {
			if l.Kind == ir.LitStr || l.Kind == ir.LitIdent {
				if strings.Contains(v, l.Str) {
					return true
				}
			}
		}
		return false
	case []interface{}:
		for _, elem := range v {
			for _, l := range literals {
				if eq, ok := equalLiteral(elem, l); ok && eq {
					return true
				}
			}
		}
		return false
	case []string:
		for _, elem := range v {
			for _, l := range literals {
				if eq, ok := equalLiteral(elem, l); ok && eq {
					return true
				}
			}
		}
		return false
	case map[string]interface{}:
		for key := range v {
			for _, l := range literals {
				if eq, ok := equalLiteral(key, l); ok && eq {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

func numericOf(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// equalLiteral reports (equal, typeOK): typeOK is false when hostVal and l
// are not comparable shapes, in which case the comparison fails silently
// per spec.md §4.4 and equal is meaningless.
func equalLiteral(hostVal interface{}, l ir.Literal) (bool, bool) {
	switch l.Kind {
	case ir.LitInt, ir.LitFloat:
		hf, ok := numericOf(hostVal)
		if !ok {
			return false, false
		}
		lf := l.Float
		if l.Kind == ir.LitInt {
			lf = float64(l.Int)
		}
		return hf == lf, true
	default: // LitStr, LitIdent
		hs, ok := hostVal.(string)
		if !ok {
			return false, false
		}
		return hs == l.Str, true
	}
}

// compareLiteral returns an ordering of hostVal against l: negative if
// hostVal < l, zero if equal, positive if hostVal > l. ok is false for
// type-mismatched operands.
func compareLiteral(hostVal interface{}, l ir.Literal) (int, bool) {
	switch l.Kind {
	case ir.LitInt, ir.LitFloat:
		hf, ok := numericOf(hostVal)
		if !ok {
			return 0, false
		}
		lf := l.Float
		if l.Kind == ir.LitInt {
			lf = float64(l.Int)
		}
		switch {
		case hf < lf:
			return -1, true
		case hf > lf:
			return 1, true
		default:
			return 0, true
		}
	default:
		hs, ok := hostVal.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(hs, l.Str), true
	}
}

// equalValues and compareValues are the dynamic-clause analogues of
// equalLiteral/compareLiteral: both operands are host attribute values
// (interface{}) rather than one being a parsed literal.
func equalValues(a, b interface{}) (bool, bool) {
	if af, ok := numericOf(a); ok {
		bf, ok2 := numericOf(b)
		if !ok2 {
			return false, false
		}
		return af == bf, true
	}
	as, ok := a.(string)
	if !ok {
		return false, false
	}
	bs, ok2 := b.(string)
	if !ok2 {
		return false, false
	}
	return as == bs, true
}

func compareValues(a, b interface{}) (int, bool) {
	if af, ok := numericOf(a); ok {
		bf, ok2 := numericOf(b)
		if !ok2 {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, ok := a.(string)
	if !ok {
		return 0, false
	}
	bs, ok2 := b.(string)
	if !ok2 {
		return 0, false
	}
	return strings.Compare(as, bs), true
}

// evalDynamicCompare evaluates a DynamicClause's operator against two host
// values that may each be absent. Missing-attribute and type-mismatch rules
// mirror matchesClause/evalOp exactly.
func evalDynamicCompare(op ir.Op, lhs interface{}, lhsOK bool, rhs interface{}, rhsOK bool) bool {
	if !lhsOK || !rhsOK {
		return op.Negated()
	}
	switch op {
	case ir.OpEq:
		eq, ok := equalValues(lhs, rhs)
		return ok && eq
	case ir.OpNe:
		eq, ok := equalValues(lhs, rhs)
		return ok && !eq
	case ir.OpGt, ir.OpGe, ir.OpLt, ir.OpLe:
		cmp, ok := compareValues(lhs, rhs)
		if !ok {
			return false
		}
		switch op {
		case ir.OpGt:
			return cmp > 0
		case ir.OpGe:
			return cmp >= 0
		case ir.OpLt:
			return cmp < 0
		default:
			return cmp <= 0
		}
	default:
		// in/!in/contains/!contains have no defined meaning between two
		// scalar host values in this engine; treat as a type mismatch.
		return false
	}
}
