package validate

import (
	"fmt"

	"github.com/katalvlaran/motifscan/ir"
)

// ConstraintSatisfiability scans every static constraint bucket (Nc and Ec)
// and fails if, for any (entity, attr): two equalities disagree, an
// equality violates a declared range bound, the lower and upper bounds form
// an empty interval (strictness accounted for), an in/!in pair intersects,
// or a contains/!contains pair intersects. It also validates a limited form
// of dynamic range impossibility across Dn/De: two dynamic clauses on the
// same (entity, attr) pointing at the same (other entity, other attr) with
// opposing strict order (a.x > b.x and a.x < b.x) (spec.md §4.3).
type ConstraintSatisfiability struct{}

func (ConstraintSatisfiability) OnEdge(*ir.Motif, string, string, bool, ir.ActionTag) error { return nil }

func (ConstraintSatisfiability) OnMotif(m *ir.Motif) error {
	for node, clauses := range m.Nc {
		if err := checkClauseBucket(node, clauses); err != nil {
			return err
		}
	}
	for key, clauses := range m.Ec {
		if err := checkClauseBucket(fmt.Sprintf("%s->%s", key.U, key.V), clauses); err != nil {
			return err
		}
	}
	for node, clauses := range m.Dn {
		if err := checkDynamicBucket(node, clauses); err != nil {
			return err
		}
	}
	for key, clauses := range m.De {
		if err := checkDynamicBucket(fmt.Sprintf("%s->%s", key.U, key.V), clauses); err != nil {
			return err
		}
	}
	return nil
}

type bound struct {
	val    ir.Literal
	strict bool
}

// checkClauseBucket runs checks (a)-(e) of spec.md §4.3 over one entity's
// clause list.
func checkClauseBucket(entity string, clauses []ir.Clause) error {
	eq := make(map[string]ir.Literal)
	lower := make(map[string]bound)
	upper := make(map[string]bound)
	inSet := make(map[string]map[ir.Literal]struct{})
	notInSet := make(map[string]map[ir.Literal]struct{})
	containsSet := make(map[string]map[ir.Literal]struct{})
	notContainsSet := make(map[string]map[ir.Literal]struct{})

	for _, c := range clauses {
		switch c.Op {
		case ir.OpEq:
			if len(c.Values) == 0 {
				continue
			}
			if prev, ok := eq[c.Attr]; ok && prev != c.Values[0] {
				return collisionf(entity, c.Attr, "conflicting equality values %v and %v", prev, c.Values[0])
			}
			eq[c.Attr] = c.Values[0]
		case ir.OpGt:
			mergeBound(lower, c.Attr, bound{val: c.Values[0], strict: true}, true)
		case ir.OpGe:
			mergeBound(lower, c.Attr, bound{val: c.Values[0], strict: false}, true)
		case ir.OpLt:
			mergeBound(upper, c.Attr, bound{val: c.Values[0], strict: true}, false)
		case ir.OpLe:
			mergeBound(upper, c.Attr, bound{val: c.Values[0], strict: false}, false)
		case ir.OpIn:
			addAll(inSet, c.Attr, c.Values)
		case ir.OpNotIn:
			addAll(notInSet, c.Attr, c.Values)
		case ir.OpContains:
			addAll(containsSet, c.Attr, c.Values)
		case ir.OpNotContains:
			addAll(notContainsSet, c.Attr, c.Values)
		}
	}

	for attr, v := range eq {
		if lo, ok := lower[attr]; ok {
			if n, ok2 := compareNumeric(v, lo.val); ok2 {
				if n < 0 || (n == 0 && lo.strict) {
					return collisionf(entity, attr, "equality %v violates lower bound %v", v, lo.val)
				}
			}
		}
		if up, ok := upper[attr]; ok {
			if n, ok2 := compareNumeric(v, up.val); ok2 {
				if n > 0 || (n == 0 && up.strict) {
					return collisionf(entity, attr, "equality %v violates upper bound %v", v, up.val)
				}
			}
		}
	}
	for attr, lo := range lower {
		up, ok := upper[attr]
		if !ok {
			continue
		}
		n, ok2 := compareNumeric(lo.val, up.val)
		if !ok2 {
			continue
		}
		if n > 0 || (n == 0 && (lo.strict || up.strict)) {
			return collisionf(entity, attr, "empty interval (%v, %v)", lo.val, up.val)
		}
	}
	for attr, in := range inSet {
		if notIn, ok := notInSet[attr]; ok && intersects(in, notIn) {
			return collisionf(entity, attr, "in/!in sets intersect")
		}
	}
	for attr, c := range containsSet {
		if notC, ok := notContainsSet[attr]; ok && intersects(c, notC) {
			return collisionf(entity, attr, "contains/!contains sets intersect")
		}
	}
	return nil
}

// checkDynamicBucket detects the impossible shape `a.x > b.x` and
// `a.x < b.x` against the same (other entity, other attr) target.
func checkDynamicBucket(entity string, clauses []ir.DynamicClause) error {
	type target struct {
		attr, otherEntity, otherAttr string
	}
	// gt/lt record, per target, whether any clause in that direction is
	// strict; a >= paired with a <= is satisfiable by equality.
	gt := make(map[target]bool)
	lt := make(map[target]bool)
	for _, c := range clauses {
		t := target{attr: c.Attr, otherEntity: c.OtherEntity, otherAttr: c.OtherAttr}
		switch c.Op {
		case ir.OpGt, ir.OpGe:
			gt[t] = gt[t] || c.Op == ir.OpGt
		case ir.OpLt, ir.OpLe:
			lt[t] = lt[t] || c.Op == ir.OpLt
		}
	}
	for t, gtStrict := range gt {
		if ltStrict, ok := lt[t]; ok && (gtStrict || ltStrict) {
			return collisionf(entity, t.attr, "impossible dynamic range against %s.%s", t.otherEntity, t.otherAttr)
		}
	}
	return nil
}

func mergeBound(m map[string]bound, attr string, b bound, wantMax bool) {
	prev, ok := m[attr]
	if !ok {
		m[attr] = b
		return
	}
	n, ok2 := compareNumeric(b.val, prev.val)
	if !ok2 {
		return
	}
	if wantMax && n > 0 || !wantMax && n < 0 {
		m[attr] = b
	} else if n == 0 && b.strict {
		m[attr] = b
	}
}

func addAll(m map[string]map[ir.Literal]struct{}, attr string, vals []ir.Literal) {
	set, ok := m[attr]
	if !ok {
		set = make(map[ir.Literal]struct{})
		m[attr] = set
	}
	for _, v := range vals {
		set[v] = struct{}{}
	}
}

func intersects(a, b map[ir.Literal]struct{}) bool {
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}
	return false
}

// compareNumeric compares two literals as numbers when both are Int/Float;
// returns ok=false for non-numeric literals, which are outside the scope of
// this validator's range/equality checks.
func compareNumeric(a, b ir.Literal) (int, bool) {
	af, ok1 := numericValue(a)
	bf, ok2 := numericValue(b)
	if !ok1 || !ok2 {
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

func numericValue(l ir.Literal) (float64, bool) {
	switch l.Kind {
	case ir.LitInt:
		return float64(l.Int), true
	case ir.LitFloat:
		return l.Float, true
	default:
		return 0, false
	}
}

func collisionf(entity, attr, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("validate: %s.%s: %s: %w", entity, attr, msg, ErrConstraintCollision)
}
