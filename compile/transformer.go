package compile

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/motifscan/dsl"
	"github.com/katalvlaran/motifscan/ir"
	"github.com/katalvlaran/motifscan/validate"
)

// macroInfo is a captured macro definition plus two pieces of derived
// metadata computed once at capture time: the set of names the macro binds
// via "as NAME" (so invocation-site lowering can tell a local name from a
// formal parameter or an outer identifier), and the set of other macros it
// calls (so the call graph can be cycle-checked before any expansion runs).
type macroInfo struct {
	def        *dsl.MacroDef
	localNames map[string]struct{}
	calls      []string
}

func newMacroInfo(def *dsl.MacroDef) *macroInfo {
	info := &macroInfo{def: def, localNames: make(map[string]struct{})}
	seenCall := make(map[string]struct{})
	for _, stmt := range def.Body {
		if stmt.Edge != nil && stmt.Edge.As != "" {
			info.localNames[stmt.Edge.As] = struct{}{}
		}
		if stmt.MacroInvocation != nil {
			name := stmt.MacroInvocation.Name
			if _, ok := seenCall[name]; !ok {
				seenCall[name] = struct{}{}
				info.calls = append(info.calls, name)
			}
		}
	}
	return info
}

// lowerCtx carries the substitution environment active while lowering one
// statement: at top level it is the zero value (resolve is identity); inside
// a macro expansion it maps formal parameters to actuals and suffixes local
// edge names so that two invocations of the same macro never collide.
type lowerCtx struct {
	subst      map[string]string
	localNames map[string]struct{}
	suffix     string
}

// resolve maps a bare identifier as it appears in a macro body to its
// effective name in the motif being built: a substituted actual if id is a
// formal parameter, a uniqued local name if id was declared via "as NAME"
// inside this macro, or id itself (top-level identifiers pass through
// unchanged).
func (c lowerCtx) resolve(id string) string {
	if c.subst != nil {
		if v, ok := c.subst[id]; ok {
			return v
		}
	}
	if c.localNames != nil {
		if _, ok := c.localNames[id]; ok {
			return id + c.suffix
		}
	}
	return id
}

// pendingConstraint is a constraint statement queued for resolution after
// every edge and macro expansion has been lowered, since ENTITY in
// `ENTITY.key OP value` is not known to be a node or a named edge until the
// full skeleton exists (spec.md §4.2 step 4).
type pendingConstraint struct {
	entity string
	attr   string
	op     ir.Op
	values []ir.Literal

	dynamic   bool
	dynEntity string
	dynAttr   string
}

// transformer drives one Compile call: it owns the macro table, the motif
// under construction, and the pool of constraints awaiting disambiguation.
type transformer struct {
	macros     map[string]*macroInfo
	motif      *ir.Motif
	pending    []pendingConstraint
	validators []validate.Validator
	logger     *zap.Logger
}

// Compile parses source as a motif DSL program and lowers it into an
// ir.Motif: it captures macro definitions, rejects macro recursion, expands
// every invocation, resolves node/edge constraints, propagates declared
// automorphisms, and finally runs the configured validators against the
// completed IR (spec.md §4.2).
func Compile(source string, opts ...Option) (*ir.Motif, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	prog, err := dsl.Parse(source)
	if err != nil {
		return nil, err
	}

	t := &transformer{
		macros:     make(map[string]*macroInfo),
		motif:      ir.NewMotif(),
		validators: o.Validators,
		logger:     o.Logger,
	}

	for _, stmt := range prog.Statements {
		if stmt.MacroDef != nil {
			if _, dup := t.macros[stmt.MacroDef.Name]; dup {
				return nil, fmt.Errorf("compile: macro %q: %w", stmt.MacroDef.Name, ErrDuplicateMacro)
			}
			t.macros[stmt.MacroDef.Name] = newMacroInfo(stmt.MacroDef)
		}
	}

	callGraph := make(macroCallGraph, len(t.macros))
	for name, info := range t.macros {
		callGraph[name] = info.calls
	}
	if cyclic, cycle := detectCycle(callGraph); cyclic {
		return nil, fmt.Errorf("compile: cycle %v: %w", cycle, ErrMacroRecursion)
	}

	for _, stmt := range prog.Statements {
		if stmt.MacroDef != nil {
			continue
		}
		if err := t.lowerTopStmt(stmt, lowerCtx{}); err != nil {
			return nil, err
		}
	}

	if err := t.disambiguate(); err != nil {
		return nil, err
	}

	t.motif.PropagateAutomorphisms()

	for _, v := range t.validators {
		if err := v.OnMotif(t.motif); err != nil {
			t.logger.Warn("validator rejected motif", zap.Error(err))
			return nil, err
		}
	}

	t.logger.Debug("compiled motif",
		zap.Int("nodes", len(t.motif.Nodes())),
		zap.Int("edges", len(t.motif.Skeleton.Edges)),
	)
	return t.motif, nil
}

func (t *transformer) lowerTopStmt(stmt *dsl.TopStmt, ctx lowerCtx) error {
	switch {
	case stmt.Automorphism != nil:
		return t.lowerAutomorphism(stmt.Automorphism, ctx)
	case stmt.MacroInvocation != nil:
		return t.expandMacro(stmt.MacroInvocation.Name, stmt.MacroInvocation.Actuals, ctx)
	case stmt.Constraint != nil:
		return t.lowerConstraint(stmt.Constraint, ctx)
	case stmt.Edge != nil:
		return t.lowerEdge(stmt.Edge, ctx)
	}
	return nil
}

func (t *transformer) lowerBodyStmt(stmt *dsl.BodyStmt, ctx lowerCtx) error {
	switch {
	case stmt.Automorphism != nil:
		return t.lowerAutomorphism(stmt.Automorphism, ctx)
	case stmt.MacroInvocation != nil:
		return t.expandMacro(stmt.MacroInvocation.Name, stmt.MacroInvocation.Actuals, ctx)
	case stmt.Constraint != nil:
		return t.lowerConstraint(stmt.Constraint, ctx)
	case stmt.Edge != nil:
		return t.lowerEdge(stmt.Edge, ctx)
	}
	return nil
}

// expandMacro resolves actuals in the caller's context, builds a fresh
// substitution environment keyed by the callee's formal parameters, and
// lowers every body statement under a new per-invocation suffix so that two
// calls to the same macro never produce colliding named edges (spec.md
// §4.2 step 2).
func (t *transformer) expandMacro(name string, actuals []*dsl.LitAST, ctx lowerCtx) error {
	info, ok := t.macros[name]
	if !ok {
		return fmt.Errorf("compile: %q: %w", name, ErrUndefinedMacro)
	}
	if len(actuals) != len(info.def.Params) {
		return fmt.Errorf("compile: macro %q: want %d args, got %d: %w",
			name, len(info.def.Params), len(actuals), ErrMacroArity)
	}

	subst := make(map[string]string, len(info.def.Params))
	for i, param := range info.def.Params {
		subst[param] = resolveActual(actuals[i], ctx)
	}

	childCtx := lowerCtx{
		subst:      subst,
		localNames: info.localNames,
		suffix:     "_" + uuid.NewString()[:8],
	}
	for _, stmt := range info.def.Body {
		if err := t.lowerBodyStmt(stmt, childCtx); err != nil {
			return err
		}
	}
	return nil
}

// resolveActual renders one macro actual as a motif identifier: an Ident
// actual is resolved through the caller's own context (so a caller may pass
// through one of its own parameters or named edges), any other literal kind
// is rendered as its literal text.
func resolveActual(l *dsl.LitAST, ctx lowerCtx) string {
	if l.Ident != nil {
		return ctx.resolve(*l.Ident)
	}
	if l.Str != nil {
		return dsl.Unquote(*l.Str)
	}
	if l.Int != nil {
		return strconv.FormatInt(*l.Int, 10)
	}
	if l.Float != nil {
		return strconv.FormatFloat(*l.Float, 'g', -1, 64)
	}
	return ""
}

func (t *transformer) lowerEdge(e *dsl.EdgeStmt, ctx lowerCtx) error {
	u := ctx.resolve(e.U)
	v := ctx.resolve(e.V)
	exists := !e.Rel.NotExists()
	action, customName := actionFromRelType(e.Rel.Type)

	idx, _, err := t.motif.AddStructuralEdge(u, v, exists, action, customName)
	if err != nil {
		return err
	}

	for _, val := range t.validators {
		if err := val.OnEdge(t.motif, u, v, exists, action); err != nil {
			return err
		}
	}

	for _, cl := range e.Clauses {
		attr := cl.Key.Text()
		op := opFromAST(cl.Op)
		if cl.Value.Dynamic != nil {
			dc := ir.DynamicClause{
				Attr:        attr,
				Op:          op,
				OtherEntity: ctx.resolve(cl.Value.Dynamic.Entity),
				OtherAttr:   cl.Value.Dynamic.Key.Name(),
			}
			if err := t.motif.AddDynamicEdgeConstraint(u, v, dc); err != nil {
				return err
			}
			continue
		}
		c := ir.Clause{Attr: attr, Op: op, Values: literalsFromValue(cl.Value)}
		if err := t.motif.AddEdgeConstraint(u, v, c); err != nil {
			return err
		}
	}

	if e.As != "" {
		if err := t.motif.AddNamedEdge(ctx.resolve(e.As), idx); err != nil {
			return err
		}
	}
	return nil
}

func (t *transformer) lowerConstraint(c *dsl.ConstraintStmt, ctx lowerCtx) error {
	entity := ctx.resolve(c.Ref.Entity)
	attr := c.Ref.Key.Name()
	op := opFromAST(c.Op)

	if c.Value.Dynamic != nil {
		t.pending = append(t.pending, pendingConstraint{
			entity:    entity,
			attr:      attr,
			op:        op,
			dynamic:   true,
			dynEntity: ctx.resolve(c.Value.Dynamic.Entity),
			dynAttr:   c.Value.Dynamic.Key.Name(),
		})
		return nil
	}
	t.pending = append(t.pending, pendingConstraint{
		entity: entity,
		attr:   attr,
		op:     op,
		values: literalsFromValue(c.Value),
	})
	return nil
}

func (t *transformer) lowerAutomorphism(a *dsl.AutomorphismStmt, ctx lowerCtx) error {
	return t.motif.AddAutomorphism(ctx.resolve(a.A), ctx.resolve(a.B))
}

// disambiguate resolves every pending constraint's entity as either a motif
// node or a named edge, per spec.md §4.2 step 4: node constraints attach
// directly, edge-name constraints attach to the (u,v) pair the name was
// bound to at "as NAME" time.
func (t *transformer) disambiguate() error {
	for _, p := range t.pending {
		if t.motif.HasNode(p.entity) {
			if p.dynamic {
				dc := ir.DynamicClause{Attr: p.attr, Op: p.op, OtherEntity: p.dynEntity, OtherAttr: p.dynAttr}
				if err := t.motif.AddDynamicNodeConstraint(p.entity, dc); err != nil {
					return err
				}
				continue
			}
			c := ir.Clause{Attr: p.attr, Op: p.op, Values: p.values}
			if err := t.motif.AddNodeConstraint(p.entity, c); err != nil {
				return err
			}
			continue
		}

		ne, err := t.motif.ResolveEdgeName(p.entity)
		if err != nil {
			return fmt.Errorf("compile: %q: %w", p.entity, ErrUnresolvedIdentifier)
		}
		if p.dynamic {
			dc := ir.DynamicClause{Attr: p.attr, Op: p.op, OtherEntity: p.dynEntity, OtherAttr: p.dynAttr}
			if err := t.motif.AddDynamicEdgeConstraint(ne.U, ne.V, dc); err != nil {
				return err
			}
			continue
		}
		c := ir.Clause{Attr: p.attr, Op: p.op, Values: p.values}
		if err := t.motif.AddEdgeConstraint(ne.U, ne.V, c); err != nil {
			return err
		}
	}
	return nil
}

func literalFromLit(l *dsl.LitAST) ir.Literal {
	switch {
	case l.Str != nil:
		return ir.StrLiteral(dsl.Unquote(*l.Str))
	case l.Float != nil:
		return ir.FloatLiteral(*l.Float)
	case l.Int != nil:
		return ir.IntLiteral(*l.Int)
	case l.Ident != nil:
		return ir.IdentLiteral(*l.Ident)
	default:
		return ir.Literal{}
	}
}

func literalsFromValue(v dsl.ValueAST) []ir.Literal {
	if len(v.List) > 0 {
		out := make([]ir.Literal, len(v.List))
		for i, l := range v.List {
			out[i] = literalFromLit(l)
		}
		return out
	}
	if v.Single != nil {
		return []ir.Literal{literalFromLit(v.Single)}
	}
	return nil
}

// actionFromRelType maps the DSL's relation-type marker to an ActionTag plus
// the custom name carried by "[NAME]" relations (empty for the other three).
func actionFromRelType(rt dsl.RelationType) (ir.ActionTag, string) {
	switch {
	case rt.Positive:
		return ir.ActionPositive, ""
	case rt.Negative:
		return ir.ActionNegative, ""
	case rt.Custom != "":
		return ir.ActionCustom, rt.Custom
	default:
		return ir.ActionDefault, ""
	}
}

func opFromAST(o dsl.OpAST) ir.Op {
	switch {
	case o.Eq, o.EqAlias:
		return ir.OpEq
	case o.NotEq, o.NotEqAlias:
		return ir.OpNe
	case o.Ge:
		return ir.OpGe
	case o.Le:
		return ir.OpLe
	case o.NotIn:
		return ir.OpNotIn
	case o.NotContains:
		return ir.OpNotContains
	case o.In:
		return ir.OpIn
	case o.Contains:
		return ir.OpContains
	case o.Gt:
		return ir.OpGt
	case o.Lt:
		return ir.OpLt
	default:
		return ir.OpEq
	}
}
