package dsl

// Program is the top-level parse tree: a sequence of statements separated
// by newlines or semicolons (spec.md §4.1), in source order.
type Program struct {
	Statements []*TopStmt `parser:"( (Newline|\";\")* @@ )* (Newline|\";\")*"`
}

// TopStmt dispatches on the five top-level statement shapes. Order matters
// only for parser backtracking cost, not correctness: MacroDef is tried
// before MacroInvocation so "name(...) { ... }" is not mistaken for a bare
// invocation before the brace is seen.
type TopStmt struct {
	MacroDef        *MacroDef         `parser:"  @@"`
	Automorphism    *AutomorphismStmt `parser:"| @@"`
	MacroInvocation *MacroInvocation  `parser:"| @@"`
	Constraint      *ConstraintStmt   `parser:"| @@"`
	Edge            *EdgeStmt         `parser:"| @@"`
}

// BodyStmt is the analogous dispatch for statements inside a macro body: the
// same shapes as TopStmt minus macro definitions (macros may not be defined
// inside another macro's body per spec.md §4.1).
type BodyStmt struct {
	Automorphism    *AutomorphismStmt `parser:"  @@"`
	MacroInvocation *MacroInvocation  `parser:"| @@"`
	Constraint      *ConstraintStmt   `parser:"| @@"`
	Edge             *EdgeStmt        `parser:"| @@"`
}

// MacroDef is `name(arg1, arg2, ...) { body }`. Defining a macro emits
// nothing by itself; package compile registers it for later expansion.
type MacroDef struct {
	Name   string      `parser:"@Ident \"(\""`
	Params []string    `parser:"( @Ident ( \",\" @Ident )* )? \")\""`
	Body   []*BodyStmt `parser:"\"{\" ( (Newline|\";\")* @@ )* (Newline|\";\")* \"}\""`
}

// MacroInvocation is `name(actual1, actual2, ...)`, valid at top level or
// inside another macro's body.
type MacroInvocation struct {
	Name    string    `parser:"@Ident \"(\""`
	Actuals []*LitAST `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// AutomorphismStmt is `A === B`.
type AutomorphismStmt struct {
	A string `parser:"@Ident \"=\" \"=\" \"=\""`
	B string `parser:"@Ident"`
}

// EdgeStmt is a structural edge declaration:
// `U R V`, `U R V [clauses]`, `U R V [clauses] as NAME`, or `U R V as NAME`.
type EdgeStmt struct {
	U       string       `parser:"@Ident"`
	Rel     Relation     `parser:"@@"`
	V       string       `parser:"@Ident"`
	Clauses []*ClauseAST `parser:"( \"[\" ( @@ ( \",\" @@ )* )? \"]\" )?"`
	As      string       `parser:"( \"as\" @Ident )?"`
}

// Relation is the two-token (or token+bracketed-name) relation marker:
// an existence marker (-, !, ~) followed by a type marker (>, +, -/|, or
// [CUSTOM]).
type Relation struct {
	Existence string        `parser:"@(\"-\"|\"!\"|\"~\")"`
	Type      RelationType  `parser:"@@"`
}

// NotExists reports whether this relation's existence marker denotes a
// must-not-exist (negative) structural edge.
func (r Relation) NotExists() bool {
	return r.Existence == "!" || r.Existence == "~"
}

// RelationType is the type-marker half of a Relation.
type RelationType struct {
	Default  bool   `parser:"  @\">\""`
	Positive bool   `parser:"| @\"+\""`
	Negative bool   `parser:"| @(\"-\"|\"|\")"`
	Custom   string `parser:"| \"[\" @Ident \"]\""`
}

// ConstraintStmt is a node- or named-edge-attribute constraint:
// `ENTITY.key OP value` or `ENTITY["key"] OP value`. Package compile
// disambiguates ENTITY as a node name or an edge name only after all
// statements are lowered (spec.md §4.2 step 4).
type ConstraintStmt struct {
	Ref   AttrRef  `parser:"@@"`
	Op    OpAST    `parser:"@@"`
	Value ValueAST `parser:"@@"`
}

// ClauseAST is one `key OP value` triple inside an edge's bracketed clause
// list, where the entity is implicit (the edge just declared).
type ClauseAST struct {
	Key   ClauseKey `parser:"@@"`
	Op    OpAST     `parser:"@@"`
	Value ValueAST  `parser:"@@"`
}

// OpAST is one of the closed set of comparison/membership operators
// (spec.md §6). Alternatives are tried longest-shared-prefix first so that,
// e.g., "==" is recognized before its "=" alias and "<>" before a bare "<".
type OpAST struct {
	Eq          bool `parser:"  @\"=\" \"=\""`
	NotEq       bool `parser:"| @\"!\" \"=\""`
	NotEqAlias  bool `parser:"| @\"<\" \">\""`
	Ge          bool `parser:"| @\">\" \"=\""`
	Le          bool `parser:"| @\"<\" \"=\""`
	NotIn       bool `parser:"| @\"!\" \"in\""`
	NotContains bool `parser:"| @\"!\" \"contains\""`
	In          bool `parser:"| @\"in\""`
	Contains    bool `parser:"| @\"contains\""`
	Gt          bool `parser:"| @\">\""`
	Lt          bool `parser:"| @\"<\""`
	EqAlias     bool `parser:"| @\"=\""`
}

// Token returns the canonical operator symbol this OpAST matched.
func (o OpAST) Token() string {
	switch {
	case o.Eq, o.EqAlias:
		return "=="
	case o.NotEq, o.NotEqAlias:
		return "!="
	case o.Ge:
		return ">="
	case o.Le:
		return "<="
	case o.NotIn:
		return "!in"
	case o.NotContains:
		return "!contains"
	case o.In:
		return "in"
	case o.Contains:
		return "contains"
	case o.Gt:
		return ">"
	case o.Lt:
		return "<"
	default:
		return ""
	}
}

// AttrRef is `ENTITY.key` or `ENTITY["key"]`.
type AttrRef struct {
	Entity string  `parser:"@Ident"`
	Key    AttrKey `parser:"@@"`
}

// AttrKey is the key half of an AttrRef.
type AttrKey struct {
	Dotted  string `parser:"  \".\" @Ident"`
	Bracket string `parser:"| \"[\" @String \"]\""`
}

// Name returns the key text regardless of which form was used.
func (k AttrKey) Name() string {
	if k.Dotted != "" {
		return k.Dotted
	}
	return Unquote(k.Bracket)
}

// ClauseKey is a bare attribute key (no entity prefix), as used inside an
// edge's bracketed clause list: `key` or `["my attr"]`.
type ClauseKey struct {
	Name    string `parser:"  @Ident"`
	Bracket string `parser:"| \"[\" @String \"]\""`
}

// Text returns the key text regardless of which form was used.
func (k ClauseKey) Text() string {
	if k.Name != "" {
		return k.Name
	}
	return Unquote(k.Bracket)
}

// ValueAST is the right-hand side of a constraint: a dynamic attribute
// reference, a bracketed literal list (for in/!in/contains/!contains), or a
// single literal.
type ValueAST struct {
	Dynamic *AttrRef  `parser:"  @@"`
	List    []*LitAST `parser:"| \"[\" @@ ( \",\" @@ )* \"]\""`
	Single  *LitAST   `parser:"| @@"`
}

// LitAST is a single typed literal: string, float, int, or bareword
// identifier (lexed as a string but tagged separately per spec.md §9).
type LitAST struct {
	Str   *string  `parser:"  @String"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
	Ident *string  `parser:"| @Ident"`
}

// Unquote strips the surrounding quote characters captured by the String
// token; the lexer matches both single- and double-quoted strings verbatim
// including their delimiters.
func Unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
