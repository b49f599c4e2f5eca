package motif

import (
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/motifscan/search"
	"github.com/katalvlaran/motifscan/validate"
)

var optionsValidator = validator.New()

// compileSettings is the resolved, immutable form of a CompileOption chain.
type compileSettings struct {
	Logger     *zap.Logger
	Validators []validate.Validator
}

// CompileOption configures a Compile call, following the same
// resolve-then-validate-once shape as package compile's own Option.
type CompileOption func(*compileSettings)

// WithCompileLogger supplies a structured logger for compile diagnostics.
func WithCompileLogger(l *zap.Logger) CompileOption {
	return func(s *compileSettings) { s.Logger = l }
}

// WithCompileValidators overrides the default validator set used while
// compiling. Pass none to disable validation entirely.
func WithCompileValidators(vs ...validate.Validator) CompileOption {
	return func(s *compileSettings) { s.Validators = vs }
}

func resolveCompileSettings(opts []CompileOption) compileSettings {
	s := compileSettings{Logger: zap.NewNop(), Validators: validate.Defaults()}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// searchSettings is the resolved, immutable form of a SearchOption chain,
// struct-tag validated before it is ever handed to search.NewEngine.
type searchSettings struct {
	IgnoreDirection      bool
	EnforceInequality    bool
	ExcludeAutomorphisms bool
	Quantifier           string `validate:"oneof=any all"`
	ResultLimit          int    `validate:"gte=0"`

	Logger   *zap.Logger
	Tracer   trace.Tracer
	Recorder search.Recorder
}

// SearchOption configures a Search or Count call.
type SearchOption func(*searchSettings)

// WithIgnoreDirection treats motif edges as undirected against the host.
func WithIgnoreDirection() SearchOption {
	return func(s *searchSettings) { s.IgnoreDirection = true }
}

// WithEnforceInequality requires nodes named in an explicit "===" pair to
// map to distinct host vertices. See search.Options.EnforceInequality for
// why this is already the engine's default behavior regardless.
func WithEnforceInequality() SearchOption {
	return func(s *searchSettings) { s.EnforceInequality = true }
}

// WithExcludeAutomorphisms keeps only the lexicographically-smallest
// mapping in each automorphism orbit.
func WithExcludeAutomorphisms() SearchOption {
	return func(s *searchSettings) { s.ExcludeAutomorphisms = true }
}

// WithMultigraphEdgeMatch selects the ANY/ALL quantifier applied to
// parallel host edges when evaluating edge constraints.
func WithMultigraphEdgeMatch(q search.Quantifier) SearchOption {
	return func(s *searchSettings) { s.Quantifier = q.String() }
}

// WithResultLimit caps the number of mappings a search will emit; 0 (the
// default) means unlimited.
func WithResultLimit(n int) SearchOption {
	return func(s *searchSettings) { s.ResultLimit = n }
}

// WithSearchLogger supplies a structured logger for search diagnostics.
func WithSearchLogger(l *zap.Logger) SearchOption {
	return func(s *searchSettings) { s.Logger = l }
}

// WithTracer wraps each search call in a span on tracer.
func WithTracer(t trace.Tracer) SearchOption {
	return func(s *searchSettings) { s.Tracer = t }
}

// WithRecorder attaches a search.Recorder observing search activity.
func WithRecorder(r search.Recorder) SearchOption {
	return func(s *searchSettings) { s.Recorder = r }
}

func resolveSearchSettings(opts []SearchOption) (searchSettings, error) {
	s := searchSettings{Quantifier: search.MatchAny.String(), Logger: zap.NewNop()}
	for _, o := range opts {
		o(&s)
	}
	if err := optionsValidator.Struct(s); err != nil {
		return searchSettings{}, wrapValidationErr(err)
	}
	return s, nil
}

func wrapValidationErr(err error) error {
	return &validationError{cause: err}
}

type validationError struct{ cause error }

func (e *validationError) Error() string { return "motif: invalid options: " + e.cause.Error() }
func (e *validationError) Unwrap() error { return ErrInvalidOptions }
