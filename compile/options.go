package compile

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/motifscan/validate"
)

// Options configures a Compile call. Zero-value-safe defaults are applied
// by defaultOptions.
type Options struct {
	Logger     *zap.Logger
	Validators []validate.Validator
}

// Option configures Options, applied left to right in the functional-options
// idiom.
type Option func(*Options)

// WithLogger supplies a structured logger for compile diagnostics. The
// default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithValidators overrides the default validator set. Pass no validators to
// disable validation entirely.
func WithValidators(vs ...validate.Validator) Option {
	return func(o *Options) { o.Validators = vs }
}

func defaultOptions() Options {
	return Options{
		Logger:     zap.NewNop(),
		Validators: validate.Defaults(),
	}
}
