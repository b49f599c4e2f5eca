package search

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/ir"
)

// RunOption configures the observability wiring of Run. Every option
// defaults to a no-op, so Run(ctx, m, host, opts) alone behaves exactly
// like NewEngine(m, host, opts).Search(ctx).
type RunOption func(*runConfig)

type runConfig struct {
	logger   *zap.Logger
	tracer   trace.Tracer
	recorder Recorder
}

func defaultRunConfig() runConfig {
	return runConfig{logger: zap.NewNop(), recorder: noopRecorder{}}
}

// WithLogger attaches a zap logger that Run uses to log the outcome of the
// search (candidates explored, backtracks, mappings emitted) at Debug once
// the returned Cursor is exhausted, cancelled, or errored.
func WithLogger(l *zap.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer wraps the search in a span on tracer, started when Run is
// called and ended exactly once when the Cursor finishes.
func WithTracer(t trace.Tracer) RunOption {
	return func(c *runConfig) { c.tracer = t }
}

// WithRecorder attaches a Recorder observing the search's candidate,
// backtrack, mapping, and duration counts.
func WithRecorder(r Recorder) RunOption {
	return func(c *runConfig) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Run builds an Engine for m over host and starts a Cursor, wiring together
// whatever logger, tracer, and recorder were supplied via RunOption. The
// returned Cursor behaves exactly like one from Engine.Search; the
// observability hooks fire once, when it first becomes done.
func Run(ctx context.Context, m *ir.Motif, host graph.Host, opts Options, runOpts ...RunOption) (*Cursor, error) {
	cfg := defaultRunConfig()
	for _, o := range runOpts {
		o(&cfg)
	}

	eng, err := NewEngine(m, host, opts)
	if err != nil {
		cfg.logger.Warn("search: engine construction failed", zap.Error(err))
		return nil, err
	}

	if cfg.tracer != nil {
		var span trace.Span
		ctx, span = cfg.tracer.Start(ctx, "search.Run",
			trace.WithAttributes(
				attribute.Int("motifscan.motif.nodes", len(m.Nodes())),
				attribute.String("motifscan.quantifier", opts.Quantifier.String()),
			),
		)
		cur := eng.Search(ctx)
		start := time.Now()
		cur.onFinish = func(candidatesExplored, backtracks, emitted int) {
			dur := time.Since(start)
			span.SetAttributes(
				attribute.Int("motifscan.candidates_explored", candidatesExplored),
				attribute.Int("motifscan.backtracks", backtracks),
				attribute.Int("motifscan.mappings_emitted", emitted),
			)
			if cur.Err() != nil {
				span.RecordError(cur.Err())
			}
			span.End()
			cfg.recorder.ObserveSearch(candidatesExplored, backtracks, emitted, dur)
			cfg.logger.Debug("search: finished",
				zap.Int("candidates_explored", candidatesExplored),
				zap.Int("backtracks", backtracks),
				zap.Int("mappings_emitted", emitted),
				zap.Duration("duration", dur),
				zap.Error(cur.Err()),
			)
		}
		return cur, nil
	}

	cur := eng.Search(ctx)
	start := time.Now()
	cur.onFinish = func(candidatesExplored, backtracks, emitted int) {
		dur := time.Since(start)
		cfg.recorder.ObserveSearch(candidatesExplored, backtracks, emitted, dur)
		cfg.logger.Debug("search: finished",
			zap.Int("candidates_explored", candidatesExplored),
			zap.Int("backtracks", backtracks),
			zap.Int("mappings_emitted", emitted),
			zap.Duration("duration", dur),
			zap.Error(cur.Err()),
		)
	}
	return cur, nil
}
