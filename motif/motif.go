package motif

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/motifscan/compile"
	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/ir"
	"github.com/katalvlaran/motifscan/search"
)

// Motif is a compiled motif description, ready to be searched for against
// any number of hosts.
type Motif struct {
	ir *ir.Motif
}

// Compile parses and lowers a motif DSL source into a Motif.
func Compile(text string, opts ...CompileOption) (*Motif, error) {
	s := resolveCompileSettings(opts)
	m, err := compile.Compile(text,
		compile.WithLogger(s.Logger),
		compile.WithValidators(s.Validators...),
	)
	if err != nil {
		return nil, err
	}
	return &Motif{ir: m}, nil
}

// IR exposes the underlying compiled representation for callers that need
// to inspect it directly (e.g. ir.Motif.String() for pretty-printing).
func (m *Motif) IR() *ir.Motif { return m.ir }

// Search runs the motif against host and returns a lazy, non-restartable
// cursor of mappings.
func (m *Motif) Search(ctx context.Context, host graph.Host, opts ...SearchOption) (*search.Cursor, error) {
	s, err := resolveSearchSettings(opts)
	if err != nil {
		return nil, err
	}
	searchOpts := search.Options{
		IgnoreDirection:      s.IgnoreDirection,
		EnforceInequality:    s.EnforceInequality,
		ExcludeAutomorphisms: s.ExcludeAutomorphisms,
		Quantifier:           quantifierFromString(s.Quantifier),
		ResultLimit:          s.ResultLimit,
	}

	var runOpts []search.RunOption
	runOpts = append(runOpts, search.WithLogger(s.Logger))
	if s.Tracer != nil {
		runOpts = append(runOpts, search.WithTracer(s.Tracer))
	}
	if s.Recorder != nil {
		runOpts = append(runOpts, search.WithRecorder(s.Recorder))
	}

	return search.Run(ctx, m.ir, host, searchOpts, runOpts...)
}

// Count runs Search to exhaustion and returns the number of mappings found.
// A SearchOption ResultLimit caps the count the same way it caps Search.
func (m *Motif) Count(ctx context.Context, host graph.Host, opts ...SearchOption) (int, error) {
	cur, err := m.Search(ctx, host, opts...)
	if err != nil {
		return 0, err
	}
	n := 0
	for cur.Next() {
		n++
	}
	return n, cur.Err()
}

// CountAll runs Count concurrently across every host and returns the
// per-host counts in the same order as hosts. Every host's search starts at
// once; the first error cancels the context shared by the other searches
// and is returned.
func (m *Motif) CountAll(ctx context.Context, hosts []graph.Host, opts ...SearchOption) ([]int, error) {
	counts := make([]int, len(hosts))
	g, ctx := errgroup.WithContext(ctx)
	for i, h := range hosts {
		i, h := i, h
		g.Go(func() error {
			n, err := m.Count(ctx, h, opts...)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func quantifierFromString(s string) search.Quantifier {
	if s == search.MatchAll.String() {
		return search.MatchAll
	}
	return search.MatchAny
}
