// Package engine combines the filler-word and stutter detectors into one
// analysis entry point. Both detectors run concurrently over the same text;
// the shared annotator is expected to be wrapped with
// [annotate.SingleFlight] so the document is built once per call.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/analysis/filler"
	"github.com/gurnoornatt/vocal/internal/analysis/stutter"
	"github.com/gurnoornatt/vocal/internal/observe"
)

// Engine runs the full disfluency analysis. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	filler  *filler.Detector
	stutter *stutter.Detector
	metrics *observe.Metrics
}

// Option customizes an [Engine].
type Option func(*Engine)

// WithMetrics records analysis latency, detected disfluencies, and failures
// to m. Without this option the engine records nothing.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New returns an Engine running the given detectors.
func New(f *filler.Detector, s *stutter.Detector, opts ...Option) *Engine {
	e := &Engine{filler: f, stutter: s}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs both detectors over text and returns the combined
// [analysis.Result]. It returns [analysis.ErrInvalidInput] for non-text
// input and the first detector error otherwise. Empty input yields zero
// reports.
func (e *Engine) Analyze(ctx context.Context, text string) (*analysis.Result, error) {
	start := time.Now()

	if err := analysis.CheckText(text); err != nil {
		if e.metrics != nil {
			e.metrics.RecordAnalysisError(ctx, "input")
		}
		return nil, err
	}

	var res analysis.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep, err := e.filler.Detect(gctx, text)
		if err != nil {
			return err
		}
		res.Filler = rep
		return nil
	})
	g.Go(func() error {
		rep, err := e.stutter.Detect(gctx, text)
		if err != nil {
			return err
		}
		res.Stutter = rep
		return nil
	})
	if err := g.Wait(); err != nil {
		if e.metrics != nil {
			e.metrics.RecordAnalysisError(ctx, "detect")
		}
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.AnalysisDuration.Record(ctx, time.Since(start).Seconds())
		e.metrics.RecordDisfluencies(ctx, string(analysis.KindFiller), int64(res.Filler.TotalCount))
		e.metrics.RecordDisfluencies(ctx, string(analysis.KindHyphenated), int64(len(res.Stutter.Hyphenated)))
		e.metrics.RecordDisfluencies(ctx, string(analysis.KindWord), int64(len(res.Stutter.Word)))
	}
	return &res, nil
}
