package annotate

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight wraps a in an [Annotator] that collapses concurrent
// annotations of identical text into one underlying call, sharing the
// resulting [Document] between all waiters. Because annotators are
// deterministic and their output immutable, sharing is safe.
//
// This is the serialization discipline for annotators whose underlying
// model does not support concurrent invocation: duplicate work is removed
// and the per-text call rate drops to one in flight at a time. Thread-safe
// annotators benefit too — the engine annotates the same transcript once
// for both detectors.
//
// The context of the first caller drives the shared call; later waiters
// that cancel their own context still receive the shared result or error.
func SingleFlight(a Annotator) Annotator {
	return &singleFlightAnnotator{inner: a}
}

type singleFlightAnnotator struct {
	inner Annotator
	group singleflight.Group
}

var _ Annotator = (*singleFlightAnnotator)(nil)

func (s *singleFlightAnnotator) Annotate(ctx context.Context, text string) (*Document, error) {
	v, err, _ := s.group.Do(text, func() (any, error) {
		return s.inner.Annotate(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Document), nil
}
