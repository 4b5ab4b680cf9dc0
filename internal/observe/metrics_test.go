package observe_test

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/gurnoornatt/vocal/internal/observe"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	mp := sdkmetric.NewMeterProvider()
	defer mp.Shutdown(context.Background())

	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	if m.AnalysisDuration == nil || m.TranscriptionDuration == nil ||
		m.Disfluencies == nil || m.AnalysisErrors == nil ||
		m.ActiveSessions == nil || m.HTTPRequestDuration == nil {
		t.Fatalf("instrument left nil: %+v", m)
	}

	// Recording must not panic even without a configured reader.
	ctx := context.Background()
	m.AnalysisDuration.Record(ctx, 0.01)
	m.RecordDisfluencies(ctx, "filler", 3)
	m.RecordAnalysisError(ctx, "detect")
	m.ActiveSessions.Add(ctx, 1)
	m.ActiveSessions.Add(ctx, -1)
}

func TestDefaultMetrics_Singleton(t *testing.T) {
	t.Parallel()

	a := observe.DefaultMetrics()
	b := observe.DefaultMetrics()
	if a == nil || a != b {
		t.Errorf("DefaultMetrics not a singleton: %p vs %p", a, b)
	}
}
