// Package observe provides the service's observability primitives:
// OpenTelemetry metric instruments, a Prometheus exporter bridge, and HTTP
// middleware tying request handling to both metrics and structured logs.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported
// via the Prometheus bridge set up by [InitProvider], so the standard
// /metrics endpoint keeps working. A package-level default [Metrics]
// instance is available through [DefaultMetrics]; tests should build their
// own via [NewMetrics] with a private meter provider to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all Vocal metrics.
const meterName = "github.com/gurnoornatt/vocal"

// latencyBuckets are histogram boundaries (seconds) sized for in-process
// text analysis on the low end and whisper inference on the high end.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// Metrics holds every metric instrument the service records. The underlying
// OTel instruments are safe for concurrent use.
type Metrics struct {
	// AnalysisDuration tracks end-to-end disfluency analysis latency.
	AnalysisDuration metric.Float64Histogram

	// TranscriptionDuration tracks whisper transcription latency.
	TranscriptionDuration metric.Float64Histogram

	// Disfluencies counts detected disfluencies. Attribute: kind.
	Disfluencies metric.Int64Counter

	// AnalysisErrors counts failed analysis calls. Attribute: stage.
	AnalysisErrors metric.Int64Counter

	// ActiveSessions tracks live audio sessions.
	ActiveSessions metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request latency. Attributes: method,
	// path, status.
	HTTPRequestDuration metric.Float64Histogram
}

// NewMetrics creates all instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalysisDuration, err = m.Float64Histogram("vocal.analysis.duration",
		metric.WithDescription("Latency of one disfluency analysis call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranscriptionDuration, err = m.Float64Histogram("vocal.stt.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Disfluencies, err = m.Int64Counter("vocal.analysis.disfluencies",
		metric.WithDescription("Detected disfluencies by kind."),
	); err != nil {
		return nil, err
	}
	if met.AnalysisErrors, err = m.Int64Counter("vocal.analysis.errors",
		metric.WithDescription("Failed analysis calls by stage."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("vocal.active_sessions",
		metric.WithDescription("Number of live audio sessions."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("vocal.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path, and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics], creating it on first
// use from the global meter provider. Panics if instrument creation fails,
// which cannot happen with the global provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordDisfluencies adds n detected disfluencies of the given kind.
func (m *Metrics) RecordDisfluencies(ctx context.Context, kind string, n int64) {
	m.Disfluencies.Add(ctx, n, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordAnalysisError counts one failed analysis at the given stage
// ("input", "detect").
func (m *Metrics) RecordAnalysisError(ctx context.Context, stage string) {
	m.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}
