package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/engine"
	"github.com/gurnoornatt/vocal/internal/observe"
	"github.com/gurnoornatt/vocal/internal/stt"
	"github.com/gurnoornatt/vocal/internal/transcript"
)

// Report is the full result of one processed audio session.
type Report struct {
	SessionID  string                `json:"session_id"`
	Transcript stt.Transcript        `json:"transcript"`
	Corrected  *transcript.Corrected `json:"corrected"`
	Analysis   *analysis.Result      `json:"analysis"`
	AudioPath  string                `json:"audio_path,omitempty"`
}

// Processor runs a finished session buffer through the full pipeline:
// transcription, practice-word correction, then disfluency analysis. It is
// immutable after construction and safe for concurrent use.
type Processor struct {
	transcriber stt.Transcriber
	corrector   *transcript.Corrector
	engine      *engine.Engine
	metrics     *observe.Metrics

	// archiveDir, when non-empty, receives a WAV copy of every session.
	archiveDir string
}

// ProcessorOption customizes a [Processor].
type ProcessorOption func(*Processor)

// WithArchiveDir archives each session's audio as a WAV file under dir.
func WithArchiveDir(dir string) ProcessorOption {
	return func(p *Processor) { p.archiveDir = dir }
}

// WithProcessorMetrics records transcription latency and session counts.
func WithProcessorMetrics(m *observe.Metrics) ProcessorOption {
	return func(p *Processor) { p.metrics = m }
}

// NewProcessor returns a Processor using the given pipeline stages.
func NewProcessor(t stt.Transcriber, c *transcript.Corrector, e *engine.Engine, opts ...ProcessorOption) *Processor {
	p := &Processor{
		transcriber: t,
		corrector:   c,
		engine:      e,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process transcribes, corrects, and analyzes the buffered session audio.
// The detectors run over the corrected text so recognizer misspellings of
// practice words do not hide disfluencies around them.
func (p *Processor) Process(ctx context.Context, buf *Buffer) (*Report, error) {
	report := &Report{SessionID: buf.ID()}

	if p.archiveDir != "" {
		path, err := buf.WriteWAV(p.archiveDir)
		if err != nil {
			// Archiving is best effort; a failed write must not lose the take.
			slog.Error("failed to archive session audio", "session", buf.ID(), "error", err)
		} else {
			report.AudioPath = path
		}
	}

	start := time.Now()
	tr, err := p.transcriber.Transcribe(ctx, buf.Samples())
	if err != nil {
		return nil, fmt.Errorf("session %s: transcribe: %w", buf.ID(), err)
	}
	if p.metrics != nil {
		p.metrics.TranscriptionDuration.Record(ctx, time.Since(start).Seconds())
	}
	report.Transcript = tr

	report.Corrected = p.corrector.Correct(tr.Text)

	result, err := p.engine.Analyze(ctx, report.Corrected.Text)
	if err != nil {
		return nil, fmt.Errorf("session %s: analyze: %w", buf.ID(), err)
	}
	report.Analysis = result

	slog.Info("session processed",
		"session", buf.ID(),
		"audio_seconds", buf.DurationSeconds(),
		"corrections", len(report.Corrected.Corrections),
		"fillers", result.Filler.TotalCount,
		"stutters", result.Stutter.TotalCount,
	)
	return report, nil
}
