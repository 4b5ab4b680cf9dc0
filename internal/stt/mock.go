package stt

import "context"

// Compile-time assertion that Mock satisfies Transcriber.
var _ Transcriber = (*Mock)(nil)

// Mock is a deterministic [Transcriber] for development and tests. It
// returns a fixed text regardless of input, so the service can run without
// a whisper model on disk.
type Mock struct {
	// Text is returned from every Transcribe call.
	Text string

	// SampleRate is used for duration reporting. Defaults to 16000.
	SampleRate int

	// Err, when set, is returned from every Transcribe call.
	Err error
}

// Transcribe returns the configured text or error.
func (m *Mock) Transcribe(ctx context.Context, samples []float32) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	if m.Err != nil {
		return Transcript{}, m.Err
	}
	sr := m.SampleRate
	if sr <= 0 {
		sr = defaultSampleRate
	}
	return Transcript{
		Text:            m.Text,
		Language:        defaultLanguage,
		DurationSeconds: float64(len(samples)) / float64(sr),
	}, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }
