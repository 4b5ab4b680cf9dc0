// This file contains the Whisper implementation backed by the whisper.cpp
// CGO bindings. The whisper.cpp static library (libwhisper.a) and headers
// (whisper.h) must be available at link time via LIBRARY_PATH and
// C_INCLUDE_PATH environment variables.

package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

const (
	defaultLanguage   = "en"
	defaultSampleRate = 16000
)

// Compile-time assertion that Whisper satisfies Transcriber.
var _ Transcriber = (*Whisper)(nil)

// Whisper implements [Transcriber] using the whisper.cpp Go bindings. The
// model is loaded once at startup and shared across all sessions; each
// Transcribe call creates its own inference context, so concurrent calls do
// not interfere.
type Whisper struct {
	model      whisperlib.Model
	language   string
	sampleRate int
}

// WhisperOption is a functional option for configuring a [Whisper].
type WhisperOption func(*Whisper)

// WithLanguage sets the BCP-47 language code for transcription (e.g. "en",
// "de"). Defaults to "en".
func WithLanguage(lang string) WhisperOption {
	return func(w *Whisper) { w.language = lang }
}

// WithSampleRate sets the sample rate (Hz) of the audio handed to
// Transcribe, used only for duration reporting. Defaults to 16000.
func WithSampleRate(rate int) WhisperOption {
	return func(w *Whisper) { w.sampleRate = rate }
}

// NewWhisper loads the whisper.cpp model from modelPath. The caller must
// call Close when the transcriber is no longer needed.
func NewWhisper(modelPath string, opts ...WhisperOption) (*Whisper, error) {
	if modelPath == "" {
		return nil, errors.New("stt: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("stt: load model %q: %w", modelPath, err)
	}

	w := &Whisper{
		model:      model,
		language:   defaultLanguage,
		sampleRate: defaultSampleRate,
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Close releases the whisper model.
func (w *Whisper) Close() error {
	if w.model != nil {
		return w.model.Close()
	}
	return nil
}

// Transcribe runs whisper.cpp inference over the complete sample buffer and
// returns the concatenated segment text.
func (w *Whisper) Transcribe(ctx context.Context, samples []float32) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, fmt.Errorf("stt: context already cancelled: %w", err)
	}
	t := Transcript{
		Language:        w.language,
		DurationSeconds: float64(len(samples)) / float64(w.sampleRate),
	}
	if len(samples) == 0 {
		return t, nil
	}

	// Each whisper context is NOT thread-safe, but the model can be shared
	// across goroutines.
	wctx, err := w.model.NewContext()
	if err != nil {
		return Transcript{}, fmt.Errorf("stt: create context: %w", err)
	}
	if err := wctx.SetLanguage(w.language); err != nil {
		slog.Warn("failed to set whisper language, using default", "language", w.language, "error", err)
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return Transcript{}, fmt.Errorf("stt: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Transcript{}, fmt.Errorf("stt: read segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	t.Text = strings.Join(parts, " ")
	return t, nil
}
