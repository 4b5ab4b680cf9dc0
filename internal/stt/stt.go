// Package stt defines the speech-to-text boundary. Audio sessions are
// transcribed in one shot after the speaker finishes; there is no streaming
// partial-result path, so the interface is a single blocking call over the
// complete sample buffer.
package stt

import "context"

// Transcript is the result of transcribing one audio session.
type Transcript struct {
	// Text is the recognized speech, segments joined with single spaces.
	Text string `json:"text"`

	// Language is the BCP-47 code transcription ran with.
	Language string `json:"language"`

	// DurationSeconds is the audio duration derived from the sample count.
	DurationSeconds float64 `json:"duration_seconds"`
}

// Transcriber converts mono float32 PCM samples into text.
//
// Implementations must be safe for concurrent Transcribe calls. Close
// releases model resources and must be called exactly once, after all
// Transcribe calls have returned.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (Transcript, error)
	Close() error
}
