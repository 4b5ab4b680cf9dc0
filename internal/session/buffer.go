// Package session manages one speaker's audio session: buffering raw PCM
// chunks as they arrive, archiving the take as a WAV file, and running the
// finished recording through transcription, correction, and analysis.
package session

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

const bitsPerSample = 16

// Buffer accumulates raw 16-bit little-endian signed mono PCM for one
// session. It is safe for concurrent use.
type Buffer struct {
	id         string
	sampleRate int

	mu  sync.Mutex
	pcm []byte
}

// NewBuffer returns an empty Buffer with a fresh session ID.
func NewBuffer(sampleRate int) *Buffer {
	return &Buffer{
		id:         uuid.NewString(),
		sampleRate: sampleRate,
	}
}

// ID returns the session's unique identifier.
func (b *Buffer) ID() string { return b.id }

// SampleRate returns the PCM sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Append adds a chunk of raw PCM. A trailing odd byte is kept and completed
// by the next chunk; sample alignment only matters at read time.
func (b *Buffer) Append(chunk []byte) {
	b.mu.Lock()
	b.pcm = append(b.pcm, chunk...)
	b.mu.Unlock()
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pcm)
}

// DurationSeconds returns the buffered audio duration.
func (b *Buffer) DurationSeconds() float64 {
	samples := b.Len() / (bitsPerSample / 8)
	return float64(samples) / float64(b.sampleRate)
}

// Samples converts the buffered PCM to normalized float32 mono samples in
// [-1, 1). A trailing odd byte is dropped.
func (b *Buffer) Samples() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.pcm) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(b.pcm[i*2:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples
}

// WriteWAV archives the buffered audio as <id>.wav under dir and returns
// the written path. The directory is created if missing.
func (b *Buffer) WriteWAV(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("session: create dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, b.id+".wav")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("session: create %q: %w", path, err)
	}

	b.mu.Lock()
	n := len(b.pcm) / 2
	data := make([]int, n)
	for i := 0; i < n; i++ {
		data[i] = int(int16(binary.LittleEndian.Uint16(b.pcm[i*2:])))
	}
	b.mu.Unlock()

	enc := wav.NewEncoder(f, b.sampleRate, bitsPerSample, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: b.sampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return "", fmt.Errorf("session: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("session: finalize wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("session: close %q: %w", path, err)
	}
	return path, nil
}
