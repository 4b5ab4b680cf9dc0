// Package config provides the configuration schema and loader for the Vocal
// disfluency analysis server.
package config

// LogLevel controls log verbosity for the Vocal server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for Vocal.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	STT      STTConfig      `yaml:"stt"`
	Session  SessionConfig  `yaml:"session"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds network and logging settings for the Vocal server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// STTConfig selects and configures the speech-to-text backend.
type STTConfig struct {
	// ModelPath is the whisper.cpp model file (e.g., "models/ggml-base.en.bin").
	// When empty the server falls back to a mock transcriber, which is only
	// useful for development and tests.
	ModelPath string `yaml:"model_path"`

	// Language is the BCP-47 transcription language. Defaults to "en".
	Language string `yaml:"language"`

	// SampleRate is the PCM sample rate (Hz) of incoming audio.
	// Defaults to 16000.
	SampleRate int `yaml:"sample_rate"`
}

// SessionConfig holds audio session settings.
type SessionConfig struct {
	// ArchiveDir, when set, receives a WAV copy of every finished session.
	ArchiveDir string `yaml:"archive_dir"`

	// MaxDurationSeconds caps the audio a single session may buffer.
	// Defaults to 300 (5 minutes).
	MaxDurationSeconds int `yaml:"max_duration_seconds"`
}

// AnalysisConfig holds disfluency-analysis settings.
type AnalysisConfig struct {
	// PracticeWords are the speaker's target words; transcription near-misses
	// of these are phonetically corrected before analysis.
	PracticeWords []string `yaml:"practice_words"`

	// PhoneticThreshold is the minimum similarity score accepted for a
	// phonetically-matched practice word. Defaults to 0.70.
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum similarity score for the pure string
	// similarity fallback. Defaults to 0.85.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}
