package config_test

import (
	"strings"
	"testing"

	"github.com/gurnoornatt/vocal/internal/config"
)

const validYAML = `
server:
  listen_addr: ":8080"
  log_level: debug
stt:
  model_path: models/ggml-base.en.bin
  language: en
  sample_rate: 16000
session:
  archive_dir: /tmp/vocal-sessions
  max_duration_seconds: 120
analysis:
  practice_words:
    - wanted
    - basically
  phonetic_threshold: 0.7
  fuzzy_threshold: 0.85
`

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(validYAML))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr=%q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel=%q, want debug", cfg.Server.LogLevel)
	}
	if cfg.STT.SampleRate != 16000 {
		t.Errorf("SampleRate=%d, want 16000", cfg.STT.SampleRate)
	}
	if len(cfg.Analysis.PracticeWords) != 2 {
		t.Errorf("PracticeWords=%v, want two entries", cfg.Analysis.PracticeWords)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	yaml := "server:\n  listen_addr: \":8080\"\n  bogus_field: true\n"
	if _, err := config.LoadFromReader(strings.NewReader(yaml)); err == nil {
		t.Fatal("unknown field accepted, want decode error")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "verbose"
	if err := config.Validate(cfg); err == nil {
		t.Fatal("invalid log level accepted")
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Analysis.PhoneticThreshold = 1.5
	if err := config.Validate(cfg); err == nil {
		t.Fatal("out-of-range threshold accepted")
	}
}

func TestValidate_DuplicatePracticeWords(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Analysis.PracticeWords = []string{"wanted", "Wanted"}
	if err := config.Validate(cfg); err == nil {
		t.Fatal("duplicate practice words accepted")
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "loud"
	cfg.STT.SampleRate = -1
	cfg.Analysis.FuzzyThreshold = 2

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	msg := err.Error()
	for _, want := range []string{"log_level", "sample_rate", "fuzzy_threshold"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, lvl := range []config.LogLevel{config.LogDebug, config.LogInfo, config.LogWarn, config.LogError} {
		if !lvl.IsValid() {
			t.Errorf("%q reported invalid", lvl)
		}
	}
	if config.LogLevel("trace").IsValid() {
		t.Error("trace reported valid")
	}
}
