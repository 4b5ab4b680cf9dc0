package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.STT.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("stt.sample_rate %d must not be negative", cfg.STT.SampleRate))
	}

	if cfg.Session.MaxDurationSeconds < 0 {
		errs = append(errs, fmt.Errorf("session.max_duration_seconds %d must not be negative", cfg.Session.MaxDurationSeconds))
	}

	if cfg.Analysis.PhoneticThreshold < 0 || cfg.Analysis.PhoneticThreshold > 1 {
		errs = append(errs, fmt.Errorf("analysis.phonetic_threshold %.2f is out of range [0, 1]", cfg.Analysis.PhoneticThreshold))
	}
	if cfg.Analysis.FuzzyThreshold < 0 || cfg.Analysis.FuzzyThreshold > 1 {
		errs = append(errs, fmt.Errorf("analysis.fuzzy_threshold %.2f is out of range [0, 1]", cfg.Analysis.FuzzyThreshold))
	}

	seen := make(map[string]int, len(cfg.Analysis.PracticeWords))
	for i, w := range cfg.Analysis.PracticeWords {
		if strings.TrimSpace(w) == "" {
			errs = append(errs, fmt.Errorf("analysis.practice_words[%d] is empty", i))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(w))
		if prev, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("analysis.practice_words[%d] %q is a duplicate of practice_words[%d]", i, w, prev))
			continue
		}
		seen[key] = i
	}

	return errors.Join(errs...)
}
