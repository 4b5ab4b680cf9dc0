package phonetic_test

import (
	"testing"

	"github.com/gurnoornatt/vocal/internal/transcript/phonetic"
)

func TestMatcher_PhoneticNearMiss(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	practice := []string{"wanted", "basically", "nervous"}

	corrected, conf, matched := m.Match("wonted", practice)
	if !matched {
		t.Fatalf("Match(%q): matched=false, want true", "wonted")
	}
	if corrected != "wanted" {
		t.Errorf("Match(%q): corrected=%q, want %q", "wonted", corrected, "wanted")
	}
	if conf < 0.7 {
		t.Errorf("Match(%q): confidence=%f, want >= 0.7", "wonted", conf)
	}
}

func TestMatcher_MisspelledPracticeWord(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	practice := []string{"basically", "wanted"}

	corrected, _, matched := m.Match("basicly", practice)
	if !matched {
		t.Fatalf("Match(%q): matched=false, want true", "basicly")
	}
	if corrected != "basically" {
		t.Errorf("Match(%q): corrected=%q, want %q", "basicly", corrected, "basically")
	}
}

func TestMatcher_ExactSpellingLeftAlone(t *testing.T) {
	t.Parallel()

	m := phonetic.New()

	corrected, conf, matched := m.Match("wanted", []string{"wanted"})
	if matched {
		t.Fatalf("Match(%q): matched=true for already-correct word", "wanted")
	}
	if corrected != "wanted" || conf != 0 {
		t.Errorf("Match(%q): got (%q, %f), want unchanged word and 0", "wanted", corrected, conf)
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	t.Parallel()

	m := phonetic.New()

	corrected, conf, matched := m.Match("zebra", []string{"wanted", "basically"})
	if matched {
		t.Fatalf("Match(%q): matched=true, want false", "zebra")
	}
	if corrected != "zebra" || conf != 0 {
		t.Errorf("Match(%q): got (%q, %f), want unchanged word and 0", "zebra", corrected, conf)
	}
}

func TestMatcher_EmptyInputs(t *testing.T) {
	t.Parallel()

	m := phonetic.New()

	if _, _, matched := m.Match("word", nil); matched {
		t.Error("Match with no practice words: matched=true")
	}
	if _, _, matched := m.Match("   ", []string{"wanted"}); matched {
		t.Error("Match with blank word: matched=true")
	}
}

func TestMatcher_StrictThresholdRejects(t *testing.T) {
	t.Parallel()

	m := phonetic.New(phonetic.WithPhoneticThreshold(0.99))

	if _, _, matched := m.Match("wonted", []string{"wanted"}); matched {
		t.Error("Match with 0.99 threshold accepted a near-miss")
	}
}
