package stutter_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/analysis/stutter"
	"github.com/gurnoornatt/vocal/internal/annotate"
)

func newDetector() *stutter.Detector {
	return stutter.New(annotate.NewEnglish())
}

func TestDetect_HyphenatedStutters(t *testing.T) {
	t.Parallel()

	text := "I-I-I was thinking about it. He w-w-wanted to go."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if report.TotalCount != 2 {
		t.Fatalf("TotalCount=%d, want 2", report.TotalCount)
	}
	if len(report.Hyphenated) != 2 {
		t.Fatalf("len(Hyphenated)=%d, want 2: %+v", len(report.Hyphenated), report.Hyphenated)
	}

	first := report.Hyphenated[0]
	if first.Base != "i" || first.Count != 3 || first.Text != "I-I-I" {
		t.Errorf("first match: got {base %q count %d text %q}, want {i 3 I-I-I}", first.Base, first.Count, first.Text)
	}
	second := report.Hyphenated[1]
	if second.Base != "w" || second.Count != 3 || second.Text != "w-w-wanted" {
		t.Errorf("second match: got {base %q count %d text %q}, want {w 3 w-w-wanted}", second.Base, second.Count, second.Text)
	}
}

func TestDetect_WordStutters(t *testing.T) {
	t.Parallel()

	text := "I I I was nervous. He was very very, very excited."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if report.TotalCount != 2 {
		t.Fatalf("TotalCount=%d, want 2", report.TotalCount)
	}
	if len(report.Word) != 2 {
		t.Fatalf("len(Word)=%d, want 2: %+v", len(report.Word), report.Word)
	}
	if report.Word[0].Base != "i" || report.Word[0].Count != 3 {
		t.Errorf("first: got {%q x%d}, want {i x3}", report.Word[0].Base, report.Word[0].Count)
	}
	if report.Word[1].Base != "very" || report.Word[1].Count != 3 {
		t.Errorf("second: got {%q x%d}, want {very x3}", report.Word[1].Base, report.Word[1].Count)
	}
}

func TestDetect_StopWordsExcluded(t *testing.T) {
	t.Parallel()

	report, err := newDetector().Detect(context.Background(), "The the the and and and.")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount != 0 {
		t.Errorf("TotalCount=%d, want 0: %+v", report.TotalCount, report)
	}
}

func TestDetect_CaseInsensitiveOverlapResolution(t *testing.T) {
	t.Parallel()

	text := "Yes YES yes! W-w-WHAT what What?"
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if report.TotalCount != 2 {
		t.Fatalf("TotalCount=%d, want 2: %+v", report.TotalCount, report)
	}
	if len(report.Word) != 1 || report.Word[0].Base != "yes" || report.Word[0].Count != 3 {
		t.Errorf("Word: got %+v, want one {yes x3}", report.Word)
	}
	if len(report.Hyphenated) != 1 || report.Hyphenated[0].Text != "W-w-WHAT" {
		t.Errorf("Hyphenated: got %+v, want one {W-w-WHAT}", report.Hyphenated)
	}
}

func TestDetect_PauseBridgedPairQualifies(t *testing.T) {
	t.Parallel()

	report, err := newDetector().Detect(context.Background(), "It was scary, scary.")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(report.Word) != 1 {
		t.Fatalf("len(Word)=%d, want 1: %+v", len(report.Word), report.Word)
	}
	if got := report.Word[0]; got.Base != "scary" || got.Count != 2 {
		t.Errorf("got {%q x%d}, want {scary x2}", got.Base, got.Count)
	}
}

func TestDetect_PlainPairDoesNotQualify(t *testing.T) {
	t.Parallel()

	report, err := newDetector().Detect(context.Background(), "It was scary scary out there.")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount != 0 {
		t.Errorf("TotalCount=%d, want 0: %+v", report.TotalCount, report)
	}
}

func TestDetect_PatternsHistogram(t *testing.T) {
	t.Parallel()

	text := "I-I-I went. I-I-I stayed. No no no."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if got := report.Patterns["i (x3)"]; got != 2 {
		t.Errorf(`Patterns["i (x3)"]=%d, want 2`, got)
	}
	if got := report.Patterns["no (x3)"]; got != 1 {
		t.Errorf(`Patterns["no (x3)"]=%d, want 1`, got)
	}
}

func TestDetect_ResolvedMatchesDoNotOverlap(t *testing.T) {
	t.Parallel()

	text := "Yes YES yes! W-w-WHAT what What? I-I-I mean mean mean it."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	all := append(append([]analysis.Match{}, report.Hyphenated...), report.Word...)
	analysis.SortMatches(all)
	for i := 1; i < len(all); i++ {
		if all[i].Start < all[i-1].End {
			t.Errorf("matches overlap: %+v and %+v", all[i-1], all[i])
		}
	}
}

func TestDetect_ContextStaysInSentence(t *testing.T) {
	t.Parallel()

	text := "First sentence here. He w-w-wanted to go home today. Last sentence here."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(report.Hyphenated) != 1 {
		t.Fatalf("len(Hyphenated)=%d, want 1", len(report.Hyphenated))
	}
	ctx := report.Hyphenated[0].Context
	if ctx == "" {
		t.Fatal("empty context")
	}
	sent := "He w-w-wanted to go home today."
	if !contains(sent, ctx) {
		t.Errorf("context %q escapes its sentence %q", ctx, sent)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	t.Parallel()

	report, err := newDetector().Detect(context.Background(), "")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount != 0 || len(report.Hyphenated) != 0 || len(report.Word) != 0 {
		t.Errorf("empty text: got non-zero report %+v", report)
	}
}

func TestDetect_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := newDetector().Detect(context.Background(), "bad \xff bytes")
	if !errors.Is(err, analysis.ErrInvalidInput) {
		t.Fatalf("got err=%v, want ErrInvalidInput", err)
	}
}

func TestDetect_Idempotent(t *testing.T) {
	t.Parallel()

	d := newDetector()
	text := "I-I-I was very very, very nervous. Yes yes yes."

	first, err := d.Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	second, err := d.Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ between runs:\n%+v\n%+v", first, second)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
