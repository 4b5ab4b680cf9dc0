package filler_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/analysis/filler"
	"github.com/gurnoornatt/vocal/internal/annotate"
)

func newDetector() *filler.Detector {
	return filler.New(annotate.NewEnglish())
}

func TestDetect_MixedFillers(t *testing.T) {
	t.Parallel()

	text := "Um, I like, you know, wanted to um test this thing"
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if report.TotalCount != 4 {
		t.Errorf("TotalCount=%d, want 4", report.TotalCount)
	}
	if len(report.WordPositions) != 4 {
		t.Errorf("len(WordPositions)=%d, want 4", len(report.WordPositions))
	}
	if got := report.FillerWords["um"].Count; got != 2 {
		t.Errorf("um.Count=%d, want 2", got)
	}
	if got := report.FillerWords["like"].Count; got != 1 {
		t.Errorf("like.Count=%d, want 1", got)
	}
	if got := report.FillerWords["you_know"].Count; got != 1 {
		t.Errorf("you_know.Count=%d, want 1", got)
	}
}

func TestDetect_ValidLikeUsesAreNotFillers(t *testing.T) {
	t.Parallel()

	text := "I like to read. It looks like a book. I feel like dancing."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount != 0 {
		t.Errorf("TotalCount=%d, want 0; positions: %+v", report.TotalCount, report.WordPositions)
	}
}

func TestDetect_RightExcludedBeforeLocatives(t *testing.T) {
	t.Parallel()

	d := newDetector()

	report, err := d.Detect(context.Background(), "Come right now please")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if _, ok := report.FillerWords["right"]; ok {
		t.Error("'right now' was counted as a filler")
	}

	report, err = d.Detect(context.Background(), "That was hard, right")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got := report.FillerWords["right"]; got == nil || got.Count != 1 {
		t.Errorf("trailing 'right': got %+v, want count 1", got)
	}
}

func TestDetect_PositionsAndContext(t *testing.T) {
	t.Parallel()

	text := "Well that was um awkward"
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	for _, pos := range report.WordPositions {
		if got := text[pos.Start:pos.End]; !strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(pos.Text)) {
			t.Errorf("position %q: text[%d:%d]=%q, want %q", pos.Word, pos.Start, pos.End, got, pos.Text)
		}
		if pos.Context == "" {
			t.Errorf("position %q: empty context", pos.Word)
		}
		if !strings.Contains(text, pos.Context) {
			t.Errorf("context %q not found in source text", pos.Context)
		}
	}
}

func TestDetect_PositionsSorted(t *testing.T) {
	t.Parallel()

	text := "So um, you know, it was like, um basically done, right"
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount == 0 {
		t.Fatal("expected fillers in test text")
	}
	for i := 1; i < len(report.WordPositions); i++ {
		prev, cur := report.WordPositions[i-1], report.WordPositions[i]
		if cur.Start < prev.Start || (cur.Start == prev.Start && cur.Word < prev.Word) {
			t.Errorf("positions out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestDetect_ExamplesCappedAtThree(t *testing.T) {
	t.Parallel()

	text := "Um one. Um two. Um three. Um four. Um five."
	report, err := newDetector().Detect(context.Background(), text)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	stat := report.FillerWords["um"]
	if stat == nil {
		t.Fatal("no um stat")
	}
	if stat.Count != 5 {
		t.Errorf("um.Count=%d, want 5", stat.Count)
	}
	if len(stat.Examples) != analysis.MaxExamples {
		t.Errorf("len(Examples)=%d, want %d", len(stat.Examples), analysis.MaxExamples)
	}
	if stat.Examples[0] != "Um one." {
		t.Errorf("first example=%q, want %q", stat.Examples[0], "Um one.")
	}
}

func TestDetect_EmptyText(t *testing.T) {
	t.Parallel()

	report, err := newDetector().Detect(context.Background(), "")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if report.TotalCount != 0 || len(report.WordPositions) != 0 || len(report.FillerWords) != 0 {
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
	text := "Um, well, it was like, you know, basically fine"

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
