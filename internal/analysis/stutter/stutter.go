// Package stutter implements the Stutter Detector. Two independent
// mechanisms produce candidates per sentence:
//
//   - Hyphen-joined repeats, found in the raw sentence text: exact repeats
//     like "I-I-I" and partial (truncated-onset) repeats like "w-w-wanted".
//   - Token-run repeats, found in the token sequence: "I I I", including
//     runs bridged by pause punctuation ("very very, very").
//
// Candidates from both mechanisms are merged document-wide and reduced to a
// non-overlapping set by cluster resolution, keeping the candidate with the
// highest repetition count per cluster.
package stutter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/annotate"
)

// partialRepeatCount is the fixed repetition count assigned to every
// partial hyphen repeat. The number of fragments in a truncated onset does
// not track perceived severity, so all partial hits weigh the same.
const partialRepeatCount = 3

// hyphenChain matches a word followed by one or more hyphen-joined
// fragments ("I-I-I", "w-w-wanted"). Segment comparison happens in Go; RE2
// has no backreferences.
var hyphenChain = regexp.MustCompile(`\b\w+(?:-\w+)+\b`)

// stopWords are short function words excluded from both mechanisms; their
// repetition rarely indicates stuttering and would dominate counts.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// bridgingPunct are the punctuation tokens allowed to sit inside a token
// run as a pause without breaking it.
var bridgingPunct = map[string]struct{}{
	",": {}, ".": {}, "...": {}, "?": {}, "!": {},
}

// Detector scans annotated transcripts for stutters. It is immutable after
// construction and safe for concurrent use.
type Detector struct {
	annotator annotate.Annotator
}

// New returns a Detector reading annotations from a.
func New(a annotate.Annotator) *Detector {
	return &Detector{annotator: a}
}

// Detect analyzes text and returns a [analysis.StutterReport]. It returns
// [analysis.ErrInvalidInput] for non-text input before any scanning, and
// propagates annotation failures unchanged. Empty input yields a zero
// report.
func (d *Detector) Detect(ctx context.Context, text string) (*analysis.StutterReport, error) {
	if err := analysis.CheckText(text); err != nil {
		return nil, err
	}

	doc, err := d.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("stutter: %w", err)
	}

	var candidates []analysis.Match
	for _, sent := range doc.Sentences {
		candidates = append(candidates, hyphenCandidates(sent)...)
		candidates = append(candidates, runCandidates(sent)...)
	}

	resolved := resolveOverlaps(candidates)

	report := &analysis.StutterReport{
		TotalCount: len(resolved),
		Hyphenated: []analysis.Match{},
		Word:       []analysis.Match{},
		Patterns:   map[string]int{},
	}
	for _, m := range resolved {
		switch m.Kind {
		case analysis.KindHyphenated:
			report.Hyphenated = append(report.Hyphenated, m)
		case analysis.KindWord:
			report.Word = append(report.Word, m)
		}
		report.Patterns[fmt.Sprintf("%s (x%d)", m.Base, m.Count)]++
	}
	analysis.SortMatches(report.Hyphenated)
	analysis.SortMatches(report.Word)
	return report, nil
}

// hyphenCandidates finds hyphen-joined repeats in the raw sentence text.
// A chain whose segments all repeat the first word yields an exact-repeat
// candidate counted by segment. Every chain additionally yields a partial
// candidate with the fixed [partialRepeatCount] — truncated onsets like
// "w-w-wanted" have no exact repeat to count. The exact candidate is
// emitted first so it wins count ties during resolution.
func hyphenCandidates(sent annotate.Sentence) []analysis.Match {
	var out []analysis.Match
	for _, loc := range hyphenChain.FindAllStringIndex(sent.Text, -1) {
		literal := sent.Text[loc[0]:loc[1]]
		segments := strings.Split(literal, "-")
		base := strings.ToLower(segments[0])
		if _, stop := stopWords[base]; stop {
			continue
		}

		start := sent.Start + loc[0]
		end := sent.Start + loc[1]
		matchCtx := analysis.Context(sent.Text, loc[0], loc[1])

		if allEqualFold(segments) {
			out = append(out, analysis.Match{
				Kind:    analysis.KindHyphenated,
				Base:    base,
				Count:   len(segments),
				Start:   start,
				End:     end,
				Text:    literal,
				Context: matchCtx,
			})
		}
		out = append(out, analysis.Match{
			Kind:    analysis.KindHyphenated,
			Base:    base,
			Count:   partialRepeatCount,
			Start:   start,
			End:     end,
			Text:    literal,
			Context: matchCtx,
		})
	}
	return out
}

func allEqualFold(segments []string) bool {
	for _, s := range segments[1:] {
		if !strings.EqualFold(s, segments[0]) {
			return false
		}
	}
	return true
}

// runCandidates finds repeated-token runs in the sentence. From each
// non-stop-word token the run extends greedily: bridging punctuation keeps
// the run alive and marks a pause, other punctuation is skipped silently,
// and a case-insensitive repeat of the base word extends the run. A run
// qualifies at three repetitions, or at exactly two when the run ended on a
// pause. Scanning resumes just past each run.
func runCandidates(sent annotate.Sentence) []analysis.Match {
	var out []analysis.Match
	toks := sent.Tokens

	i := 0
	for i < len(toks) {
		base := strings.ToLower(toks[i].Text)
		if _, stop := stopWords[base]; stop {
			i++
			continue
		}

		count := 1
		last := toks[i]
		pause := false
		j := i + 1
		for j < len(toks) {
			next := toks[j]
			if _, bridging := bridgingPunct[next.Text]; bridging {
				pause = true
				j++
				continue
			}
			if next.POS == annotate.POSPunct {
				j++
				continue
			}
			if strings.ToLower(next.Text) != base {
				break
			}
			count++
			last = next
			pause = false
			j++
		}

		if count >= 3 || (count == 2 && pause) {
			localStart := toks[i].Offset - sent.Start
			localEnd := last.End() - sent.Start
			out = append(out, analysis.Match{
				Kind:    analysis.KindWord,
				Base:    base,
				Count:   count,
				Start:   toks[i].Offset,
				End:     last.End(),
				Text:    sent.Text[localStart:localEnd],
				Context: analysis.Context(sent.Text, localStart, localEnd),
			})
		}
		i = j
	}
	return out
}

// resolveOverlaps reduces the candidate set to non-overlapping matches.
// Candidates are sorted by (start, base); a cluster absorbs every
// subsequent candidate starting before the FIRST member's end — the
// comparison endpoint stays fixed as members are absorbed — and the member
// with the highest repetition count represents the cluster, first
// encountered winning ties.
func resolveOverlaps(candidates []analysis.Match) []analysis.Match {
	analysis.SortMatches(candidates)

	var resolved []analysis.Match
	i := 0
	for i < len(candidates) {
		current := candidates[i]
		best := current
		j := i + 1
		for j < len(candidates) && candidates[j].Start < current.End {
			if candidates[j].Count > best.Count {
				best = candidates[j]
			}
			j++
		}
		resolved = append(resolved, best)
		i = j
	}
	return resolved
}
