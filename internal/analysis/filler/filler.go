// Package filler implements the Filler-Word Detector: a fixed pattern-table
// scan over each sentence plus a token-level disambiguation rule for the
// word "like", which is only sometimes a filler ("I was like, done" versus
// "I feel like dancing").
//
// Scanning order is fixed and observable: within each sentence every regex
// pattern runs before the token-level "like" pass, and sentences are
// processed in document order. The first three contexts encountered per
// label become that label's examples.
package filler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/annotate"
)

// Detector scans annotated transcripts for filler words. It is immutable
// after construction and safe for concurrent use; the pattern table and
// word sets are fixed at process start.
type Detector struct {
	annotator annotate.Annotator
	patterns  []pattern
}

// New returns a Detector reading annotations from a.
func New(a annotate.Annotator) *Detector {
	return &Detector{
		annotator: a,
		patterns:  defaultPatterns(),
	}
}

// Detect analyzes text and returns a [analysis.FillerReport]. It returns
// [analysis.ErrInvalidInput] for non-text input before any scanning, and
// propagates annotation failures unchanged. Empty input yields a zero
// report.
func (d *Detector) Detect(ctx context.Context, text string) (*analysis.FillerReport, error) {
	if err := analysis.CheckText(text); err != nil {
		return nil, err
	}

	doc, err := d.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("filler: %w", err)
	}

	report := &analysis.FillerReport{
		FillerWords:   map[string]*analysis.FillerStat{},
		WordPositions: []analysis.FillerPosition{},
	}

	// Spans already recorded by any earlier pattern or by the "like" rule.
	// Keyed on absolute (start, end) across the whole document.
	seen := map[[2]int]struct{}{}

	var matches []analysis.Match
	record := func(label string, sent annotate.Sentence, localStart, localEnd int, literal string) {
		start := sent.Start + localStart
		end := sent.Start + localEnd
		if _, dup := seen[[2]int{start, end}]; dup {
			return
		}
		seen[[2]int{start, end}] = struct{}{}

		matchCtx := analysis.Context(sent.Text, localStart, localEnd)
		matches = append(matches, analysis.Match{
			Kind:    analysis.KindFiller,
			Base:    label,
			Start:   start,
			End:     end,
			Text:    literal,
			Context: matchCtx,
		})

		stat := report.FillerWords[label]
		if stat == nil {
			stat = &analysis.FillerStat{Examples: []string{}}
			report.FillerWords[label] = stat
		}
		stat.Count++
		if len(stat.Examples) < analysis.MaxExamples {
			stat.Examples = append(stat.Examples, matchCtx)
		}
	}

	for _, sent := range doc.Sentences {
		// Pass 1: the regex pattern table, in fixed order.
		for _, p := range d.patterns {
			for _, loc := range p.re.FindAllStringIndex(sent.Text, -1) {
				if p.exclude != nil && p.exclude(sent.Text, loc[0], loc[1]) {
					continue
				}
				record(p.label, sent, loc[0], loc[1], sent.Text[loc[0]:loc[1]])
			}
		}

		// Pass 2: the token-level "like" rule.
		for i, tok := range sent.Tokens {
			if strings.ToLower(tok.Text) != "like" || !isFillerLike(sent.Tokens, i) {
				continue
			}
			localStart := tok.Offset - sent.Start
			record("like", sent, localStart, localStart+len(tok.Text), tok.Text)
		}
	}

	analysis.SortMatches(matches)
	for _, m := range matches {
		report.WordPositions = append(report.WordPositions, analysis.FillerPosition{
			Word:    m.Base,
			Start:   m.Start,
			End:     m.End,
			Text:    m.Text,
			Context: m.Context,
		})
	}
	report.TotalCount = len(report.WordPositions)
	return report, nil
}

// isFillerLike decides whether the "like" token at index i is a verbal
// placeholder. The rule excludes, in order:
//
//  1. "like" after a verb-phrase head ("feels like", "looked like").
//  2. "like" after a modal tagged as a verb ("would like").
//  3. subject + "like" + object, read as a transitive verb use.
//  4. "like" ahead of a function word ("like to", "like the").
//
// Anything left is a filler.
func isFillerLike(toks []annotate.Token, i int) bool {
	if i > 0 {
		prev := toks[i-1]
		prevText := strings.ToLower(prev.Text)

		if _, ok := likeVerbHeads[prevText]; ok {
			return false
		}
		if prev.POS == annotate.POSVerb {
			if _, ok := likeModals[prevText]; ok {
				return false
			}
		}
		if (prev.POS == annotate.POSPronoun || prev.POS == annotate.POSProperN || prev.POS == annotate.POSNoun) &&
			prev.Dep == annotate.RoleSubject && i < len(toks)-1 {
			next := toks[i+1]
			if next.Dep == annotate.RoleDirectObj || next.Dep == annotate.RolePrepObj {
				return false
			}
		}
	}

	if i < len(toks)-1 {
		nextText := strings.ToLower(toks[i+1].Text)
		if _, ok := likeFollowers[nextText]; ok {
			return false
		}
	}
	return true
}
