// Package analysis defines the shared data model of the disfluency
// detection engine: spans, candidate matches, and the filler and stutter
// reports, together with the helpers both detectors use to build them.
//
// All offsets in this package are absolute character offsets into the full
// transcript, with half-open [start, end) spans. Reports are constructed
// fresh per call and are immutable once returned; nothing in this package
// caches across calls.
package analysis

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput reports that the detector input is not text. It is
// returned before any scanning happens when the input is not valid UTF-8.
var ErrInvalidInput = errors.New("input is not valid text")

// CheckText validates detector input. Empty text is valid — it yields a
// zero report downstream, not an error.
func CheckText(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidInput
	}
	return nil
}

// Kind identifies which mechanism produced a [Match].
type Kind string

const (
	// KindFiller is a filler-word occurrence ("um", "like", …).
	KindFiller Kind = "filler"

	// KindHyphenated is a hyphen-joined stutter ("I-I-I", "w-w-wanted").
	KindHyphenated Kind = "hyphenated-stutter"

	// KindWord is a token-run stutter ("I I I").
	KindWord Kind = "word-stutter"
)

// Match is one candidate (or resolved) disfluency occurrence.
type Match struct {
	// Kind is the producing mechanism.
	Kind Kind `json:"type"`

	// Base is the lowercased canonical word, or the filler pattern label.
	Base string `json:"base_word"`

	// Count is the repetition count. Zero for filler matches.
	Count int `json:"count,omitempty"`

	// Start and End delimit the half-open absolute character span.
	Start int `json:"start"`
	End   int `json:"end"`

	// Text is the literal matched transcript text.
	Text string `json:"text"`

	// Context is a trimmed window of the originating sentence around the
	// match. It never crosses a sentence boundary.
	Context string `json:"context"`
}

// ContextWindow is the number of characters of sentence context captured on
// each side of a match.
const ContextWindow = 30

// Context extracts the context string for a match within its sentence.
// localStart and localEnd are sentence-relative offsets. The window is
// clamped to the sentence and trimmed of surrounding whitespace.
func Context(sentText string, localStart, localEnd int) string {
	from := localStart - ContextWindow
	if from < 0 {
		from = 0
	}
	to := localEnd + ContextWindow
	if to > len(sentText) {
		to = len(sentText)
	}
	return strings.TrimSpace(sentText[from:to])
}

// SortMatches orders matches ascending by start offset, ties broken by base
// label. The sort is stable so same-span candidates keep insertion order.
func SortMatches(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Start != ms[j].Start {
			return ms[i].Start < ms[j].Start
		}
		return ms[i].Base < ms[j].Base
	})
}

// MaxExamples caps the example contexts retained per filler label.
const MaxExamples = 3

// FillerStat aggregates one filler label across the transcript.
type FillerStat struct {
	// Count is the number of accepted occurrences.
	Count int `json:"count"`

	// Examples holds up to [MaxExamples] contexts, first-encountered in
	// scan order.
	Examples []string `json:"examples"`
}

// FillerPosition is one accepted filler occurrence as it appears in the
// report payload.
type FillerPosition struct {
	// Word is the filler pattern label ("um", "you_know", "like", …).
	Word string `json:"word"`

	// Start and End delimit the half-open absolute character span.
	Start int `json:"start"`
	End   int `json:"end"`

	// Text is the literal matched transcript text.
	Text string `json:"text"`

	// Context is the trimmed sentence window around the match.
	Context string `json:"context"`
}

// FillerReport is the Filler-Word Detector output.
type FillerReport struct {
	// TotalCount always equals len(WordPositions).
	TotalCount int `json:"total_count"`

	// FillerWords maps label to aggregate count and example contexts.
	FillerWords map[string]*FillerStat `json:"filler_words"`

	// WordPositions lists every accepted match, sorted by (start, label).
	WordPositions []FillerPosition `json:"word_positions"`
}

// StutterReport is the Stutter Detector output. The two match lists are
// the resolved (non-overlapping) matches partitioned by kind.
type StutterReport struct {
	// TotalCount is the combined number of resolved matches.
	TotalCount int `json:"total_count"`

	// Hyphenated holds resolved hyphen-joined stutters, sorted.
	Hyphenated []Match `json:"hyphenated_stutters"`

	// Word holds resolved token-run stutters, sorted.
	Word []Match `json:"word_stutters"`

	// Patterns is a histogram keyed "{base} (x{count})".
	Patterns map[string]int `json:"stutter_patterns"`
}

// Result bundles both reports for one transcript.
type Result struct {
	Filler  *FillerReport  `json:"filler_words"`
	Stutter *StutterReport `json:"stutters"`
}
