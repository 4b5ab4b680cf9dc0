// Package transcript post-processes speech-to-text output before it reaches
// the disfluency detectors. The only correction stage is phonetic practice
// word alignment; detectors must see the speaker's intended words, not the
// recognizer's best guess at them.
package transcript

import (
	"strings"
)

// Matcher aligns one transcribed word or phrase with a practice word.
// When matched is false, corrected must equal word unchanged.
type Matcher interface {
	Match(word string, practice []string) (corrected string, confidence float64, matched bool)
}

// Correction records one replaced span.
type Correction struct {
	Original   string  `json:"original"`
	Corrected  string  `json:"corrected"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Corrected is the result of running a transcript through the corrector.
type Corrected struct {
	Original    string       `json:"original"`
	Text        string       `json:"text"`
	Corrections []Correction `json:"corrections"`
}

// Corrector rewrites transcripts so that near-misses of the speaker's
// practice words read as the words themselves. It is immutable after
// construction and safe for concurrent use.
type Corrector struct {
	matcher  Matcher
	practice []string
	maxWords int
}

// NewCorrector returns a Corrector testing transcripts against the given
// practice words. An empty practice list yields a pass-through corrector.
func NewCorrector(m Matcher, practice []string) *Corrector {
	return &Corrector{
		matcher:  m,
		practice: practice,
		maxWords: maxWordCount(practice),
	}
}

// Correct applies phonetic practice-word alignment to text.
//
// The text is tokenized on whitespace. At each position, n-gram windows are
// tried from the widest practice phrase down to a single token; the longest
// matching window wins so multi-word phrases take precedence over partial
// single-word matches. Unmatched tokens pass through untouched.
func (c *Corrector) Correct(text string) *Corrected {
	result := &Corrected{
		Original:    text,
		Text:        text,
		Corrections: []Correction{},
	}
	if c.matcher == nil || len(c.practice) == 0 {
		return result
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return result
	}

	var output []string
	i := 0
	for i < len(tokens) {
		maxN := c.maxWords
		if i+maxN > len(tokens) {
			maxN = len(tokens) - i
		}

		matched := false
		for n := maxN; n >= 1; n-- {
			window := strings.Join(tokens[i:i+n], " ")
			pw, conf, ok := c.matcher.Match(window, c.practice)
			if !ok {
				continue
			}
			output = append(output, strings.Fields(pw)...)
			result.Corrections = append(result.Corrections, Correction{
				Original:   window,
				Corrected:  pw,
				Confidence: conf,
				Method:     "phonetic",
			})
			i += n
			matched = true
			break
		}
		if !matched {
			output = append(output, tokens[i])
			i++
		}
	}

	result.Text = strings.Join(output, " ")
	return result
}

// maxWordCount returns the widest practice phrase in words. Returns 1 when
// the list is empty.
func maxWordCount(practice []string) int {
	max := 1
	for _, p := range practice {
		if n := len(strings.Fields(p)); n > max {
			max = n
		}
	}
	return max
}
