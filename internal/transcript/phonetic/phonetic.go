// Package phonetic matches transcribed words against a speaker's practice
// list using Double Metaphone phonetic encoding combined with Jaro-Winkler
// string similarity.
//
// Speech-to-text output frequently mangles exactly the words a speaker
// struggles with ("wanted" heard as "wonted", "basically" as "basicly").
// The matcher proceeds in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the transcribed word and for each practice word. A practice word whose
//     code set overlaps the input's becomes a candidate.
//
//  2. Jaro-Winkler ranking: among candidates, the practice word with the
//     highest Jaro-Winkler similarity (case-insensitive, on the original
//     strings) wins, provided its score clears the phonetic threshold.
//
// When no phonetic candidate exists, a fallback pass tests pure Jaro-Winkler
// similarity against every practice word with a stricter fuzzy threshold.
//
// Multi-word practice phrases ("public speaking") are supported: codes are
// computed per word and the ranking considers the best pairwise score.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched practice word to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic candidate exists and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher aligns transcribed words with practice words. It is read-only
// after construction and safe for concurrent use.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a [Matcher] configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match finds the practice word most phonetically similar to word.
//
// word may be a single word or a space-separated phrase. When matched is
// false, corrected equals word unchanged and confidence is 0.
func (m *Matcher) Match(word string, practice []string) (corrected string, confidence float64, matched bool) {
	if len(practice) == 0 || strings.TrimSpace(word) == "" {
		return word, 0, false
	}

	wordLower := strings.ToLower(strings.TrimSpace(word))
	wordTokens := strings.Fields(wordLower)
	inputCodes := codesForTokens(wordTokens)

	type candidate struct {
		word     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, pw := range practice {
		pwLower := strings.ToLower(strings.TrimSpace(pw))
		if pwLower == "" {
			continue
		}
		if pwLower == wordLower {
			// Already spelled correctly; nothing to fix.
			return word, 0, false
		}
		pwTokens := strings.Fields(pwLower)

		phoneticMatch := codesOverlap(inputCodes, codesForTokens(pwTokens))
		score := bestScore(wordTokens, pwTokens, wordLower, pwLower)

		if phoneticMatch {
			if score >= m.phoneticThreshold && (!best.phonetic || score > best.score) {
				best = candidate{word: pw, score: score, phonetic: true}
			}
		} else if !best.phonetic && score >= m.fuzzyThreshold && score > best.score {
			best = candidate{word: pw, score: score, phonetic: false}
		}
	}

	if best.word != "" {
		return best.word, best.score, true
	}
	return word, 0, false
}

// codesForTokens returns the union of all Double Metaphone codes for the
// given tokens. Empty codes are excluded.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestScore computes the highest Jaro-Winkler similarity between the input
// and the practice word: full strings, space-stripped strings, and the best
// pairwise token score.
func bestScore(inputTokens, pwTokens []string, inputFull, pwFull string) float64 {
	score := matchr.JaroWinkler(inputFull, pwFull, false)

	if len(inputTokens) > 1 || len(pwTokens) > 1 {
		c1 := strings.Join(inputTokens, "")
		c2 := strings.Join(pwTokens, "")
		if s := matchr.JaroWinkler(c1, c2, false); s > score {
			score = s
		}
	}

	for _, it := range inputTokens {
		for _, pt := range pwTokens {
			if s := matchr.JaroWinkler(it, pt, false); s > score {
				score = s
			}
		}
	}
	return score
}
