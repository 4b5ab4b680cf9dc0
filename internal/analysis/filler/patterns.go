package filler

import "regexp"

// pattern pairs a filler label with its compiled expression. The table is
// scanned in order, so the slice order is part of the detector's observable
// behavior (example contexts are first-encountered).
type pattern struct {
	// label is the canonical filler id used as the report key.
	label string

	// re matches occurrences within a single sentence, case-insensitively.
	re *regexp.Regexp

	// exclude, when non-nil, vetoes a raw regex hit. RE2 has no lookahead,
	// so exclusions like "right now" are applied here instead.
	exclude func(sentText string, start, end int) bool
}

// rightFollowers rejects "right" when a locative or temporal tail follows
// ("right now", "right away", "right here", "right there").
var rightFollowers = regexp.MustCompile(`(?i)^\s+(now|away|here|there)\b`)

// defaultPatterns returns the fixed, ordered filler pattern table.
func defaultPatterns() []pattern {
	return []pattern{
		{label: "um", re: regexp.MustCompile(`(?i)\b(um+|uhm+)\b`)},
		{label: "uh", re: regexp.MustCompile(`(?i)\b(uh+)\b`)},
		{label: "you_know", re: regexp.MustCompile(`(?i)\byou\s+know\b`)},
		{label: "well", re: regexp.MustCompile(`(?i)^\s*well\b|\b\s+well\b`)},
		{label: "so", re: regexp.MustCompile(`(?i)^\s*so\b|\b\s+so\b`)},
		{
			label: "right",
			re:    regexp.MustCompile(`(?i)\bright\b`),
			exclude: func(sentText string, _, end int) bool {
				return rightFollowers.MatchString(sentText[end:])
			},
		},
		{label: "basically", re: regexp.MustCompile(`(?i)\bbasically\b`)},
		{label: "literally", re: regexp.MustCompile(`(?i)\bliterally\b`)},
		{label: "actually", re: regexp.MustCompile(`(?i)\bactually\b`)},
	}
}

// Word sets for the "like" disambiguation rule.
var (
	// likeVerbHeads are verbs that legitimately precede "like" in a verb
	// phrase ("feels like", "looks like", "would like", inflections included).
	likeVerbHeads = stringSet(
		"like", "likes", "liked", "liking",
		"feel", "feels", "felt", "feeling",
		"look", "looks", "looked", "looking",
		"seem", "seems", "seemed", "seeming",
	)

	// likeModals are modal verbs; "would like", "could like" etc. are
	// legitimate verb phrases.
	likeModals = stringSet("would", "could", "should", "might", "may", "will", "can")

	// likeFollowers are words after which "like" reads as a verb or
	// comparative rather than a filler ("like to", "like the", …).
	likeFollowers = stringSet("to", "the", "a", "an", "that", "this", "it", "when", "how")
)

func stringSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
