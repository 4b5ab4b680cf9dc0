package annotate

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// English is a deterministic rule-based annotator for English transcripts.
// It needs no external model: sentence boundaries come from terminal
// punctuation runs, tokens from a character-class scanner, and tags from
// closed-class lexicons plus suffix heuristics.
//
// Two deliberate choices matter to downstream detectors:
//
//   - Hyphens are always standalone punctuation tokens, so a stuttered onset
//     like "w-w-wanted" tokenizes as five tokens, never one.
//   - Modal auxiliaries ("would", "could", …) are tagged [POSVerb], keeping
//     verb-adjacency heuristics over modals effective.
//
// English is stateless after construction and safe for concurrent use.
type English struct{}

var _ Annotator = (*English)(nil)

// NewEnglish returns the rule-based English annotator.
func NewEnglish() *English { return &English{} }

// Annotate implements [Annotator].
func (e *English) Annotate(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnnotation, err)
	}

	doc := &Document{Text: text}
	for _, sp := range splitSentences(text) {
		sent := Sentence{
			Start: sp.start,
			Text:  text[sp.start:sp.end],
		}
		sent.Tokens = tokenize(sent.Text, sent.Start)
		tagPartsOfSpeech(sent.Tokens)
		assignRoles(sent.Tokens)
		doc.Sentences = append(doc.Sentences, sent)
	}
	return doc, nil
}

// span is a half-open absolute character range.
type span struct{ start, end int }

// splitSentences finds sentence boundaries: a run of '.', '!', or '?'
// followed by whitespace or end of input terminates a sentence. Leading and
// trailing whitespace is excluded from each sentence span; a trailing
// fragment without terminal punctuation still forms a sentence.
func splitSentences(text string) []span {
	var spans []span
	n := len(text)
	i := 0
	for i < n {
		// Skip inter-sentence whitespace.
		for i < n && isSpaceByte(text[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i

		end := -1
		for j := i; j < n; j++ {
			if !isTerminalByte(text[j]) {
				continue
			}
			// Extend over the whole punctuation run ("...", "?!").
			k := j
			for k < n && isTerminalByte(text[k]) {
				k++
			}
			if k >= n || isSpaceByte(text[k]) {
				end = k
				break
			}
			j = k - 1
		}
		if end < 0 {
			end = n
			// Trim trailing whitespace from the final fragment.
			for end > start && isSpaceByte(text[end-1]) {
				end--
			}
		}
		spans = append(spans, span{start: start, end: end})
		i = end
	}
	return spans
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isTerminalByte(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// tokenize splits sentence text into word and punctuation tokens. Word
// tokens are maximal runs of letters and digits, with an apostrophe kept
// in-word when flanked by letters ("don't"). An ellipsis "..." is a single
// token; every other punctuation character is its own token. Whitespace
// produces no tokens. base is the sentence's absolute start offset.
func tokenize(text string, base int) []Token {
	var toks []Token
	runes := []rune(text)
	// Byte offset of each rune so token offsets stay byte-accurate.
	offs := make([]int, len(runes)+1)
	{
		o := 0
		for i, r := range runes {
			offs[i] = o
			o += len(string(r))
		}
		offs[len(runes)] = len(text)
	}

	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case isWord(r):
			j := i + 1
			for j < len(runes) {
				if isWord(runes[j]) {
					j++
					continue
				}
				// Keep an apostrophe flanked by letters inside the token.
				if runes[j] == '\'' && j+1 < len(runes) && unicode.IsLetter(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			toks = append(toks, Token{
				Text:   string(runes[i:j]),
				Index:  len(toks),
				Offset: base + offs[i],
			})
			i = j

		case r == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.':
			toks = append(toks, Token{
				Text:   "...",
				Index:  len(toks),
				Offset: base + offs[i],
			})
			i += 3

		default:
			toks = append(toks, Token{
				Text:   string(r),
				Index:  len(toks),
				Offset: base + offs[i],
			})
			i++
		}
	}
	return toks
}

// Closed-class lexicons. All lookups are on lowercased token text.
var (
	pronounWords = wordSet(
		"i", "me", "my", "mine", "myself",
		"you", "your", "yours", "yourself",
		"he", "him", "his", "himself",
		"she", "her", "hers", "herself",
		"it", "its", "itself",
		"we", "us", "our", "ours", "ourselves",
		"they", "them", "their", "theirs", "themselves",
		"who", "whom", "someone", "something", "anyone", "anything",
	)

	determinerWords = wordSet("the", "a", "an", "this", "that", "these", "those", "each", "every", "some", "any", "no")

	adpositionWords = wordSet(
		"in", "on", "at", "to", "for", "of", "with", "by", "from", "about",
		"into", "onto", "over", "under", "after", "before", "during",
		"between", "through", "against", "without",
	)

	conjunctionWords = wordSet("and", "or", "but", "nor", "yet")

	// Modals are tagged VERB on purpose; see the [English] doc comment.
	modalWords = wordSet("would", "could", "should", "might", "may", "will", "can", "shall", "must")

	verbWords = wordSet(
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"go", "goes", "went", "gone", "get", "gets", "got",
		"say", "says", "said", "see", "sees", "saw", "seen",
		"know", "knows", "knew", "known", "think", "thinks",
		"want", "wants", "need", "needs", "make", "makes", "made",
		"take", "takes", "took", "come", "comes", "came",
		"like", "likes", "feel", "feels", "felt",
		"look", "looks", "seem", "seems", "laugh", "laughs",
		"read", "reads", "give", "gives", "gave", "tell", "tells", "told",
		"find", "finds", "found", "put", "puts", "let", "lets",
		"keep", "keeps", "kept", "mean", "means", "meant",
	)

	adverbWords = wordSet(
		"very", "really", "quite", "too", "also", "just", "not",
		"never", "always", "often", "sometimes", "here", "there",
		"now", "then", "again", "soon", "still", "almost",
	)

	interjectionWords = wordSet("um", "uh", "uhm", "er", "erm", "hmm", "yeah", "yes", "no", "oh", "ah", "okay", "ok", "hey", "wow")
)

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func has(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}

// tagPartsOfSpeech assigns a POS tag to every token in place. Lexicon hits
// win; then suffix heuristics; a capitalized non-initial word becomes PROPN;
// everything else defaults to NOUN.
func tagPartsOfSpeech(toks []Token) {
	for i := range toks {
		toks[i].POS = posFor(toks, i)
	}
}

func posFor(toks []Token, i int) POS {
	text := toks[i].Text
	first, _ := firstRune(text)
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		return POSPunct
	}
	if isNumeric(text) {
		return POSNum
	}

	lower := strings.ToLower(text)
	switch {
	case has(pronounWords, lower):
		return POSPronoun
	case has(determinerWords, lower):
		return POSDet
	case has(adpositionWords, lower):
		return POSAdpos
	case has(conjunctionWords, lower):
		return POSConj
	case has(modalWords, lower):
		return POSVerb
	case has(verbWords, lower):
		return POSVerb
	case has(adverbWords, lower):
		return POSAdverb
	case has(interjectionWords, lower):
		return POSIntj
	}

	switch {
	case len(lower) > 3 && strings.HasSuffix(lower, "ly"):
		return POSAdverb
	case len(lower) > 4 && strings.HasSuffix(lower, "ing"),
		len(lower) > 3 && strings.HasSuffix(lower, "ed"):
		return POSVerb
	case strings.HasSuffix(lower, "tion"), strings.HasSuffix(lower, "ment"),
		strings.HasSuffix(lower, "ness"), strings.HasSuffix(lower, "ity"):
		return POSNoun
	}

	// A capitalized word that does not open the sentence reads as a name.
	if i > 0 && unicode.IsUpper(first) {
		return POSProperN
	}
	return POSNoun
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// assignRoles attaches shallow dependency roles. The pass is positional:
// a nominal directly ahead of a verb is its subject, a nominal reachable
// back through determiners and adjectives from a verb is a direct object,
// and from an adposition a prepositional object. The first verb of the
// sentence is the root.
func assignRoles(toks []Token) {
	rootSeen := false
	for i := range toks {
		switch toks[i].POS {
		case POSPunct:
			toks[i].Dep = RolePunct
		case POSDet:
			toks[i].Dep = RoleDet
		case POSAdpos:
			toks[i].Dep = RolePrep
		case POSVerb:
			if !rootSeen {
				toks[i].Dep = RoleRoot
				rootSeen = true
			} else {
				toks[i].Dep = RoleUnassigned
			}
		case POSPronoun, POSNoun, POSProperN:
			toks[i].Dep = nominalRole(toks, i)
		default:
			toks[i].Dep = RoleUnassigned
		}
	}
}

func nominalRole(toks []Token, i int) Role {
	if next, ok := nextNonPunct(toks, i); ok && toks[next].POS == POSVerb {
		return RoleSubject
	}
	// Walk back over modifiers to the governing word.
	for j := i - 1; j >= 0; j-- {
		switch toks[j].POS {
		case POSDet, POSAdjective, POSAdverb, POSNum:
			continue
		case POSAdpos:
			return RolePrepObj
		case POSVerb:
			return RoleDirectObj
		default:
			return RoleUnassigned
		}
	}
	return RoleUnassigned
}

func nextNonPunct(toks []Token, i int) (int, bool) {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].POS != POSPunct {
			return j, true
		}
	}
	return 0, false
}
