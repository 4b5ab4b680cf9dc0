// Package annotate provides the linguistic annotation layer that the
// disfluency detectors are built on: sentence segmentation, tokenization
// with absolute character offsets, part-of-speech tags, and shallow
// dependency roles.
//
// The [Annotator] interface is the contract the detectors consume. The
// built-in [English] implementation is a deterministic rule-based annotator;
// identical input always yields identical output, which the detectors rely
// on for reproducible offset arithmetic. Implementations that wrap an
// external model must uphold the same determinism guarantee.
//
// All types produced by an Annotator are immutable once returned.
package annotate

import (
	"context"
	"errors"
)

// ErrAnnotation is the sentinel error wrapped by every annotation failure.
// Callers match it with [errors.Is]; detectors propagate it unchanged
// because analysis is meaningless without annotation.
var ErrAnnotation = errors.New("annotation failed")

// POS is a coarse part-of-speech tag in the Universal Dependencies style.
type POS string

const (
	POSNoun      POS = "NOUN"
	POSProperN   POS = "PROPN"
	POSPronoun   POS = "PRON"
	POSVerb      POS = "VERB"
	POSAdjective POS = "ADJ"
	POSAdverb    POS = "ADV"
	POSAdpos     POS = "ADP"
	POSDet       POS = "DET"
	POSConj      POS = "CCONJ"
	POSIntj      POS = "INTJ"
	POSNum       POS = "NUM"
	POSPunct     POS = "PUNCT"
	POSOther     POS = "X"
)

// Role is a shallow dependency role attached to a token.
type Role string

const (
	RoleSubject    Role = "nsubj"
	RoleDirectObj  Role = "dobj"
	RolePrepObj    Role = "pobj"
	RoleDet        Role = "det"
	RolePrep       Role = "prep"
	RolePunct      Role = "punct"
	RoleRoot       Role = "ROOT"
	RoleUnassigned Role = "dep"
)

// Token is a single token within a sentence. Offset is absolute — relative
// to the full transcript, not the sentence — so span arithmetic downstream
// never needs to re-add the sentence start.
type Token struct {
	// Text is the literal token text as it appears in the transcript.
	Text string

	// Index is the zero-based position of this token within its sentence.
	Index int

	// Offset is the absolute character offset of the token's first byte.
	Offset int

	// POS is the coarse part-of-speech tag.
	POS POS

	// Dep is the shallow dependency role.
	Dep Role
}

// End returns the absolute offset just past the token's last byte.
func (t Token) End() int { return t.Offset + len(t.Text) }

// Sentence is an ordered token sequence backed by a substring of the
// transcript. Sentences are non-overlapping and ordered by position.
type Sentence struct {
	// Tokens is the ordered token sequence, punctuation included.
	Tokens []Token

	// Start is the absolute character offset of the sentence's first byte.
	Start int

	// Text is the backing substring of the transcript.
	Text string
}

// End returns the absolute offset just past the sentence's last byte.
func (s Sentence) End() int { return s.Start + len(s.Text) }

// Document is the annotation result for one transcript.
type Document struct {
	// Text is the full input transcript.
	Text string

	// Sentences is ordered by position. Empty for blank input.
	Sentences []Sentence
}

// Annotator turns raw transcript text into an annotated [Document].
//
// Implementations must be deterministic and safe for concurrent use, or be
// wrapped with [SingleFlight] when the underlying model is not.
type Annotator interface {
	// Annotate segments, tokenizes, and tags text. A failure wraps
	// [ErrAnnotation]. Empty input is not an error: it yields a Document
	// with no sentences.
	Annotate(ctx context.Context, text string) (*Document, error)
}
