// Package analysis defines the shared value types exchanged between the
// bias-analysis engine, its HTTP interface, and API clients.  Types here are
// plain data carriers with no behaviour beyond validation and formatting;
// all engine logic lives under internal/.
package analysis

import (
	"fmt"
	"strings"
)

// CharacterPositions locates a detected span inside the analysed text.
// Offsets are 0-based character positions into the original input; Start is
// inclusive and End is exclusive.  Every component of the platform uses this
// single convention; backends that compute inclusive ends internally convert
// before their results leave the package.
type CharacterPositions struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two spans intersect.  The test is deliberately
// inclusive on both ends: two matches whose ranges merely touch are treated
// as overlapping, matching the resolution policy of the matching engine.
func (p CharacterPositions) Overlaps(o CharacterPositions) bool {
	return p.End >= o.Start && p.Start <= o.End
}

// Len returns the character length of the span.
func (p CharacterPositions) Len() int {
	if p.End < p.Start {
		return 0
	}
	return p.End - p.Start
}

// BiasIndicator is one resolved bias-indicator match: a labeled, located span
// of the analysed text.  Instances are created by the overlap resolver, never
// mutated afterwards, and live only for one request/response cycle.
type BiasIndicator struct {
	// BiasIndicatorKey identifies the category that produced the match,
	// e.g. "emotionallyChargedAdjectives" or "framingByTime".
	BiasIndicatorKey string `json:"bias_indicator_key"`

	// DetectedPhrase is the matched text as found in the source, normalised
	// to lowercase.
	DetectedPhrase string `json:"detected_phrase"`

	CharacterPositions CharacterPositions `json:"character_positions"`
}

// String renders a compact human-readable form used in CLI table output.
func (b BiasIndicator) String() string {
	return fmt.Sprintf("%s %q [%d:%d]", b.BiasIndicatorKey, b.DetectedPhrase,
		b.CharacterPositions.Start, b.CharacterPositions.End)
}

// LexiconTerm is a dictionary term located in the analysed text together with
// its editorial definition and a usage example.
type LexiconTerm struct {
	Word               string             `json:"word"`
	Definition         string             `json:"definition"`
	UsageExample       string             `json:"usage_example"`
	CharacterPositions CharacterPositions `json:"character_positions"`
}

// Token is one annotated token produced by a morphological backend.  A token
// carries one or more candidate lemmas; most languages produce exactly one,
// while morphologically ambiguous analyses carry several.  Tokens are ordered
// by position and never overlap within one backend's output for one text.
type Token struct {
	// Surface is the token text exactly as it appears in the input.
	Surface string `json:"surface"`

	// Lemmas holds the candidate base forms, lowercased.  Never empty: a
	// backend that cannot analyse a surface form falls back to the lowercased
	// surface itself.
	Lemmas []string `json:"lemmas"`

	Start int `json:"start"`
	End   int `json:"end"`
}

// Lemma returns the primary (first) candidate lemma.
func (t Token) Lemma() string {
	if len(t.Lemmas) == 0 {
		return strings.ToLower(t.Surface)
	}
	return t.Lemmas[0]
}

// HasLemma reports whether l is among the token's candidate lemmas.
func (t Token) HasLemma(l string) bool {
	for _, c := range t.Lemmas {
		if c == l {
			return true
		}
	}
	return false
}

// Candidate is an unfiltered match emitted by one of the matching strategies
// before overlap resolution.  Candidates are transient: produced, filtered and
// discarded within a single category evaluation.
type Candidate struct {
	// Phrase is the matched source text, lowercased.
	Phrase string

	// Pattern is the originating pattern, kept for diagnostics.
	Pattern string

	Start int
	End   int
}

// Positions converts the candidate span to the public span type.
func (c Candidate) Positions() CharacterPositions {
	return CharacterPositions{Start: c.Start, End: c.End}
}

// AnalyseRequest is the payload accepted by the /analyse endpoints and by
// the classifier services the gateway fans out to.
type AnalyseRequest struct {
	// Text is the plain text to analyse.
	Text string `json:"text"`

	// RichText optionally carries the HTML-formatted variant of Text; only
	// formatting-sensitive categories (italicsBoldface) consume it.
	RichText string `json:"richText,omitempty"`

	// Language is the ISO 639-1 code of the text.  Defaults to "en".
	Language string `json:"language"`
}

// Validate checks the structural integrity of an AnalyseRequest.
func (r *AnalyseRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if r.Language == "" {
		r.Language = "en"
	}
	return nil
}
