// Package analysis provides the application-level bias analysis service.
// This package serves as the interface between HTTP/CLI handlers and the
// matching engine: it owns the category registry, the per-category pipeline
// with its fallback and noise-ceiling rules, and the request-scoped caches.
package analysis

import "fmt"

// Strategy selects how a category's patterns are matched for one language.
type Strategy int

const (
	// StrategyRaw wraps each pattern in word boundaries and matches it as a
	// case-insensitive regex against the surface text.
	StrategyRaw Strategy = iota

	// StrategyEnhanced treats patterns as full regular expressions, tried
	// longest first with longest-match-wins overlap filtering.
	StrategyEnhanced

	// StrategyLemma matches patterns as exact primary-lemma sequences over
	// the token stream of a morphological backend.
	StrategyLemma

	// StrategyAmbiguousLemma matches a pattern word against any member of a
	// token's candidate lemma set.
	StrategyAmbiguousLemma

	// StrategyHybrid merges lemma matching with literal regex patterns and
	// resolves the combined candidate list once.
	StrategyHybrid
)

func (s Strategy) String() string {
	switch s {
	case StrategyRaw:
		return "raw"
	case StrategyEnhanced:
		return "enhanced"
	case StrategyLemma:
		return "lemma"
	case StrategyAmbiguousLemma:
		return "ambiguous-lemma"
	case StrategyHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// SurfaceKind marks categories computed from the text's surface form alone,
// without pattern data files.
type SurfaceKind int

const (
	SurfaceNone SurfaceKind = iota

	// SurfaceCapitalisation detects ALL-CAPS runs of five or more letters.
	SurfaceCapitalisation

	// SurfaceEllipses detects literal "..." sequences.
	SurfaceEllipses

	// SurfacePunctuationRuns detects runs of two or more ! or ? marks.
	SurfacePunctuationRuns
)

// LanguageSpec binds one language of a category to its pattern data and
// matching strategy.
type LanguageSpec struct {
	// Strategy chooses the matcher variant.
	Strategy Strategy

	// Source is the pattern data id (lemma patterns for the lemma-based
	// strategies, regex patterns otherwise).
	Source string

	// PatternsSource optionally names a literal-regex source merged in by
	// StrategyHybrid.
	PatternsSource string

	// FallbackSource optionally names a raw-regex source used for the single
	// retry when a morphological backend is unavailable or fails.
	FallbackSource string
}

// CategorySpec describes one bias category.  Pattern categories carry a
// Languages map; surface categories carry a SurfaceKind instead.
type CategorySpec struct {
	// Key is the public category identifier, e.g. "intensifyingAdverbs".
	Key string

	// Languages maps an ISO 639-1 code to that language's matching setup.
	// A language absent from the map yields an empty result.
	Languages map[string]LanguageSpec

	// Surface marks the built-in surface categories.
	Surface SurfaceKind

	// NoiseCeiling, when positive, drops the whole category result if the
	// aggregate matched span length exceeds this fraction of the text.
	NoiseCeiling float64
}

// IsSurface reports whether the category is a built-in surface category.
func (c CategorySpec) IsSurface() bool { return c.Surface != SurfaceNone }
