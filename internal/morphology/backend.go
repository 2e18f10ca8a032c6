// Package morphology provides the morphological analysis backends the
// lemma-based matching strategies depend on.  A backend turns raw text into a
// positioned token sequence where every token carries one or more candidate
// lemmas.  Backends are registered per language; a language with no working
// backend is an explicit absent state that callers handle by falling back to
// surface-level matching.
package morphology

import (
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Backend is the analysis contract a language implementation fulfils.
type Backend interface {
	// Name identifies the backend in logs and metrics, e.g. "dictionary-cs".
	Name() string

	// Analyze tokenizes and lemmatizes text.  Tokens are ordered by position,
	// never overlap, and each carries at least one lemma.  Offsets are
	// 0-based byte offsets with exclusive ends.
	Analyze(text string) ([]analysis.Token, error)

	// Close releases backend resources.  Safe to call more than once.
	Close() error
}
