package matching

import (
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// HybridMatcher implements the hybrid lemma+pattern strategy: lemma-window
// matching and literal-regex matching run against the same text in one pass,
// the two candidate lists are merged, and the shared greedy overlap filter
// produces the final non-overlapping result.  The matcher owns a per-text
// lemmatization cache because it may be invoked many times per request for
// different categories.
type HybridMatcher struct {
	cache   *Cache
	matcher *Matcher
	logger  logging.Logger
}

// NewHybridMatcher constructs a HybridMatcher over the given analyzer.
func NewHybridMatcher(a Analyzer, logger logging.Logger) *HybridMatcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HybridMatcher{
		cache:   NewCache(a),
		matcher: NewMatcher(logger),
		logger:  logger.Named("hybrid"),
	}
}

// FindPhrases matches lemmaPatterns via token windows and literalPatterns as
// full regexes, merges both candidate lists, and resolves overlaps with the
// shared greedy policy.  literalPatterns may be nil when a language ships
// only lemma data.
//
// An analysis failure propagates to the caller so the category pipeline can
// fall back to raw-regex matching on the fallback pattern source.
func (h *HybridMatcher) FindPhrases(text string, lemmaPatterns, literalPatterns []string) ([]analysis.Candidate, error) {
	var candidates []analysis.Candidate

	if len(literalPatterns) > 0 {
		candidates = append(candidates, h.matcher.literalRegexCandidates(text, literalPatterns)...)
	}

	tokens, err := h.cache.GetOrCompute(text)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, exactLemmaCandidates(text, tokens, lemmaPatterns)...)

	return Resolve(candidates), nil
}

// ClearCache drops the per-text lemmatization cache.  The orchestrator calls
// this once per inbound request before the first category runs.
func (h *HybridMatcher) ClearCache() {
	h.cache.Clear()
}

// CacheLen exposes the number of memoized texts for metrics and tests.
func (h *HybridMatcher) CacheLen() int {
	return h.cache.Len()
}
