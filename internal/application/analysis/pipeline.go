package analysis

import (
	"sync"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	"github.com/turtacn/BiasLens-Intelligence/internal/matching"
	"github.com/turtacn/BiasLens-Intelligence/internal/morphology"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Pipeline evaluates one category at a time: resolve the language's data
// source and strategy, run the matcher, resolve overlaps, apply the noise
// ceiling, tag results with the category key.  All failures are degradations:
// the pipeline reports an error to the caller only after the fallback path is
// exhausted, and the caller turns that into an empty category result.
type Pipeline struct {
	store    *lexicon.Store
	backends *morphology.Registry
	matcher  *matching.Matcher
	logger   logging.Logger
	metrics  Metrics

	// Per-language request-scoped caches, created lazily and cleared by
	// ClearCaches once per inbound request.
	mu      sync.Mutex
	caches  map[string]*matching.Cache
	hybrids map[string]*matching.HybridMatcher
}

// NewPipeline constructs a Pipeline over the given pattern store and backend
// registry.
func NewPipeline(store *lexicon.Store, backends *morphology.Registry, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Pipeline{
		store:    store,
		backends: backends,
		matcher:  matching.NewMatcher(logger),
		logger:   logger.Named("pipeline"),
		metrics:  nopMetrics{},
		caches:   make(map[string]*matching.Cache),
		hybrids:  make(map[string]*matching.HybridMatcher),
	}
}

// Evaluate runs one category against text.  An unsupported language and a
// missing data source both produce an empty result with a log line; only the
// surface categories are language-independent.
func (p *Pipeline) Evaluate(spec CategorySpec, text, language string) []analysis.BiasIndicator {
	var resolved []analysis.Candidate

	if spec.IsSurface() {
		resolved = matchSurface(spec.Surface, text)
	} else {
		ls, ok := spec.Languages[language]
		if !ok {
			p.logger.Warn("language not supported for category",
				logging.String("category", spec.Key),
				logging.String("language", language))
			return nil
		}

		var err error
		resolved, err = p.match(ls, text, language)
		if err != nil {
			p.logger.Warn("strategy failed, trying fallback",
				logging.String("category", spec.Key),
				logging.String("language", language),
				logging.String("strategy", ls.Strategy.String()),
				logging.Err(err))
			if pkgerrors.IsCode(err, pkgerrors.ErrCodeBackendUnavailable) ||
				pkgerrors.IsCode(err, pkgerrors.ErrCodeBackendAnalyzeFailed) {
				p.metrics.BackendFailure(language)
			}
			p.metrics.FallbackUsed(spec.Key, language)
			resolved = p.fallback(ls, spec.Key, text)
		}
	}

	if exceedsNoiseCeiling(spec, text, resolved) {
		p.logger.Debug("noise ceiling exceeded, dropping category result",
			logging.String("category", spec.Key),
			logging.Int("matches", len(resolved)))
		return nil
	}

	out := make([]analysis.BiasIndicator, 0, len(resolved))
	for _, c := range resolved {
		out = append(out, analysis.BiasIndicator{
			BiasIndicatorKey:   spec.Key,
			DetectedPhrase:     c.Phrase,
			CharacterPositions: c.Positions(),
		})
	}
	return out
}

// match runs the language's configured strategy and returns resolved,
// non-overlapping candidates.
func (p *Pipeline) match(ls LanguageSpec, text, language string) ([]analysis.Candidate, error) {
	switch ls.Strategy {
	case StrategyRaw:
		patterns, err := p.store.Load(ls.Source)
		if err != nil {
			return nil, err
		}
		return matching.Resolve(p.matcher.FindPhrases(text, patterns)), nil

	case StrategyEnhanced:
		patterns, err := p.store.Load(ls.Source)
		if err != nil {
			return nil, err
		}
		return p.matcher.FindPhrasesEnhanced(text, patterns), nil

	case StrategyLemma, StrategyAmbiguousLemma:
		patterns, err := p.store.Load(ls.Source)
		if err != nil {
			return nil, err
		}
		cache, err := p.cacheFor(language)
		if err != nil {
			return nil, err
		}
		tokens, err := cache.GetOrCompute(text)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeBackendAnalyzeFailed,
				"analyzing text for language "+language)
		}
		if ls.Strategy == StrategyLemma {
			return matching.Resolve(matching.FindLemmaPhrases(text, tokens, patterns)), nil
		}
		return matching.Resolve(matching.FindAmbiguousLemmaPhrases(text, tokens, patterns)), nil

	case StrategyHybrid:
		lemmaPatterns, err := p.store.Load(ls.Source)
		if err != nil {
			return nil, err
		}
		var literalPatterns []string
		if ls.PatternsSource != "" {
			literalPatterns, err = p.store.Load(ls.PatternsSource)
			if err != nil {
				// The literal side is optional enrichment; lemma matching
				// alone still produces a useful result.
				p.logger.Warn("literal pattern source unavailable",
					logging.String("source", ls.PatternsSource), logging.Err(err))
				literalPatterns = nil
			}
		}
		hybrid, err := p.hybridFor(language)
		if err != nil {
			return nil, err
		}
		out, err := hybrid.FindPhrases(text, lemmaPatterns, literalPatterns)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeBackendAnalyzeFailed,
				"analyzing text for language "+language)
		}
		return out, nil

	default:
		return nil, pkgerrors.New(pkgerrors.ErrCodeAnalysisFailed,
			"unknown matching strategy "+ls.Strategy.String())
	}
}

// fallback retries once with the raw-regex strategy over the fallback source.
// No fallback source, or a fallback that itself fails, yields an empty result.
func (p *Pipeline) fallback(ls LanguageSpec, category, text string) []analysis.Candidate {
	if ls.FallbackSource == "" {
		p.logger.Warn("no fallback source configured",
			logging.String("category", category))
		return nil
	}
	patterns, err := p.store.Load(ls.FallbackSource)
	if err != nil {
		p.logger.Warn("fallback source unavailable",
			logging.String("category", category),
			logging.String("source", ls.FallbackSource),
			logging.Err(err))
		return nil
	}
	return matching.Resolve(p.matcher.FindPhrases(text, patterns))
}

// cacheFor returns the request-scoped lemmatization cache for language,
// creating it on first use.
func (p *Pipeline) cacheFor(language string) (*matching.Cache, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.caches[language]; ok {
		return c, nil
	}
	backend, ok := p.backends.Lookup(language)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.ErrCodeBackendUnavailable,
			"no morphological backend for language "+language)
	}
	c := matching.NewCache(backend)
	p.caches[language] = c
	return c, nil
}

// hybridFor returns the hybrid matcher for language, creating it on first use.
func (p *Pipeline) hybridFor(language string) (*matching.HybridMatcher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.hybrids[language]; ok {
		return h, nil
	}
	backend, ok := p.backends.Lookup(language)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.ErrCodeBackendUnavailable,
			"no morphological backend for language "+language)
	}
	h := matching.NewHybridMatcher(backend, p.logger)
	p.hybrids[language] = h
	return h, nil
}

// ClearCaches drops every request-scoped lemmatization cache.  Invoked once
// per inbound request before the first category runs.
func (p *Pipeline) ClearCaches() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.caches {
		c.Clear()
	}
	for _, h := range p.hybrids {
		h.ClearCache()
	}
}

// exceedsNoiseCeiling reports whether the aggregate matched span length
// exceeds the category's configured fraction of the text length.
func exceedsNoiseCeiling(spec CategorySpec, text string, resolved []analysis.Candidate) bool {
	if spec.NoiseCeiling <= 0 || len(resolved) == 0 {
		return false
	}
	total := 0
	for _, c := range resolved {
		total += c.Positions().Len()
	}
	return float64(total) > spec.NoiseCeiling*float64(len(text))
}
