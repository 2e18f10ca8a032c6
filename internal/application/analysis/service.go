package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	"github.com/turtacn/BiasLens-Intelligence/internal/morphology"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Metrics receives the service's measurement callbacks.  The prometheus
// collector implements it; tests and the CLI pass the nop implementation.
type Metrics interface {
	CategoryEvaluated(category, language string, seconds float64, matches int)
	AnalyseCompleted(language string, seconds float64, indicators int)
	FallbackUsed(category, language string)
	BackendFailure(language string)
}

type nopMetrics struct{}

func (nopMetrics) CategoryEvaluated(string, string, float64, int) {}
func (nopMetrics) AnalyseCompleted(string, float64, int)          {}
func (nopMetrics) FallbackUsed(string, string)                    {}
func (nopMetrics) BackendFailure(string)                          {}

// NopMetrics returns a Metrics implementation that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }

// Service defines the application-level bias analysis operations.
type Service interface {
	// Analyse runs every registered category against the request and returns
	// the concatenated indicator list in registry order.
	Analyse(ctx context.Context, req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error)

	// AnalyseCategory runs a single category.
	AnalyseCategory(ctx context.Context, category, text, language string) ([]analysis.BiasIndicator, error)

	// LexiconTerms locates curated lexicon entries in the text.
	LexiconTerms(ctx context.Context, text, language string) ([]analysis.LexiconTerm, error)

	// Categories lists the registered category keys in output order.
	Categories() []string
}

type service struct {
	pipeline   *Pipeline
	store      *lexicon.Store
	categories []CategorySpec
	byKey      map[string]CategorySpec
	logger     logging.Logger
	metrics    Metrics
}

// NewService wires the analysis service from its parts.  Passing nil
// categories installs DefaultCategories; nil metrics installs the nop
// implementation.
func NewService(store *lexicon.Store, backends *morphology.Registry,
	categories []CategorySpec, metrics Metrics, logger logging.Logger) Service {

	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if categories == nil {
		categories = DefaultCategories()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	byKey := make(map[string]CategorySpec, len(categories))
	for _, c := range categories {
		byKey[c.Key] = c
	}

	pipeline := NewPipeline(store, backends, logger)
	pipeline.metrics = metrics

	return &service{
		pipeline:   pipeline,
		store:      store,
		categories: categories,
		byKey:      byKey,
		logger:     logger.Named("analysis"),
		metrics:    metrics,
	}
}

func (s *service) Analyse(ctx context.Context, req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error) {
	if err := req.Validate(); err != nil {
		return nil, pkgerrors.NewValidation(err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	s.pipeline.ClearCaches()

	// Each category writes into its own slot so the concatenated output is
	// in registry order regardless of goroutine scheduling.
	slots := make([][]analysis.BiasIndicator, len(s.categories))
	var wg sync.WaitGroup
	for i, spec := range s.categories {
		wg.Add(1)
		go func(i int, spec CategorySpec) {
			defer wg.Done()
			catStart := time.Now()
			slots[i] = s.pipeline.Evaluate(spec, req.Text, req.Language)
			s.metrics.CategoryEvaluated(spec.Key, req.Language,
				time.Since(catStart).Seconds(), len(slots[i]))
		}(i, spec)
	}
	wg.Wait()

	var out []analysis.BiasIndicator
	for _, slot := range slots {
		out = append(out, slot...)
	}
	out = append(out, MatchFormatting(req.RichText)...)

	s.metrics.AnalyseCompleted(req.Language, time.Since(started).Seconds(), len(out))
	s.logger.Debug("analysis complete",
		logging.String("language", req.Language),
		logging.Int("indicators", len(out)),
		logging.Duration("elapsed", time.Since(started)))
	return out, nil
}

func (s *service) AnalyseCategory(ctx context.Context, category, text, language string) ([]analysis.BiasIndicator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, ok := s.byKey[category]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.ErrCodeCategoryUnknown,
			"unknown category "+category)
	}
	if language == "" {
		language = "en"
	}
	s.pipeline.ClearCaches()
	return s.pipeline.Evaluate(spec, text, language), nil
}

func (s *service) LexiconTerms(ctx context.Context, text, language string) ([]analysis.LexiconTerm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" {
		language = "en"
	}
	entries, err := s.store.LoadTerms("lexicon_terms_" + language)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrCodeLexiconSourceMissing) {
			s.logger.Warn("no lexicon terms for language",
				logging.String("language", language))
			return nil, nil
		}
		return nil, err
	}
	return MatchLexiconTerms(text, entries, s.logger), nil
}

func (s *service) Categories() []string {
	out := make([]string, len(s.categories))
	for i, c := range s.categories {
		out[i] = c.Key
	}
	// italicsBoldface is built in rather than registered, but it is part of
	// the public output contract.
	return append(out, italicsBoldfaceKey)
}
