package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/turtacn/BiasLens-Intelligence/internal/application/analysis"
	"github.com/turtacn/BiasLens-Intelligence/internal/application/classifier"
	rediscache "github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/cache/redis"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// DefaultMaxBodySize bounds request bodies when no limit is configured.
const DefaultMaxBodySize = 1 << 20

// SentimentClassifier is the endpoint name the sentiment proxy forwards to.
const SentimentClassifier = "sentiment"

// AnalysisHandler serves the analysis API: full-text analysis, single
// category analysis, lexicon term lookup, and the sentiment proxy.
type AnalysisHandler struct {
	service     appanalysis.Service
	classifiers *classifier.Client
	cache       *rediscache.Cache
	cacheTTL    time.Duration
	maxBodySize int64
	logger      logging.Logger
}

// AnalysisHandlerOption configures an AnalysisHandler.
type AnalysisHandlerOption func(*AnalysisHandler)

// WithResponseCache enables redis caching of full analysis responses.
func WithResponseCache(cache *rediscache.Cache, ttl time.Duration) AnalysisHandlerOption {
	return func(h *AnalysisHandler) {
		h.cache = cache
		h.cacheTTL = ttl
	}
}

// WithMaxBodySize overrides the request body limit.
func WithMaxBodySize(n int64) AnalysisHandlerOption {
	return func(h *AnalysisHandler) { h.maxBodySize = n }
}

// NewAnalysisHandler constructs an AnalysisHandler.  classifiers may be nil
// when no downstream classifier services are configured.
func NewAnalysisHandler(service appanalysis.Service, classifiers *classifier.Client,
	logger logging.Logger, opts ...AnalysisHandlerOption) *AnalysisHandler {

	if logger == nil {
		logger = logging.NewNopLogger()
	}
	h := &AnalysisHandler{
		service:     service,
		classifiers: classifiers,
		maxBodySize: DefaultMaxBodySize,
		logger:      logger.Named("analysis_handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AnalyseResponse is the response body for POST /analyse.
type AnalyseResponse struct {
	Language       string                   `json:"language"`
	BiasIndicators []analysis.BiasIndicator `json:"biasIndicators"`
}

// LexiconResponse is the response body for POST /lexicon.
type LexiconResponse struct {
	Language string                 `json:"language"`
	Terms    []analysis.LexiconTerm `json:"terms"`
}

// CategoriesResponse is the response body for GET /categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Analyse handles POST /api/v1/analyse.  It runs the rule engine over the
// request, fans out to the configured classifier services, and returns the
// merged indicator list.  With a response cache configured, identical
// requests within the TTL are served from redis.
func (h *AnalysisHandler) Analyse(w http.ResponseWriter, r *http.Request) {
	var req analysis.AnalyseRequest
	if err := decodeJSON(r, h.maxBodySize, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "invalid request"))
		return
	}

	if h.cache == nil {
		resp, err := h.analyse(r.Context(), &req)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	var resp AnalyseResponse
	err := h.cache.GetOrSet(r.Context(), analyseCacheKey(&req), &resp, h.cacheTTL,
		func(ctx context.Context) (any, error) {
			return h.analyse(ctx, &req)
		})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) analyse(ctx context.Context, req *analysis.AnalyseRequest) (*AnalyseResponse, error) {
	indicators, err := h.service.Analyse(ctx, req)
	if err != nil {
		return nil, err
	}

	if h.classifiers != nil {
		extra, err := h.classifiers.AnalyseAll(ctx, req)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, extra...)
	}

	if indicators == nil {
		indicators = []analysis.BiasIndicator{}
	}
	return &AnalyseResponse{Language: req.Language, BiasIndicators: indicators}, nil
}

// AnalyseCategory handles POST /api/v1/analyse/{category}.
func (h *AnalysisHandler) AnalyseCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req analysis.AnalyseRequest
	if err := decodeJSON(r, h.maxBodySize, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "invalid request"))
		return
	}

	indicators, err := h.service.AnalyseCategory(r.Context(), category, req.Text, req.Language)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if indicators == nil {
		indicators = []analysis.BiasIndicator{}
	}
	writeJSON(w, http.StatusOK, AnalyseResponse{Language: req.Language, BiasIndicators: indicators})
}

// Lexicon handles POST /api/v1/lexicon.  Languages without a term source
// return an empty list.
func (h *AnalysisHandler) Lexicon(w http.ResponseWriter, r *http.Request) {
	var req analysis.AnalyseRequest
	if err := decodeJSON(r, h.maxBodySize, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "invalid request"))
		return
	}

	terms, err := h.service.LexiconTerms(r.Context(), req.Text, req.Language)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if terms == nil {
		terms = []analysis.LexiconTerm{}
	}
	writeJSON(w, http.StatusOK, LexiconResponse{Language: req.Language, Terms: terms})
}

// Sentiment handles POST /api/v1/sentiment.  The sentiment classifier
// responds with a score document rather than an indicator list, so its body
// is proxied verbatim.
func (h *AnalysisHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	if h.classifiers == nil {
		writeAppError(w, pkgerrors.New(pkgerrors.ErrCodeClassifierUnavailable,
			"no sentiment classifier configured"))
		return
	}

	var req analysis.AnalyseRequest
	if err := decodeJSON(r, h.maxBodySize, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "invalid request"))
		return
	}

	raw, err := h.classifiers.AnalyseRaw(r.Context(), SentimentClassifier, &req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Categories handles GET /api/v1/categories.
func (h *AnalysisHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: h.service.Categories()})
}

// analyseCacheKey derives a stable cache key from the request fields.
func analyseCacheKey(req *analysis.AnalyseRequest) string {
	sum := sha256.New()
	sum.Write([]byte(req.Language))
	sum.Write([]byte{0})
	sum.Write([]byte(req.Text))
	sum.Write([]byte{0})
	sum.Write([]byte(req.RichText))
	return "analyse:" + hex.EncodeToString(sum.Sum(nil))
}
