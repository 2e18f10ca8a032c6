package prometheus

import (
	"strconv"
	"time"
)

// Default buckets tuned for an in-process matching engine: category
// evaluations are sub-millisecond to tens of milliseconds, whole requests
// add classifier fan-out latency on top.
var (
	DefaultCategoryDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultRequestDurationBuckets  = []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis engine
	CategoryEvaluationsTotal CounterVec
	CategoryDuration         HistogramVec
	CategoryMatchesTotal     CounterVec
	AnalysesTotal            CounterVec
	AnalyseDuration          HistogramVec
	IndicatorsTotal          CounterVec

	// Morphology and fallback
	BackendFailuresTotal CounterVec
	FallbacksTotal       CounterVec

	// Classifier fan-out
	ClassifierCallsTotal   CounterVec
	ClassifierCallDuration HistogramVec

	// Response cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
}

// NewAppMetrics registers all application metrics on the collector.
func NewAppMetrics(c MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal: c.RegisterCounter("http_requests_total",
			"Total HTTP requests by method, path and status.", "method", "path", "status"),
		HTTPRequestDuration: c.RegisterHistogram("http_request_duration_seconds",
			"HTTP request latency.", DefaultRequestDurationBuckets, "method", "path"),
		HTTPActiveRequests: c.RegisterGauge("http_active_requests",
			"In-flight HTTP requests.", "method"),

		CategoryEvaluationsTotal: c.RegisterCounter("category_evaluations_total",
			"Category evaluations by category and language.", "category", "language"),
		CategoryDuration: c.RegisterHistogram("category_duration_seconds",
			"Per-category evaluation latency.", DefaultCategoryDurationBuckets, "category", "language"),
		CategoryMatchesTotal: c.RegisterCounter("category_matches_total",
			"Bias indicators produced per category and language.", "category", "language"),
		AnalysesTotal: c.RegisterCounter("analyses_total",
			"Completed analyse operations by language.", "language"),
		AnalyseDuration: c.RegisterHistogram("analyse_duration_seconds",
			"Whole-request analysis latency.", DefaultRequestDurationBuckets, "language"),
		IndicatorsTotal: c.RegisterCounter("indicators_total",
			"Total bias indicators returned, by language.", "language"),

		BackendFailuresTotal: c.RegisterCounter("backend_failures_total",
			"Morphological backend failures by language.", "language"),
		FallbacksTotal: c.RegisterCounter("fallbacks_total",
			"Fallback retries by category and language.", "category", "language"),

		ClassifierCallsTotal: c.RegisterCounter("classifier_calls_total",
			"Classifier service calls by classifier and outcome.", "classifier", "outcome"),
		ClassifierCallDuration: c.RegisterHistogram("classifier_call_duration_seconds",
			"Classifier call latency.", DefaultRequestDurationBuckets, "classifier"),

		CacheHitsTotal: c.RegisterCounter("cache_hits_total",
			"Response cache hits.", "cache"),
		CacheMissesTotal: c.RegisterCounter("cache_misses_total",
			"Response cache misses.", "cache"),
	}
}

// CategoryEvaluated implements the analysis service's Metrics interface.
func (m *AppMetrics) CategoryEvaluated(category, language string, seconds float64, matches int) {
	m.CategoryEvaluationsTotal.WithLabelValues(category, language).Inc()
	m.CategoryDuration.WithLabelValues(category, language).Observe(seconds)
	if matches > 0 {
		m.CategoryMatchesTotal.WithLabelValues(category, language).Add(float64(matches))
	}
}

// AnalyseCompleted implements the analysis service's Metrics interface.
func (m *AppMetrics) AnalyseCompleted(language string, seconds float64, indicators int) {
	m.AnalysesTotal.WithLabelValues(language).Inc()
	m.AnalyseDuration.WithLabelValues(language).Observe(seconds)
	if indicators > 0 {
		m.IndicatorsTotal.WithLabelValues(language).Add(float64(indicators))
	}
}

// FallbackUsed implements the analysis service's Metrics interface.
func (m *AppMetrics) FallbackUsed(category, language string) {
	m.FallbacksTotal.WithLabelValues(category, language).Inc()
}

// BackendFailure implements the analysis service's Metrics interface.
func (m *AppMetrics) BackendFailure(language string) {
	m.BackendFailuresTotal.WithLabelValues(language).Inc()
}

// ClassifierCall records one classifier service call.
func (m *AppMetrics) ClassifierCall(classifier, outcome string, elapsed time.Duration) {
	m.ClassifierCallsTotal.WithLabelValues(classifier, outcome).Inc()
	m.ClassifierCallDuration.WithLabelValues(classifier).Observe(elapsed.Seconds())
}

// CacheHit records a response cache hit.
func (m *AppMetrics) CacheHit(cache string) {
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// CacheMiss records a response cache miss.
func (m *AppMetrics) CacheMiss(cache string) {
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *AppMetrics) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ActiveRequest adjusts the in-flight request gauge by delta.
func (m *AppMetrics) ActiveRequest(method string, delta int) {
	m.HTTPActiveRequests.WithLabelValues(method).Add(float64(delta))
}
