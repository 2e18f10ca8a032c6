package prometheus_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/prometheus"
)

func newCollector(t *testing.T) prometheus.MetricsCollector {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "biaslens",
		Subsystem: "test",
	}, nil)
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	t.Parallel()
	_, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestCollector_CounterGaugeHistogram(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	counter := c.RegisterCounter("ops_total", "help", "kind")
	counter.WithLabelValues("a").Inc()
	counter.WithLabelValues("a").Add(2)

	gauge := c.RegisterGauge("active", "help", "kind")
	gauge.WithLabelValues("a").Set(5)
	gauge.WithLabelValues("a").Dec()
	gauge.WithLabelValues("a").Add(3)
	gauge.WithLabelValues("a").Sub(2)

	hist := c.RegisterHistogram("latency_seconds", "help", nil, "kind")
	hist.WithLabelValues("a").Observe(0.042)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "biaslens_test_ops_total")
	assert.Contains(t, body, `biaslens_test_active{kind="a"} 5`)
	assert.Contains(t, body, "biaslens_test_latency_seconds")
}

func TestCollector_DuplicateRegistrationReturnsExisting(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	first := c.RegisterCounter("dup_total", "help", "kind")
	second := c.RegisterCounter("dup_total", "help", "kind")
	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	// Both handles point at the same underlying series.
	assert.Contains(t, rec.Body.String(), `biaslens_test_dup_total{kind="x"} 2`)
}

func TestAppMetrics(t *testing.T) {
	t.Parallel()
	c := newCollector(t)
	m := prometheus.NewAppMetrics(c)

	m.CategoryEvaluated("mitigators", "en", 0.001, 3)
	m.AnalyseCompleted("en", 0.02, 7)
	m.ObserveHTTPRequest("POST", "/api/v1/analyse", 200, 15*time.Millisecond)
	m.ActiveRequest("POST", 1)
	m.ActiveRequest("POST", 1)
	m.ActiveRequest("POST", -1)
	m.CacheHitsTotal.WithLabelValues("analyse").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `biaslens_test_category_evaluations_total{category="mitigators",language="en"} 1`)
	assert.Contains(t, body, `biaslens_test_category_matches_total{category="mitigators",language="en"} 3`)
	assert.Contains(t, body, `biaslens_test_analyses_total{language="en"} 1`)
	assert.Contains(t, body, `biaslens_test_http_requests_total{method="POST",path="/api/v1/analyse",status="200"} 1`)
	assert.Contains(t, body, `biaslens_test_http_active_requests{method="POST"} 1`)
	assert.Contains(t, body, `biaslens_test_cache_hits_total{cache="analyse"} 1`)
}
