package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BiasLens-Intelligence/pkg/client"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := client.NewClient("")
	assert.Error(t, err)

	_, err = client.NewClient("ftp://example.com")
	assert.Error(t, err)

	_, err = client.NewClient("http://localhost:8080/")
	assert.NoError(t, err)
}

func TestClient_Analyse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analyse", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"language":"en","biasIndicators":[{"bias_indicator_key":"absoluteTerms","detected_phrase":"always","character_positions":{"start":0,"end":6}}]}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)

	result, err := c.Analyse(context.Background(), &analysis.AnalyseRequest{Text: "always right"})
	require.NoError(t, err)
	assert.Equal(t, "en", result.Language)
	require.Len(t, result.BiasIndicators, 1)
	assert.Equal(t, "always", result.BiasIndicators[0].DetectedPhrase)
	assert.Equal(t, 6, result.BiasIndicators[0].CharacterPositions.End)
}

func TestClient_AnalyseCategory_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"ANL_003","message":"unknown bias category"}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.AnalyseCategory(context.Background(), "nope", &analysis.AnalyseRequest{Text: "x"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "ANL_003", apiErr.Code)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"language":"en","biasIndicators":[]}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL,
		client.WithRetryMax(3),
		client.WithRetryWait(time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	result, err := c.Analyse(context.Background(), &analysis.AnalyseRequest{Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, result.BiasIndicators)
	assert.Equal(t, int64(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"COMMON_002","message":"bad request"}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL, client.WithRetryMax(3))
	require.NoError(t, err)

	_, err = c.Analyse(context.Background(), &analysis.AnalyseRequest{Text: ""})
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestClient_Categories(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"categories":["mitigators","absoluteTerms"]}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)

	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mitigators", "absoluteTerms"}, categories)
}

func TestClient_Sentiment(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sentiment", r.URL.Path)
		_, _ = w.Write([]byte(`{"polarity":0.4}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)

	raw, err := c.Sentiment(context.Background(), &analysis.AnalyseRequest{Text: "fine"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"polarity":0.4}`, string(raw))
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"alive"}`))
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)
	assert.NoError(t, c.Health(context.Background()))
}
