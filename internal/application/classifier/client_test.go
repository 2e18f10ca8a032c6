package classifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/application/classifier"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

func indicatorServer(t *testing.T, key string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyse", r.URL.Path)

		var req analysis.AnalyseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode([]analysis.BiasIndicator{{
			BiasIndicatorKey:   key,
			DetectedPhrase:     "phrase-" + key,
			CharacterPositions: analysis.CharacterPositions{Start: 0, End: 6},
		}})
	}))
}

func TestClient_AnalyseAll_MergesInConfigOrder(t *testing.T) {
	t.Parallel()
	first := indicatorServer(t, "passiveVoice")
	defer first.Close()
	second := indicatorServer(t, "rhetoricalQuestions")
	defer second.Close()

	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "passive-voice", URL: first.URL},
		{Name: "rhetorical-questions", URL: second.URL},
	}, nil, nil)

	out, err := c.AnalyseAll(context.Background(),
		&analysis.AnalyseRequest{Text: "some text", Language: "en"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "passiveVoice", out[0].BiasIndicatorKey)
	assert.Equal(t, "rhetoricalQuestions", out[1].BiasIndicatorKey)
}

type callRecorder struct {
	mu    sync.Mutex
	calls map[string]string
}

func (r *callRecorder) ClassifierCall(name, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]string)
	}
	r.calls[name] = outcome
}

func TestClient_ObserverSeesOutcomes(t *testing.T) {
	t.Parallel()
	healthy := indicatorServer(t, "passiveVoice")
	defer healthy.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	rec := &callRecorder{}
	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "passive-voice", URL: healthy.URL},
		{Name: "broken", URL: broken.URL},
	}, nil, nil, classifier.WithObserver(rec))

	_, err := c.AnalyseAll(context.Background(),
		&analysis.AnalyseRequest{Text: "some text", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "ok", rec.calls["passive-voice"])
	assert.Equal(t, "error", rec.calls["broken"])
}

func TestClient_AnalyseAll_FailingServiceContributesNothing(t *testing.T) {
	t.Parallel()
	healthy := indicatorServer(t, "passiveVoice")
	defer healthy.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "broken", URL: broken.URL},
		{Name: "passive-voice", URL: healthy.URL},
	}, nil, nil)

	out, err := c.AnalyseAll(context.Background(), &analysis.AnalyseRequest{Text: "t"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "passiveVoice", out[0].BiasIndicatorKey)
}

func TestClient_AnalyseAll_NoEndpoints(t *testing.T) {
	t.Parallel()
	c := classifier.NewClient(nil, nil, nil)
	out, err := c.AnalyseAll(context.Background(), &analysis.AnalyseRequest{Text: "t"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_Analyse_Timeout(t *testing.T) {
	t.Parallel()
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "slow", URL: slow.URL, Timeout: 20 * time.Millisecond},
	}, nil, nil)

	_, err := c.Analyse(context.Background(), "slow", &analysis.AnalyseRequest{Text: "t"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeClassifierTimeout))
}

func TestClient_Analyse_UnknownName(t *testing.T) {
	t.Parallel()
	c := classifier.NewClient(nil, nil, nil)
	_, err := c.Analyse(context.Background(), "ghost", &analysis.AnalyseRequest{Text: "t"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeClassifierUnavailable))
}

func TestClient_AnalyseRaw_PassesBodyThrough(t *testing.T) {
	t.Parallel()
	sentiment := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"polarity": -0.4, "subjectivity": 0.7}`))
	}))
	defer sentiment.Close()

	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "sentiment", URL: sentiment.URL},
	}, nil, nil)

	raw, err := c.AnalyseRaw(context.Background(), "sentiment",
		&analysis.AnalyseRequest{Text: "t"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"polarity": -0.4, "subjectivity": 0.7}`, string(raw))
}

func TestClient_Analyse_MalformedBody(t *testing.T) {
	t.Parallel()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer bad.Close()

	c := classifier.NewClient([]classifier.Endpoint{
		{Name: "bad", URL: bad.URL},
	}, nil, nil)

	_, err := c.Analyse(context.Background(), "bad", &analysis.AnalyseRequest{Text: "t"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeClassifierBadResponse))
}
