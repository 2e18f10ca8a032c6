// Package classifier provides the HTTP fan-out client for the opaque
// classifier services the gateway aggregates alongside the rule engine
// (passive voice, rhetorical questions, sentiment, LLM detectors).  Each
// service exposes the same contract: POST /analyse with the request payload,
// returning a JSON list of bias indicators.  Services are independent failure
// domains: one failing or slow classifier contributes nothing and the rest of
// the response is unaffected.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Endpoint names one classifier service.
type Endpoint struct {
	// Name identifies the classifier in logs, e.g. "passive-voice".
	Name string

	// URL is the service base URL; the client posts to URL + "/analyse".
	URL string

	// Timeout bounds one call.  Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds classifier calls with no per-endpoint override.
const DefaultTimeout = 5 * time.Second

// Observer receives per-call measurements.  Outcome is "ok", "error" or
// "timeout".
type Observer interface {
	ClassifierCall(classifier, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ClassifierCall(string, string, time.Duration) {}

// Client fans requests out to the configured classifier services.
type Client struct {
	endpoints []Endpoint
	http      *http.Client
	logger    logging.Logger
	observer  Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithObserver installs a call observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewClient constructs a Client.  A nil httpClient uses http.DefaultClient;
// per-call deadlines come from the endpoint timeouts, not the http.Client.
func NewClient(endpoints []Endpoint, httpClient *http.Client, logger logging.Logger, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Client{
		endpoints: endpoints,
		http:      httpClient,
		logger:    logger.Named("classifier"),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the configured endpoints.
func (c *Client) Endpoints() []Endpoint { return c.endpoints }

// AnalyseAll calls every configured classifier concurrently and merges their
// indicator lists in endpoint configuration order.  Failures are logged and
// skipped; the error return is reserved for a cancelled context.
func (c *Client) AnalyseAll(ctx context.Context, req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error) {
	if len(c.endpoints) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slots := make([][]analysis.BiasIndicator, len(c.endpoints))
	var wg sync.WaitGroup
	for i, ep := range c.endpoints {
		wg.Add(1)
		go func(i int, ep Endpoint) {
			defer wg.Done()
			indicators, err := c.analyseOne(ctx, ep, req)
			if err != nil {
				c.logger.Warn("classifier call failed",
					logging.String("classifier", ep.Name), logging.Err(err))
				return
			}
			slots[i] = indicators
		}(i, ep)
	}
	wg.Wait()

	var out []analysis.BiasIndicator
	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out, nil
}

// Analyse calls the named classifier only.
func (c *Client) Analyse(ctx context.Context, name string, req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error) {
	for _, ep := range c.endpoints {
		if ep.Name == name {
			return c.analyseOne(ctx, ep, req)
		}
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeClassifierUnavailable,
		"no classifier named "+name)
}

// AnalyseRaw calls the named classifier and returns its response body without
// interpretation.  The sentiment service responds with a score document
// rather than an indicator list, so the gateway proxies it as-is.
func (c *Client) AnalyseRaw(ctx context.Context, name string, req *analysis.AnalyseRequest) (json.RawMessage, error) {
	for _, ep := range c.endpoints {
		if ep.Name == name {
			return c.post(ctx, ep, req)
		}
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeClassifierUnavailable,
		"no classifier named "+name)
}

func (c *Client) analyseOne(ctx context.Context, ep Endpoint, req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error) {
	raw, err := c.post(ctx, ep, req)
	if err != nil {
		return nil, err
	}
	var indicators []analysis.BiasIndicator
	if err := json.Unmarshal(raw, &indicators); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeClassifierBadResponse,
			"decoding response from "+ep.Name)
	}
	return indicators, nil
}

func (c *Client) post(ctx context.Context, ep Endpoint, req *analysis.AnalyseRequest) (raw json.RawMessage, err error) {
	timeout := ep.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case pkgerrors.IsCode(err, pkgerrors.ErrCodeClassifierTimeout):
			outcome = "timeout"
		case err != nil:
			outcome = "error"
		}
		c.observer.ClassifierCall(ep.Name, outcome, time.Since(started))
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization,
			"encoding classifier request")
	}

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost,
		ep.URL+"/analyse", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeClassifierUnavailable,
			"building request for "+ep.Name)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeClassifierTimeout,
				ep.Name+" timed out")
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeClassifierUnavailable,
			"calling "+ep.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.ErrCodeClassifierBadResponse,
			fmt.Sprintf("%s returned status %d", ep.Name, resp.StatusCode))
	}

	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeClassifierBadResponse,
			"reading response from "+ep.Name)
	}
	return raw, nil
}
