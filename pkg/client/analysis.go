package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// AnalyseResult is the gateway's response to an analysis request.
type AnalyseResult struct {
	Language       string                   `json:"language"`
	BiasIndicators []analysis.BiasIndicator `json:"biasIndicators"`
}

// LexiconResult is the gateway's response to a lexicon request.
type LexiconResult struct {
	Language string                 `json:"language"`
	Terms    []analysis.LexiconTerm `json:"terms"`
}

// Analyse runs the full analysis over the request.
func (c *Client) Analyse(ctx context.Context, req *analysis.AnalyseRequest) (*AnalyseResult, error) {
	var result AnalyseResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyse", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyseCategory runs a single category over the request.
func (c *Client) AnalyseCategory(ctx context.Context, category string, req *analysis.AnalyseRequest) (*AnalyseResult, error) {
	var result AnalyseResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyse/"+category, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LexiconTerms looks up lexicon terms occurring in the request text.
func (c *Client) LexiconTerms(ctx context.Context, req *analysis.AnalyseRequest) (*LexiconResult, error) {
	var result LexiconResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/lexicon", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Sentiment proxies the request to the sentiment classifier and returns its
// raw score document.
func (c *Client) Sentiment(ctx context.Context, req *analysis.AnalyseRequest) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/v1/sentiment", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Categories lists the category keys the gateway evaluates, in evaluation
// order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var result struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// Health checks the gateway liveness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}
