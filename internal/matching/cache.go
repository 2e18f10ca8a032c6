package matching

import (
	"sync"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Analyzer is the capability the cache and the hybrid matcher need from a
// morphological backend: tokenize and lemmatize a text.  Accepting this
// narrow interface keeps the matching package decoupled from backend
// construction and lifecycle.
type Analyzer interface {
	Analyze(text string) ([]analysis.Token, error)
}

// Cache memoizes a backend's tokenization of a given text so that one inbound
// request running many categories against the same input pays for
// morphological analysis once.  Keys are exact text equality (no
// normalisation), scoped to the one backend instance the cache wraps.
//
// The cache is append-only between Clear calls, which makes it safe to share
// read-mostly across concurrent category evaluations within one request.
// The orchestrator must call Clear once per inbound request before the first
// category runs, both to bound memory and to avoid leaking one request's
// text into another's lookups.
type Cache struct {
	analyzer Analyzer

	mu      sync.RWMutex
	entries map[string][]analysis.Token
}

// NewCache constructs a Cache over the given analyzer.
func NewCache(a Analyzer) *Cache {
	return &Cache{
		analyzer: a,
		entries:  make(map[string][]analysis.Token),
	}
}

// GetOrCompute returns the memoized token sequence for text, computing and
// storing it on first use.  Analysis errors are not cached: a failing backend
// is retried on the next call, and the error propagates to the caller where
// the category-boundary fallback handles it.
func (c *Cache) GetOrCompute(text string) ([]analysis.Token, error) {
	c.mu.RLock()
	tokens, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		return tokens, nil
	}

	computed, err := c.analyzer.Analyze(text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Another goroutine may have stored the same text meanwhile; keep the
	// first entry so concurrent readers observe one stable sequence.
	if existing, ok := c.entries[text]; ok {
		computed = existing
	} else {
		c.entries[text] = computed
	}
	c.mu.Unlock()
	return computed, nil
}

// Clear drops every entry.  Invoked once per inbound request.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]analysis.Token)
	c.mu.Unlock()
}

// Len returns the number of memoized texts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
