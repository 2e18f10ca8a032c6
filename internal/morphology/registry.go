package morphology

import (
	"sync"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
)

// Registry holds the per-language backends.  Absence is an explicit state:
// RegisterAbsent records that a language was configured but its backend could
// not be initialized, so Lookup answers ok=false instead of the caller
// guessing between "never configured" and "broken".  Both answers lead to the
// same surface-matching fallback; the distinction only matters for logs.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
	absent   map[string]struct{}
	logger   logging.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Registry{
		backends: make(map[string]Backend),
		absent:   make(map[string]struct{}),
		logger:   logger.Named("morphology"),
	}
}

// Register installs a backend for language, replacing any previous entry.
func (r *Registry) Register(language string, b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.absent, language)
	r.backends[language] = b
	r.logger.Info("morphological backend registered",
		logging.String("language", language),
		logging.String("backend", b.Name()))
}

// RegisterAbsent records that language has no working backend.
func (r *Registry) RegisterAbsent(language string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, language)
	r.absent[language] = struct{}{}
	r.logger.Warn("morphological backend absent, lemma strategies will fall back",
		logging.String("language", language))
}

// Lookup returns the backend for language.  ok is false both for languages
// never configured and for those registered absent.
func (r *Registry) Lookup(language string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[language]
	return b, ok
}

// IsAbsent reports whether language was explicitly registered absent.
func (r *Registry) IsAbsent(language string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.absent[language]
	return ok
}

// Languages returns the languages with a working backend.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.backends))
	for lang := range r.backends {
		out = append(out, lang)
	}
	return out
}

// Close shuts down all registered backends.  The first error is returned but
// every backend's Close is attempted.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for lang, b := range r.backends {
		if err := b.Close(); err != nil {
			r.logger.Error("closing morphological backend",
				logging.String("language", lang), logging.Err(err))
			if first == nil {
				first = err
			}
		}
	}
	r.backends = make(map[string]Backend)
	return first
}
