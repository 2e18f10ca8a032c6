package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPObserver records one completed request.  Satisfied by
// prometheus.AppMetrics.
type HTTPObserver interface {
	ObserveHTTPRequest(method, path string, status int, elapsed time.Duration)
}

// activeObserver is satisfied by observers that also track in-flight
// requests.
type activeObserver interface {
	ActiveRequest(method string, delta int)
}

// Metrics returns middleware that records request counts and latencies.
// The path label uses the chi route pattern, not the raw URL, to keep
// series cardinality bounded.
func Metrics(observer HTTPObserver) func(http.Handler) http.Handler {
	active, _ := observer.(activeObserver)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if active != nil {
				active.ActiveRequest(r.Method, 1)
				defer active.ActiveRequest(r.Method, -1)
			}
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			observer.ObserveHTTPRequest(r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}
