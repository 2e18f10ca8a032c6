package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is implemented by components that can report their health,
// such as the redis client and the classifier endpoints.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to the HealthChecker interface.
type HealthCheckerFunc struct {
	CheckerName string
	CheckFunc   func(ctx context.Context) error
}

func (f HealthCheckerFunc) Name() string                    { return f.CheckerName }
func (f HealthCheckerFunc) Check(ctx context.Context) error { return f.CheckFunc(ctx) }

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
	}
}

// LivenessResponse is the response for the liveness probe.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the response for the readiness probe.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// ComponentCheck is the health status of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz.  Always 200 while the process runs.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /readyz.  Returns 503 when any checker fails.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if len(h.checkers) == 0 {
		writeJSON(w, http.StatusOK, ReadinessResponse{Status: "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := h.checkAll(ctx)
	for _, c := range components {
		if c.Status != "healthy" {
			writeJSON(w, http.StatusServiceUnavailable,
				ReadinessResponse{Status: "not_ready", Components: components})
			return
		}
	}
	writeJSON(w, http.StatusOK, ReadinessResponse{Status: "ready", Components: components})
}

func (h *HealthHandler) checkAll(ctx context.Context) map[string]ComponentCheck {
	var mu sync.Mutex
	components := make(map[string]ComponentCheck, len(h.checkers))

	var wg sync.WaitGroup
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.Check(ctx)
			check := ComponentCheck{
				Status:  "healthy",
				Latency: time.Since(start).Truncate(time.Millisecond).String(),
			}
			if err != nil {
				check.Status = "unhealthy"
				check.Error = err.Error()
			}
			mu.Lock()
			components[checker.Name()] = check
			mu.Unlock()
		}(checker)
	}
	wg.Wait()
	return components
}
