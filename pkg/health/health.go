// Package health runs named health checks against the toolkit's
// collaborators.
package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the health of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// CheckFunc probes one component, returning nil when it is healthy.
type CheckFunc func(ctx context.Context) error

// Registry manages a collection of health checks.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]CheckFunc
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]CheckFunc)}
}

// Register adds a named check, replacing any existing check with the same
// name. Registration order is the order checks run in.
func (r *Registry) Register(name string, check CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.checkers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checkers[name] = check
}

// RunAll executes every registered check and reports per-check results.
func (r *Registry) RunAll(ctx context.Context) []CheckResult {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	checkers := make(map[string]CheckFunc, len(r.checkers))
	for k, v := range r.checkers {
		checkers[k] = v
	}
	r.mu.RUnlock()

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		start := time.Now()
		err := checkers[name](ctx)
		result := CheckResult{
			Name:      name,
			Status:    StatusHealthy,
			Timestamp: start,
			Duration:  time.Since(start),
		}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// Healthy reports whether every result is healthy.
func Healthy(results []CheckResult) bool {
	for _, r := range results {
		if r.Status != StatusHealthy {
			return false
		}
	}
	return true
}
