// internal/server/handlers/health.go

package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	appName    = "YardSaleFndr"
	appVersion = "1.0.0"
)

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency probed by the health endpoint
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

// HealthHandler reports application and dependency health
type HealthHandler struct {
	checks      []HealthCheck
	environment string
	started     time.Time
	timeout     time.Duration
	logger      *zap.Logger
}

// NewHealthHandler creates a health handler probing the given dependencies
func NewHealthHandler(environment string, logger *zap.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:      checks,
		environment: environment,
		started:     time.Now(),
		timeout:     2 * time.Second,
		logger:      logger,
	}
}

type dependencyStatus struct {
	Status  string `json:"status"`
	Healthy bool   `json:"healthy"`
}

// Health pings every dependency and returns 503 if any is down
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	healthy := true
	deps := make(map[string]dependencyStatus, len(h.checks))
	for _, check := range h.checks {
		if err := check.Pinger.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", check.Name), zap.Error(err))
			deps[check.Name] = dependencyStatus{Status: "disconnected"}
			healthy = false
			continue
		}
		deps[check.Name] = dependencyStatus{Status: "connected", Healthy: true}
	}

	status, code := "success", http.StatusOK
	if !healthy {
		status, code = "error", http.StatusServiceUnavailable
	}

	respondWithJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"application": map[string]string{
			"name":        appName,
			"version":     appVersion,
			"environment": h.environment,
		},
		"dependencies": deps,
		"uptime":       time.Since(h.started).Seconds(),
	})
}
