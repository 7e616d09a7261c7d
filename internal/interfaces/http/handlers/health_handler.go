package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
)

// ReadinessCheck is one named dependency probe.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version string
	checks  []ReadinessCheck
	logger  logging.Logger
}

// NewHealthHandler wires the probes.
func NewHealthHandler(version string, checks []ReadinessCheck, log logging.Logger) *HealthHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HealthHandler{version: version, checks: checks, logger: log.Named("health")}
}

// Liveness handles GET /healthz: the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Readiness handles GET /readyz: every dependency probe must pass.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				logging.String("check", check.Name), logging.Err(err))
			results[check.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[check.Name] = "ok"
	}

	body := map[string]interface{}{"checks": results}
	if status == http.StatusOK {
		body["status"] = "ready"
	} else {
		body["status"] = "unavailable"
	}
	writeJSON(w, status, body)
}
