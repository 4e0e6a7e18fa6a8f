package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Status values reported by the probe endpoints.
const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
	healthStatusAbsent       = "absent"
)

// HealthChecker serves Kubernetes-style probes for the HTTP transport.
// Liveness stays green while the process runs; readiness drops during
// shutdown so load balancers drain connections before the listener closes.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a HealthChecker that starts out ready.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness state reported by /readyz.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the server accepts traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

func (h *HealthChecker) shuttingDown() bool {
	return h.serverContext != nil && h.serverContext.IsShutdown()
}

// healthReport is the JSON body returned by every probe endpoint.
type healthReport struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeReport(w http.ResponseWriter, code int, report healthReport) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}

// RegisterHealthEndpoints mounts the probe handlers on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleLiveness)
	mux.HandleFunc("/readyz", h.handleReadiness)
	mux.HandleFunc("/healthz/detailed", h.handleDetailed)
}

// handleLiveness answers /healthz. Reaching the handler at all proves the
// process is alive, so the answer is unconditionally green.
func (h *HealthChecker) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, http.StatusOK, healthReport{Status: healthStatusOK})
}

// handleReadiness answers /readyz with per-check detail.
func (h *HealthChecker) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	checks := map[string]string{
		"ready":    healthStatusOK,
		"shutdown": healthStatusOK,
	}
	status := healthStatusOK
	code := http.StatusOK

	if !h.ready.Load() {
		checks["ready"] = healthStatusNotReady
		status = healthStatusNotReady
		code = http.StatusServiceUnavailable
	}
	if h.shuttingDown() {
		checks["shutdown"] = healthStatusShuttingDown
		status = healthStatusNotReady
		code = http.StatusServiceUnavailable
	}

	writeReport(w, code, healthReport{Status: status, Checks: checks})
}

// handleDetailed answers /healthz/detailed with uptime and credential state.
// Credential state is informational only: the server stays healthy and
// usable for the authorization bootstrap before any token is cached.
func (h *HealthChecker) handleDetailed(w http.ResponseWriter, _ *http.Request) {
	checks := map[string]string{
		"credentials": healthStatusAbsent,
	}
	if h.serverContext != nil && h.serverContext.Authenticator() != nil {
		if h.serverContext.Authenticator().Status().HasCredentials {
			checks["credentials"] = healthStatusOK
		}
	}

	status := healthStatusOK
	code := http.StatusOK
	switch {
	case h.shuttingDown():
		status = healthStatusShuttingDown
		code = http.StatusServiceUnavailable
	case !h.ready.Load():
		status = healthStatusNotReady
		code = http.StatusServiceUnavailable
	}

	writeReport(w, code, healthReport{
		Status: status,
		Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
		Checks: checks,
	})
}
