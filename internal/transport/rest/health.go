package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// liveListener reports whether cross-instance live updates are being received.
type liveListener interface {
	Connected() bool
}

// subscriberCounter reports how many live streams are open on this instance.
type subscriberCounter interface {
	Len() int
}

// Component statuses.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

// HealthHandler serves the probe endpoints. The ledger database decides
// readiness; live updates are best effort and only degrade /health.
type HealthHandler struct {
	db       dbPinger
	listener liveListener
	hub      subscriberCounter
	version  string
}

// NewHealthHandler creates a HealthHandler. listener and hub may be nil when
// live updates are not served.
func NewHealthHandler(db dbPinger, listener liveListener, hub subscriberCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, listener: listener, hub: hub, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status      string `json:"status"`
	Latency     string `json:"latency,omitempty"`
	Subscribers *int   `json:"subscribers,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when votes can be stored, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    statusDown,
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now(),
	})
}

// Health reports the database with ping latency and the live update feed.
// A down database answers 503; a disconnected feed answers 200 "degraded".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overall := statusOK

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: statusDown}
		overall = statusDown
	} else {
		components["database"] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}
	}

	if h.listener != nil {
		live := CompStatus{Status: statusOK}
		if !h.listener.Connected() {
			live.Status = statusDegraded
			if overall == statusOK {
				overall = statusDegraded
			}
		}
		if h.hub != nil {
			n := h.hub.Len()
			live.Subscribers = &n
		}
		components["live_updates"] = live
	}

	status := http.StatusOK
	if overall == statusDown {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
