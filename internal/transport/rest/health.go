package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/family-planner/internal/service/digest"
)

const pingTimeout = 3 * time.Second

// dbPinger is satisfied by *pgxpool.Pool.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// digestProbe is satisfied by *digest.Scheduler.
type digestProbe interface {
	Status() digest.Status
}

// HealthHandler serves the probes. Ready depends on the database only; the
// digest scheduler is reported by Health and can only degrade it.
type HealthHandler struct {
	db      dbPinger
	digest  digestProbe
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. dg is nil when the daily digest
// is disabled.
func NewHealthHandler(db dbPinger, dg digestProbe, version string) *HealthHandler {
	return &HealthHandler{db: db, digest: dg, version: version, now: time.Now}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string     `json:"status"`
	Latency string     `json:"latency,omitempty"`
	Error   string     `json:"error,omitempty"`
	LastRun *time.Time `json:"last_run,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// Live always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready returns 503 while the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if db := h.database(r.Context()); db.Status != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health reports every component. A failing digest run degrades the service
// but keeps 200; an unreachable database is 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.database(r.Context())
	dg := h.digestStatus()

	overall, code := "ok", http.StatusOK
	switch {
	case db.Status != "ok":
		overall, code = "down", http.StatusServiceUnavailable
	case dg.Status == "failing":
		overall = "degraded"
	}

	writeJSON(w, code, HealthResponse{
		Status:  overall,
		Version: h.version,
		Components: map[string]CompStatus{
			"database": db,
			"digest":   dg,
		},
		Timestamp: h.now(),
	})
}

func (h *HealthHandler) database(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func (h *HealthHandler) digestStatus() CompStatus {
	if h.digest == nil {
		return CompStatus{Status: "disabled"}
	}

	st := h.digest.Status()
	c := CompStatus{Status: "ok"}
	if !st.LastRun.IsZero() {
		c.LastRun = &st.LastRun
	}
	if !st.NextRun.IsZero() {
		c.NextRun = &st.NextRun
	}
	if st.LastErr != nil {
		c.Status = "failing"
		c.Error = st.LastErr.Error()
	}
	return c
}
