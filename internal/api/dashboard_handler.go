package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/halverson/recall-api/internal/analytics"
	"github.com/halverson/recall-api/internal/api/shared"
	"github.com/halverson/recall-api/internal/curve"
	"github.com/halverson/recall-api/internal/platform/logger"
)

// DashboardHandler serves the read-only analytics projections and the
// display-only retention curve. Every response is recomputed on demand from
// the current collection snapshot.
type DashboardHandler struct {
	topics TopicManager
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(topics TopicManager, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DashboardHandler")
	}

	return &DashboardHandler{
		topics: topics,
		logger: logger.With(slog.String("component", "dashboard_handler")),
		now:    time.Now,
	}
}

// Upcoming handles GET /dashboard/upcoming requests.
func (h *DashboardHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	snapshot := h.topics.Snapshot(r.Context())
	entries := analytics.Upcoming(snapshot, h.now())
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Workload handles GET /dashboard/workload requests.
func (h *DashboardHandler) Workload(w http.ResponseWriter, r *http.Request) {
	snapshot := h.topics.Snapshot(r.Context())
	buckets := analytics.Workload(snapshot, h.now())
	shared.RespondWithJSON(w, r, http.StatusOK, buckets)
}

// Heatmap handles GET /dashboard/heatmap requests.
func (h *DashboardHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	snapshot := h.topics.Snapshot(r.Context())
	cells := analytics.Heatmap(snapshot, h.now())
	shared.RespondWithJSON(w, r, http.StatusOK, cells)
}

// Curve handles GET /curve requests. The complexity query parameter defaults
// to curve.DefaultComplexity; the engine neither consumes nor validates the
// projection.
func (h *DashboardHandler) Curve(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	complexity := curve.DefaultComplexity
	if raw := r.URL.Query().Get("complexity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("invalid complexity parameter", slog.String("complexity", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Complexity must be an integer")
			return
		}
		complexity = parsed
	}

	shared.RespondWithJSON(w, r, http.StatusOK, curve.Retention(complexity))
}
