package handler

import (
	"fmt"
	"net/http"

	"github.com/blogapi/blogapi/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "blogapi_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "blogapi_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "blogapi_users_deleted_total %d\n", snap.UsersDeleted)

	writeMetric(w, "blogapi_posts_created_total %d\n", snap.PostsCreated)
	writeMetric(w, "blogapi_posts_updated_total %d\n", snap.PostsUpdated)
	writeMetric(w, "blogapi_posts_deleted_total %d\n", snap.PostsDeleted)

	for _, op := range snap.FailureOps() {
		writeMetric(w, "blogapi_store_failures_total{op=%q} %d\n", op, snap.StoreFailures[op])
	}

	writeMetric(w, "blogapi_store_duration_seconds_count %d\n", snap.StoreDurationCount)
	writeMetric(w, "blogapi_store_duration_seconds_sum %.6f\n", float64(snap.StoreDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
