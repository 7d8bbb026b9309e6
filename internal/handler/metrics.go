package handler

import (
	"fmt"
	"net/http"

	"github.com/credvault/credvault/internal/metrics"
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

	writeMetric(w, "credvault_credentials_registered_total %d\n", snap.CredentialsRegistered)
	for _, kind := range snap.RejectionKinds() {
		writeMetric(w, "credvault_registrations_rejected_total{kind=%q} %d\n", kind, snap.RegistrationsRejected[kind])
	}

	writeMetric(w, "credvault_password_hash_duration_seconds_count %d\n", snap.HashDurationCount)
	writeMetric(w, "credvault_password_hash_duration_seconds_sum %.6f\n", float64(snap.HashDurationTotalNs)/1e9)

	for _, result := range snap.LookupResults() {
		writeMetric(w, "credvault_lookups_total{result=%q} %d\n", result, snap.Lookups[result])
	}

	writeMetric(w, "credvault_view_cache_hits_total %d\n", snap.ViewCacheHits)
	writeMetric(w, "credvault_view_cache_misses_total %d\n", snap.ViewCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
