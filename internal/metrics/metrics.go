package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the sync, alert and dashboard paths.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Kiosk edge patches by outcome: "applied", "noop", "conflict", "failed"
	KioskPatches *prometheus.CounterVec

	// Full sync runs by result: "ok", "partial", "noop"
	SyncRuns *prometheus.CounterVec

	// Range-count query latency and failures
	RangeQueryLatency prometheus.Histogram
	RangeQueryFailed  prometheus.Counter

	// Alerts produced in the last evaluation, by severity
	AlertsActive *prometheus.GaugeVec

	// Sync jobs waiting in the retry queue
	SyncQueueDepth prometheus.Gauge
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		KioskPatches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_sync_patches_total",
			Help: "Kiosk assignment edge patches by outcome",
		}, []string{"outcome"}),

		SyncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_sync_runs_total",
			Help: "Campaign to kiosk assignment sync runs by result",
		}, []string{"result"}),

		RangeQueryLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_range_query_duration_seconds",
			Help:    "Duration of donation amount range count queries",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		RangeQueryFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_range_query_failures_total",
			Help: "Donation amount range count queries that failed",
		}),

		AlertsActive: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "system_alerts_active",
			Help: "Alerts produced by the most recent evaluation, by severity",
		}, []string{"severity"}),

		SyncQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_sync_queue_depth",
			Help: "Sync retry jobs waiting to run",
		}),
	}
}

// IncPatch records one kiosk edge patch outcome.
func (m *Metrics) IncPatch(outcome string) {
	if m != nil {
		m.KioskPatches.WithLabelValues(outcome).Inc()
	}
}

// IncSyncRun records one sync run result.
func (m *Metrics) IncSyncRun(result string) {
	if m != nil {
		m.SyncRuns.WithLabelValues(result).Inc()
	}
}

// ObserveRangeQuery records the latency of one range query and whether it failed.
func (m *Metrics) ObserveRangeQuery(d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.RangeQueryLatency.Observe(d.Seconds())
	if failed {
		m.RangeQueryFailed.Inc()
	}
}

// SetAlerts replaces the per-severity alert gauge.
func (m *Metrics) SetAlerts(bySeverity map[string]int) {
	if m == nil {
		return
	}
	m.AlertsActive.Reset()
	for sev, n := range bySeverity {
		m.AlertsActive.WithLabelValues(sev).Set(float64(n))
	}
}

// SetQueueDepth records the number of pending sync jobs.
func (m *Metrics) SetQueueDepth(n int) {
	if m != nil {
		m.SyncQueueDepth.Set(float64(n))
	}
}
