package service

import (
	"time"

	"bridgewatch/internal/services/bridge/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks refresh outcomes and the last derived status
type Metrics struct {
	Refreshes        *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	Diagnostics      *prometheus.CounterVec
	Intervals        prometheus.Gauge
	Closed           prometheus.Gauge
	NextClosureStart prometheus.Gauge
	LastSuccess      prometheus.Gauge
}

// NewMetrics registers the bridge metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bridgewatch_refresh_total",
			Help: "Page refreshes by outcome (ok or the error code name)",
		}, []string{"outcome"}),
		RefreshDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridgewatch_refresh_duration_seconds",
			Help:    "Duration of fetch plus extraction",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bridgewatch_diagnostics_total",
			Help: "Per block diagnostics produced by extraction, by reason",
		}, []string{"reason"}),
		Intervals: f.NewGauge(prometheus.GaugeOpts{
			Name: "bridgewatch_closure_intervals",
			Help: "Closure intervals accepted on the last refresh",
		}),
		Closed: f.NewGauge(prometheus.GaugeOpts{
			Name: "bridgewatch_bridge_closed",
			Help: "1 when the bridge was closed at the last refresh",
		}),
		NextClosureStart: f.NewGauge(prometheus.GaugeOpts{
			Name: "bridgewatch_next_closure_start_timestamp_seconds",
			Help: "Unix start of the next closure, 0 when none is known",
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "bridgewatch_last_success_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		}),
	}
}

// ObserveRefresh records one refresh attempt
func (m *Metrics) ObserveRefresh(outcome string, start time.Time) {
	m.Refreshes.WithLabelValues(outcome).Inc()
	m.RefreshDuration.Observe(time.Since(start).Seconds())
}

// ObserveStatus publishes the derived status of an accepted refresh
func (m *Metrics) ObserveStatus(st domain.Status) {
	snap := st.Result.Snapshot
	m.Intervals.Set(float64(len(snap.ClosureTimes)))
	m.Closed.Set(boolGauge(snap.BridgeClosed))
	if snap.NextClosureStart != nil {
		m.NextClosureStart.Set(float64(snap.NextClosureStart.Unix()))
	} else {
		m.NextClosureStart.Set(0)
	}
	m.LastSuccess.Set(float64(st.FetchedAt.Unix()))
	for _, d := range st.Result.Diagnostics {
		m.Diagnostics.WithLabelValues(d.Reason.String()).Inc()
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
