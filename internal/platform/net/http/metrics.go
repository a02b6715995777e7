package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountMetrics exposes g in the Prometheus text format at path when enabled.
// A nil gatherer serves the default registry
func MountMetrics(r Router, path string, g prometheus.Gatherer, enabled bool) {
	if !enabled {
		return
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.Handle(path, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
