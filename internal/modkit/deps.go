// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"bridgewatch/internal/platform/config"
	"bridgewatch/internal/platform/logger"
	ptime "bridgewatch/internal/platform/time"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Clock   ptime.Clock
	Metrics prometheus.Registerer
}

// Now reads the injected clock, falling back to the system clock
func (d Deps) Now() time.Time {
	if d.Clock == nil {
		return ptime.System()
	}
	return d.Clock()
}

// Registerer returns the metrics registerer, the process default when unset
func (d Deps) Registerer() prometheus.Registerer {
	if d.Metrics == nil {
		return prometheus.DefaultRegisterer
	}
	return d.Metrics
}

// Logger returns the module logger, the named root logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
