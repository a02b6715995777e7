// Package api provides the HTTP API for the application
package api

import (
	"context"

	"bridgewatch/internal/platform/config"
	"bridgewatch/internal/platform/logger"
	phttp "bridgewatch/internal/platform/net/http"
	ptime "bridgewatch/internal/platform/time"

	"bridgewatch/internal/modkit"
	"bridgewatch/internal/modkit/httpkit"
	"bridgewatch/internal/modkit/module"
	"bridgewatch/internal/services/bridge/domain"

	metamod "bridgewatch/internal/services/api/meta/module"
	bridgemod "bridgewatch/internal/services/bridge/module"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceName is reported by /meta endpoints
const ServiceName = "bridgewatch-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Clock          ptime.Clock
	Metrics        *prometheus.Registry
	Bridge         bridgemod.Options
	Stack          httpkit.StackOptions
	EnableMetrics  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router. The returned registry lets the
// caller reach module ports, such as the bridge poll loop
func Mount(r phttp.Router, opt Options) (*module.Registry, error) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:   opt.Logger,
		Cfg:   opt.Config,
		Clock: opt.Clock,
	}
	if opt.Metrics != nil {
		deps.Metrics = opt.Metrics
	}

	bridge, err := bridgemod.New(deps, opt.Bridge)
	if err != nil {
		return nil, err
	}
	reader := module.MustPortsOf[bridgemod.Ports](bridge).Reader

	reg := module.NewRegistry()
	for _, m := range []module.Module{
		metamod.New(deps, ServiceName, []metamod.Check{{Name: "bridge", Pinger: snapshotReady{reader}}}),
		bridge,
	} {
		if err := reg.Add(m); err != nil {
			return nil, err
		}
	}

	// scrape and debug endpoints live outside the versioned API
	var g prometheus.Gatherer
	if opt.Metrics != nil {
		g = opt.Metrics
	}
	phttp.MountMetrics(r, "/metrics", g, opt.EnableMetrics)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range reg.All() {
			m.MountRoutes(api)
		}
	})
	return reg, nil
}

// snapshotReady reports ready once the bridge holds an accepted status
type snapshotReady struct{ r domain.ReaderPort }

func (s snapshotReady) Ping(context.Context) error {
	_, err := s.r.Latest()
	return err
}
