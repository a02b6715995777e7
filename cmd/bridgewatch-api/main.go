package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"bridgewatch/internal/modkit/httpkit"
	"bridgewatch/internal/modkit/module"
	"bridgewatch/internal/platform/config"
	"bridgewatch/internal/platform/logger"
	phttp "bridgewatch/internal/platform/net/http"
	"bridgewatch/internal/platform/net/middleware"
	ptime "bridgewatch/internal/platform/time"

	"bridgewatch/internal/services/api"
	bridgemod "bridgewatch/internal/services/bridge/module"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*), module config under CORE_BRIDGE_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// http server (reads CORE_API_PORT and timeouts); /healthz answers before any routing
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/healthz"))
	})

	mods, err := api.Mount(srv.Router(), api.Options{
		Config:  apiCfg,
		Logger:  l,
		Clock:   ptime.System,
		Metrics: reg,
		Bridge:  bridgemod.FromConfig(root),
		Stack: httpkit.StackOptions{
			Slow:    time.Duration(apiCfg.MayInt("SLOW_MS", 500)) * time.Millisecond,
			Origins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}
	ports, ok := module.PortsAs[bridgemod.Ports](mods, "bridge")
	if !ok {
		l.Panic().Msg("bridge module not mounted")
	}
	runner := ports.Runner

	// server and poller share one lifetime; either failing stops both
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return runner.Run(gctx) })

	if err := g.Wait(); err != nil {
		l.Panic().Err(err).Msg("bridgewatch-api stopped")
	}
	l.Info().Msg("bridgewatch-api exited cleanly")
}
