// Package module wires the bridge service into the API using modkit
package module

import (
	"net/http"
	"time"

	"bridgewatch/internal/adapters/ingest/page"
	"bridgewatch/internal/core/schedule"
	"bridgewatch/internal/modkit"
	"bridgewatch/internal/modkit/httpkit"
	perr "bridgewatch/internal/platform/errors"
	"bridgewatch/internal/platform/net/http/bind"
	"bridgewatch/internal/platform/net/middleware"
	str "bridgewatch/internal/platform/strings"
	"bridgewatch/internal/services/bridge/domain"
	bridgehttp "bridgewatch/internal/services/bridge/http"
	"bridgewatch/internal/services/bridge/service"
)

// Ports exposed by the bridge module
type Ports struct {
	Reader    domain.ReaderPort
	Refresher domain.RefresherPort
	Runner    domain.RunnerPort
	Parser    domain.ParserPort
}

// Module implements the bridge module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Svc
}

// New validates opts and constructs the bridge module
func New(deps modkit.Deps, opts Options, extra ...modkit.Option) (*Module, error) {
	if err := bind.Validate(opts); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "load time zone")
	}

	b := modkit.Build(append([]modkit.Option{modkit.WithName("bridge"), modkit.WithPrefix("/bridge")}, extra...)...)

	src := opts.Source
	if src == nil {
		var fo []page.Option
		if opts.UserAgent != "" {
			fo = append(fo, page.WithUserAgent(opts.UserAgent))
		}
		src = page.NewFetcher(opts.HTTPTimeout, fo...)
	}

	svc := service.New(deps, service.Config{
		URL:            opts.URL,
		ContainerClass: opts.ContainerClass,
		Location:       loc,
		RefreshEvery:   time.Duration(opts.RefreshMinutes) * time.Minute,
		RetryBackoff:   opts.RetryBackoff,
		Engine: schedule.Options{
			Rollover:    schedule.RolloverPolicy{Enabled: opts.Rollover, Margin: opts.RolloverMargin},
			MaxDuration: opts.MaxDuration,
		},
	}, src)

	limiter := middleware.NewRateLimiter(time.Minute/time.Duration(opts.RefreshPerMinute), opts.RefreshBurst)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Reader: svc, Refresher: svc, Runner: svc, Parser: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		bridgehttp.Register(r, m.svc, bridgehttp.Options{
			Location:     loc,
			Clock:        deps.Now,
			RefreshLimit: limiter.Middleware,
		})
		if external != nil {
			external(r)
		}
	}
	return m, nil
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
