package modkit

import (
	"net/http"
	"reflect"
	"testing"
	"time"

	"bridgewatch/internal/modkit/httpkit"
	"bridgewatch/internal/platform/config"
	"bridgewatch/internal/platform/logger"
	ptime "bridgewatch/internal/platform/time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()
	b := Build()

	assert.Empty(t, b.Name)
	assert.Empty(t, b.Prefix)
	assert.Nil(t, b.Ports)
	assert.Empty(t, b.Mw)

	var r httpkit.Router
	assert.Equal(t, r, b.Subrouter(r))
	assert.NotPanics(t, func() { b.Register(r) })
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()
	fnPtr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	subCalled, regCalled := 0, 0
	type ports struct{ X int }

	b := Build(
		WithName("bridge"),
		WithPrefix("/bridge"),
		WithMiddlewares(mid...),
		WithPorts(ports{X: 7}),
		WithSubrouter(func(in httpkit.Router) httpkit.Router { subCalled++; return in }),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	assert.Equal(t, "bridge", b.Name)
	assert.Equal(t, "/bridge", b.Prefix)
	assert.Equal(t, ports{X: 7}, b.Ports)
	require.Len(t, b.Mw, 2)

	mid[0] = func(next http.Handler) http.Handler { return next }
	assert.Equal(t, fnPtr(mwA), fnPtr(b.Mw[0]), "Built.Mw must not alias the caller's slice")
	assert.Equal(t, fnPtr(mwB), fnPtr(b.Mw[1]))

	var r httpkit.Router
	b.Subrouter(r)
	b.Register(r)
	assert.Equal(t, 1, subCalled)
	assert.Equal(t, 1, regCalled)
}

func TestDeps_Fallbacks(t *testing.T) {
	t.Parallel()
	var d Deps
	assert.WithinDuration(t, time.Now(), d.Now(), time.Minute)
	assert.Equal(t, prometheus.DefaultRegisterer, d.Registerer())
	assert.NotNil(t, d.Logger("bridge"))
}

func TestDeps_Injected(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	reg := prometheus.NewRegistry()
	d := Deps{Cfg: config.New(), Clock: ptime.Fixed(at), Metrics: reg, Log: logger.Get()}
	assert.Equal(t, at, d.Now())
	assert.Equal(t, prometheus.Registerer(reg), d.Registerer())
	assert.NotNil(t, d.Logger("bridge"))
}

type stub struct{ mounted bool }

func (s *stub) MountRoutes(httpkit.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return "ok" }
func (s *stub) Name() string               { return "stub" }

func TestBuilder_Signature(t *testing.T) {
	t.Parallel()
	var b Builder = func(Deps, ...Option) Module { return &stub{} }
	m := b(Deps{})
	m.MountRoutes(nil)
	assert.True(t, m.(*stub).mounted)
	assert.Equal(t, "ok", m.Ports())
}
