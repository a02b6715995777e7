package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bridgewatch/internal/platform/config"
	phttp "bridgewatch/internal/platform/net/http"
	ptime "bridgewatch/internal/platform/time"
	bridgemod "bridgewatch/internal/services/bridge/module"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageSource string

func (p pageSource) Fetch(context.Context, string) ([]byte, error) { return []byte(p), nil }

func bridgeOptions() bridgemod.Options {
	return bridgemod.Options{
		URL:              "https://example.org/bridge",
		ContainerClass:   "newsflash__padding",
		HTTPTimeout:      time.Second,
		Timezone:         "Europe/London",
		Rollover:         true,
		RolloverMargin:   24 * time.Hour,
		MaxDuration:      24 * time.Hour,
		RefreshPerMinute: 60,
		RefreshBurst:     5,
		Source:           pageSource(`<div class="newsflash__padding"><p>Monday 12th May from 9am to 11am</p></div>`),
	}
}

func mount(t *testing.T) (http.Handler, func(string) *httptest.ResponseRecorder) {
	t.Helper()
	mux := chi.NewMux()
	_, err := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New().Prefix("CORE_API_"),
		Clock:         ptime.Fixed(time.Date(2025, time.May, 12, 9, 30, 0, 0, time.UTC)),
		Metrics:       prometheus.NewRegistry(),
		Bridge:        bridgeOptions(),
		EnableMetrics: true,
	})
	require.NoError(t, err)
	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}
	return mux, get
}

func TestMount_ReadyFollowsFirstRefresh(t *testing.T) {
	mux, get := mount(t)

	rec := get("/api/v1/meta/ready")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"fail"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bridge/refresh", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = get("/api/v1/meta/ready")
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = get("/api/v1/bridge/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"closed"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMount_MetricsAndVersion(t *testing.T) {
	mux, get := mount(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bridge/refresh", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bridgewatch_refresh_total{outcome="ok"} 1`)
	assert.Contains(t, string(body), "bridgewatch_bridge_closed 1")

	rec = get("/api/v1/meta/version")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"bridgewatch"`)

	assert.Equal(t, http.StatusNotFound, get("/debug/pprof/").Code)
}

func TestMount_InvalidBridgeOptions(t *testing.T) {
	o := bridgeOptions()
	o.URL = ""
	_, err := Mount(phttp.AdaptChi(chi.NewMux()), Options{Bridge: o, Metrics: prometheus.NewRegistry()})
	require.Error(t, err)
}
