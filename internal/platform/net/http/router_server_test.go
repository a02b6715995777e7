package http_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"bridgewatch/internal/platform/config"
	phttp "bridgewatch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_DefaultsAndOptions(t *testing.T) {
	called := false
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_NONE_"), func(m *chi.Mux) {
		called = true
		m.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("pong")) })
	})
	assert.True(t, called)
	assert.Equal(t, ":4000", srv.Addr())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "pong", rec.Body.String())
}

func TestNewServer_PortFromEnv(t *testing.T) {
	t.Setenv("TEST_SRV_PORT", "8123")
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_"))
	assert.Equal(t, ":8123", srv.Addr())
}

func TestRouterGroupRoute(t *testing.T) {
	srv := phttp.NewServer(config.New())
	r := srv.Router()

	hits := 0
	r.Route("/api", func(api phttp.Router) {
		api.Group(func(g phttp.Router) {
			g.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					hits++
					next.ServeHTTP(w, req)
				})
			})
			g.Get("/a", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		})
		api.Post("/b", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		api.Head("/c", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/a", http.StatusTeapot},
		{"POST", "/api/b", http.StatusAccepted},
		{"HEAD", "/api/c", http.StatusOK},
		{"GET", "/api/b", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
	assert.Equal(t, 1, hits, "group middleware only wraps group routes")
}

func TestServerRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	t.Setenv("RUNSRV_PORT", strconv.Itoa(port))
	srv := phttp.NewServer(config.New().Prefix("RUNSRV_"), func(m *chi.Mux) {
		m.Get("/up", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/up"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
