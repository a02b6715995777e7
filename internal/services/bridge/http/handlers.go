// Package http provides http transport for the bridge service
package http

import (
	stdhttp "net/http"
	"time"

	"bridgewatch/internal/modkit/httpkit"
	perr "bridgewatch/internal/platform/errors"
	ptime "bridgewatch/internal/platform/time"
	"bridgewatch/internal/services/bridge/domain"
	svc "bridgewatch/internal/services/bridge/service"
)

// Options tunes the transport
type Options struct {
	// Location reads zone-less ?at= values, UTC when nil
	Location *time.Location
	// Clock is the request clock used for GET /status
	Clock ptime.Clock
	// RefreshLimit throttles POST /refresh, nil leaves it open
	RefreshLimit func(stdhttp.Handler) stdhttp.Handler
}

// Register mounts bridge endpoints on the given router
func Register(r httpkit.Router, s svc.Service, opts Options) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = ptime.System
	}
	h := &handlers{svc: s, loc: opts.Location, now: opts.Clock}

	// open/closed as of now or ?at=
	httpkit.Get(r, "/status", h.status)

	// accepted intervals and per block diagnostics
	httpkit.Get(r, "/closures", h.closures)

	// ad hoc extraction, never stored
	httpkit.PostJSON[domain.ParseInput](r, "/parse", h.parse)

	r.Group(func(g httpkit.Router) {
		if opts.RefreshLimit != nil {
			g.Use(opts.RefreshLimit)
		}
		httpkit.Post(g, "/refresh", h.refresh)
	})
}

type handlers struct {
	svc svc.Service
	loc *time.Location
	now ptime.Clock
}

func (h *handlers) status(r *stdhttp.Request) (any, error) {
	at := h.now().In(h.loc)
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := ptime.ParseIn(raw, h.loc)
		if err != nil {
			return nil, perr.WithField(err, "at")
		}
		at = t
	}
	st, err := h.svc.StatusAt(at)
	if err != nil {
		return nil, err
	}
	return st.View(at), nil
}

func (h *handlers) closures(_ *stdhttp.Request) (any, error) {
	st, err := h.svc.Latest()
	if err != nil {
		return nil, err
	}
	return st.Closures(), nil
}

func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	st, err := h.svc.Refresh(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.OK(st.View(st.FetchedAt)).WithHeader("X-Run-ID", st.RunID), nil
}

func (h *handlers) parse(r *stdhttp.Request, in domain.ParseInput) (any, error) {
	return h.svc.Parse(r.Context(), in)
}
