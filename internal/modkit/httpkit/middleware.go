package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"bridgewatch/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Slow    time.Duration
	Timeout time.Duration
	Origins []string
}

// CommonStack returns the baseline middleware slice for versioned API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogRequestID,
		// observability, outside recover so panics are logged as 500s
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		// safety
		middleware.RecoverJSON,
		// cache / freshness; status must never be served stale by a proxy
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
