package errors

// Transport helpers for classifying failures of outbound HTTP fetches

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// StatusError records a non-2xx answer from an upstream HTTP server
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements error
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// FromStatus wraps a non-2xx upstream answer. 429 and 5xx map to Unavailable so callers
// can back off; other statuses map to Upstream
func FromStatus(status int, url string) error {
	se := &StatusError{StatusCode: status, URL: url}
	code := ErrorCodeUpstream
	if retryableStatus(status) {
		code = ErrorCodeUnavailable
	}
	return Wrap(se, code, fmt.Sprintf("announcement page answered %d", status))
}

// UpstreamStatus returns the upstream HTTP status carried by err, 0 when none
func UpstreamStatus(err error) int {
	var se *StatusError
	if stderrs.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return status >= 500 && status <= 599
}

// IsRetryable reports whether a fetch failure is transient: timeouts, refused or reset
// connections, DNS hiccups, 408/429/5xx answers and anything coded Unavailable.
// Local cancellation is never retryable; the caller decided to stop
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	var se *StatusError
	if stderrs.As(err, &se) {
		return retryableStatus(se.StatusCode)
	}
	if IsCode(err, ErrorCodeUnavailable) {
		return true
	}

	if stderrs.Is(err, syscall.ECONNREFUSED) || stderrs.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if stderrs.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}
	var ne net.Error
	if stderrs.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
