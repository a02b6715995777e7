package page

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	perr "bridgewatch/internal/platform/errors"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "bridgewatch/1 (+closure status poller)"
	defaultMaxBytes  = 4 << 20
	acceptHTML       = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5"
)

// Fetcher GETs announcement pages. It remembers ETag and Last-Modified per URL
// and sends them back, serving the remembered body on 304
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64

	mu    sync.Mutex
	cache map[string]validators
}

// validators is what a conditional GET needs plus the body it validates
type validators struct {
	etag         string
	lastModified string
	body         []byte
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.UserAgent = ua
		}
	}
}

// WithMaxBytes caps how much of a body is read
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.MaxBytes = n
		}
	}
}

// WithClient swaps the http client, e.g. for httptest servers
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.Client = c
		}
	}
}

// NewFetcher builds a Fetcher with a bounded client timeout
func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	f := &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
		MaxBytes:  defaultMaxBytes,
		cache:     map[string]validators{},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch returns the page body. Transport failures map to Unavailable, non-2xx
// answers go through perr.FromStatus
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build page request")
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", acceptHTML)

	prev, havePrev := f.remembered(url)
	if havePrev {
		if prev.etag != "" {
			req.Header.Set("If-None-Match", prev.etag)
		}
		if prev.lastModified != "" {
			req.Header.Set("If-Modified-Since", prev.lastModified)
		}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "fetch announcement page")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotModified && havePrev:
		return prev.body, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, perr.FromStatus(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read announcement page")
	}

	etag := strings.TrimSpace(resp.Header.Get("ETag"))
	lm := strings.TrimSpace(resp.Header.Get("Last-Modified"))
	if etag != "" || lm != "" {
		f.remember(url, validators{etag: etag, lastModified: lm, body: body})
	}
	return body, nil
}

func (f *Fetcher) remembered(url string) (validators, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.cache[url]
	return v, ok
}

func (f *Fetcher) remember(url string, v validators) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cache == nil {
		f.cache = map[string]validators{}
	}
	f.cache[url] = v
}
