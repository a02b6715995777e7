// Package service runs the bridge refresh workflow: fetch the page, extract closures,
// keep the last good status and poll on a schedule
package service

import (
	"sync"
	"time"

	"bridgewatch/internal/core/schedule"
	"bridgewatch/internal/modkit"
	"bridgewatch/internal/platform/logger"
	ptime "bridgewatch/internal/platform/time"
	"bridgewatch/internal/services/bridge/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service is everything the module exposes
type Service interface {
	domain.ReaderPort
	domain.RefresherPort
	domain.RunnerPort
	domain.ParserPort
}

// Config carries runtime knobs
type Config struct {
	URL            string
	ContainerClass string
	Location       *time.Location
	// RefreshEvery is the poll period, 0 runs one refresh and then idles
	RefreshEvery time.Duration
	// RetryBackoff is the shorter wait used after a retryable fetch failure
	RetryBackoff time.Duration
	Engine       schedule.Options
}

// Svc implements Service
type Svc struct {
	cfg     Config
	src     domain.PageSource
	engine  *schedule.Engine
	now     ptime.Clock
	log     *logger.Logger
	metrics *Metrics
	newID   func() string

	group singleflight.Group

	mu     sync.RWMutex
	latest *domain.Status
}

var _ Service = (*Svc)(nil)

// New builds the service. src is usually a page.Fetcher
func New(deps modkit.Deps, cfg Config, src domain.PageSource) *Svc {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 30 * time.Second
	}
	return &Svc{
		cfg:     cfg,
		src:     src,
		engine:  schedule.New(cfg.Engine),
		now:     deps.Now,
		log:     deps.Logger("bridge"),
		metrics: NewMetrics(deps.Registerer()),
		newID:   func() string { return uuid.NewString() },
	}
}

// Latest returns the last accepted status, NotFound before the first success
func (s *Svc) Latest() (domain.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return domain.Status{}, errNoStatus()
	}
	return *s.latest, nil
}

// StatusAt re-derives the last accepted status at now
func (s *Svc) StatusAt(now time.Time) (domain.Status, error) {
	st, err := s.Latest()
	if err != nil {
		return domain.Status{}, err
	}
	return st.At(now.In(s.cfg.Location)), nil
}

func (s *Svc) store(st domain.Status) {
	s.mu.Lock()
	s.latest = &st
	s.mu.Unlock()
}

func (s *Svc) clock() time.Time { return s.now().In(s.cfg.Location) }
