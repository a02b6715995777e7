package service

import (
	"bytes"
	"context"
	"time"

	"bridgewatch/internal/adapters/ingest/page"
	perr "bridgewatch/internal/platform/errors"
	"bridgewatch/internal/platform/logger"
	"bridgewatch/internal/services/bridge/domain"
)

func errNoStatus() error {
	return perr.NotFoundf("no bridge status yet, the first refresh has not succeeded")
}

// Refresh fetches and extracts the page now. Concurrent callers share one fetch, which
// runs detached from any single caller's cancellation and is bounded by the fetcher's
// own timeout. A caller whose ctx ends first gets ctx.Err() while the fetch carries on.
// On failure the previous status is kept and the error is returned
func (s *Svc) Refresh(ctx context.Context) (domain.Status, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("refresh", func() (any, error) {
		return s.refresh(shared)
	})
	select {
	case <-ctx.Done():
		return domain.Status{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return domain.Status{}, r.Err
		}
		return r.Val.(domain.Status), nil
	}
}

func (s *Svc) refresh(ctx context.Context) (domain.Status, error) {
	runID := s.newID()
	ctx = logger.WithRun(ctx, runID)
	log := s.log.With().Str("run_id", runID).Str("url", s.cfg.URL).Logger()
	start := time.Now()

	body, err := s.src.Fetch(ctx, s.cfg.URL)
	if err != nil {
		s.metrics.ObserveRefresh(perr.CodeOf(err).String(), start)
		log.Warn().Err(err).
			Bool("retryable", perr.IsRetryable(err)).
			Int("upstream_status", perr.UpstreamStatus(err)).
			Msg("page fetch failed, keeping previous status")
		return domain.Status{}, perr.WithOp(err, "bridge.refresh")
	}

	blocks, err := page.ExtractBlocks(bytes.NewReader(body), s.cfg.ContainerClass)
	if err != nil {
		s.metrics.ObserveRefresh(perr.CodeOf(err).String(), start)
		log.Error().Err(err).Msg("page could not be split into blocks")
		return domain.Status{}, perr.WithOp(err, "bridge.refresh")
	}

	now := s.clock()
	st := domain.Status{
		RunID:     logger.RunID(ctx),
		Source:    s.cfg.URL,
		FetchedAt: now,
		Result:    s.engine.Extract(blocks, now),
	}
	s.store(st)
	s.metrics.ObserveRefresh("ok", start)
	s.metrics.ObserveStatus(st)

	snap := st.Result.Snapshot
	log.Info().
		Int("blocks", len(blocks)).
		Int("intervals", len(snap.ClosureTimes)).
		Int("diagnostics", len(st.Result.Diagnostics)).
		Bool("closed", snap.BridgeClosed).
		Str("sentinel", st.Result.Sentinel.String()).
		Dur("elapsed", time.Since(start)).
		Msg("refresh done")
	for _, d := range st.Result.Diagnostics {
		log.Debug().
			Int("block", d.OrderIndex).
			Str("reason", d.Reason.String()).
			Str("detail", d.Detail).
			Msg("block diagnostic")
	}
	return st, nil
}

// Run refreshes immediately and then every RefreshEvery until ctx ends. A retryable
// failure is retried after RetryBackoff when that is sooner. With RefreshEvery at 0
// it refreshes once and waits for ctx
func (s *Svc) Run(ctx context.Context) error {
	s.log.Info().Str("url", s.cfg.URL).Dur("every", s.cfg.RefreshEvery).Msg("bridge poller started")
	defer s.log.Info().Msg("bridge poller stopped")

	wait := s.tick(ctx)
	if s.cfg.RefreshEvery <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			t.Reset(s.tick(ctx))
		}
	}
}

// tick runs one refresh and returns how long to wait before the next
func (s *Svc) tick(ctx context.Context) time.Duration {
	_, err := s.Refresh(ctx)
	if err == nil || ctx.Err() != nil {
		return s.cfg.RefreshEvery
	}
	if perr.IsRetryable(err) && s.cfg.RetryBackoff < s.cfg.RefreshEvery {
		return s.cfg.RetryBackoff
	}
	return s.cfg.RefreshEvery
}
