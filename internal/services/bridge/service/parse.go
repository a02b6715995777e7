package service

import (
	"context"
	"strings"
	"time"

	"bridgewatch/internal/adapters/ingest/page"
	"bridgewatch/internal/core/schedule"
	perr "bridgewatch/internal/platform/errors"
	pstrings "bridgewatch/internal/platform/strings"
	ptime "bridgewatch/internal/platform/time"
	"bridgewatch/internal/services/bridge/domain"
)

// Parse runs the engine over caller supplied HTML or blocks. Now defaults to the
// service clock and the zone to the configured one
func (s *Svc) Parse(ctx context.Context, in domain.ParseInput) (schedule.Result, error) {
	if err := ctx.Err(); err != nil {
		return schedule.Result{}, err
	}

	loc := s.cfg.Location
	if in.Timezone != "" {
		l, err := time.LoadLocation(in.Timezone)
		if err != nil {
			return schedule.Result{}, perr.WithField(perr.InvalidArgf("unknown time zone %q", in.Timezone), "timezone")
		}
		loc = l
	}

	now := s.now().In(loc)
	if in.Now != "" {
		t, err := ptime.ParseIn(in.Now, loc)
		if err != nil {
			return schedule.Result{}, perr.WithField(err, "now")
		}
		now = t
	}

	blocks := in.Blocks
	if in.HTML != "" {
		class := in.Class
		if class == "" {
			class = s.cfg.ContainerClass
		}
		var err error
		blocks, err = page.ExtractBlocks(strings.NewReader(in.HTML), class)
		if err != nil {
			return schedule.Result{}, err
		}
	}

	res := s.engine.Extract(blocks, now)
	s.log.Debug().
		Int("blocks", len(blocks)).
		Int("intervals", len(res.Matches)).
		Str("first_block", firstText(blocks)).
		Msg("ad hoc parse")
	return res, nil
}

func firstText(blocks []schedule.RawBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	return pstrings.Clip(blocks[0].Text, 60)
}
