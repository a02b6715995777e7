package main

import (
	"bytes"
	"context"
	"os"
	"time"

	"bridgewatch/internal/adapters/ingest/fixture"
	"bridgewatch/internal/adapters/ingest/page"
	"bridgewatch/internal/core/schedule"
	perr "bridgewatch/internal/platform/errors"

	"github.com/spf13/cobra"
)

// sourceFlags pick where blocks come from. Exactly one is set
type sourceFlags struct {
	file    string
	url     string
	blocks  string
	class   string
	timeout time.Duration
}

func (s *sourceFlags) bind(cmd *cobra.Command, withBlocks bool) {
	f := cmd.Flags()
	f.StringVar(&s.file, "file", "", "saved announcement page (HTML)")
	f.StringVar(&s.url, "url", "", "fetch the announcement page from this URL")
	f.StringVar(&s.class, "class", "newsflash__padding", "CSS class of the element holding the announcement")
	f.DurationVar(&s.timeout, "timeout", 15*time.Second, "fetch timeout for --url")
	sources := []string{"file", "url"}
	if withBlocks {
		f.StringVar(&s.blocks, "blocks", "", "YAML block fixture")
		sources = append(sources, "blocks")
	}
	cmd.MarkFlagsMutuallyExclusive(sources...)
	cmd.MarkFlagsOneRequired(sources...)
}

// load returns the blocks plus the fixture when one was read
func (s *sourceFlags) load(ctx context.Context) ([]schedule.RawBlock, *fixture.Fixture, error) {
	switch {
	case s.blocks != "":
		fx, err := fixture.Load(s.blocks)
		if err != nil {
			return nil, nil, err
		}
		return fx.Blocks, &fx, nil
	case s.url != "":
		body, err := page.NewFetcher(s.timeout).Fetch(ctx, s.url)
		if err != nil {
			return nil, nil, err
		}
		blocks, err := page.ExtractBlocks(bytes.NewReader(body), s.class)
		return blocks, nil, err
	default:
		body, err := os.ReadFile(s.file)
		if err != nil {
			return nil, nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read page %s", s.file)
		}
		blocks, err := page.ExtractBlocks(bytes.NewReader(body), s.class)
		return blocks, nil, err
	}
}
