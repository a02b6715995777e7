package main

import (
	"encoding/json"
	"time"

	"bridgewatch/internal/core/schedule"
	perr "bridgewatch/internal/platform/errors"
	"bridgewatch/internal/platform/logger"
	ptime "bridgewatch/internal/platform/time"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		src         sourceFlags
		now         string
		tz          string
		noRollover  bool
		maxDuration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract closures and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blocks, fx, err := src.load(cmd.Context())
			if err != nil {
				return err
			}

			loc, err := time.LoadLocation(tz)
			if err != nil {
				return perr.WithField(perr.InvalidArgf("unknown time zone %q", tz), "tz")
			}
			if fx != nil && fx.Location != nil && !cmd.Flags().Changed("tz") {
				loc = fx.Location
			}

			ref := time.Now().In(loc)
			switch {
			case now != "":
				if ref, err = ptime.ParseIn(now, loc); err != nil {
					return perr.WithField(err, "now")
				}
			case fx != nil && fx.Now != nil:
				ref = fx.Now.In(loc)
			}

			opts := schedule.DefaultOptions()
			opts.Rollover.Enabled = !noRollover
			opts.MaxDuration = maxDuration

			res := schedule.New(opts).Extract(blocks, ref)
			logger.Get().Debug().
				Int("blocks", len(blocks)).
				Int("intervals", len(res.Matches)).
				Int("diagnostics", len(res.Diagnostics)).
				Time("now", ref).
				Msg("parsed")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	src.bind(cmd, true)
	f := cmd.Flags()
	f.StringVar(&now, "now", "", "reference instant, RFC3339 or YYYY-MM-DD HH:MM (default: current time)")
	f.StringVar(&tz, "tz", "Europe/London", "IANA zone for dates written on the page")
	f.BoolVar(&noRollover, "no-rollover", false, "never move January dates read in December to next year")
	f.DurationVar(&maxDuration, "max-duration", schedule.DefaultMaxDuration, "reject intervals this long or longer")
	return cmd
}
