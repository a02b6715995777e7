package main

import (
	"bridgewatch/internal/adapters/ingest/fixture"

	"github.com/spf13/cobra"
)

// newBlocksCmd dumps the blocks of a page as a YAML fixture, for recording test pages
func newBlocksCmd() *cobra.Command {
	var (
		src  sourceFlags
		name string
	)
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Print the text blocks of a page as a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blocks, _, err := src.load(cmd.Context())
			if err != nil {
				return err
			}
			return fixture.Encode(cmd.OutOrStdout(), name, blocks)
		},
	}
	src.bind(cmd, false)
	cmd.Flags().StringVar(&name, "name", "", "fixture name")
	return cmd
}
