package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRoot(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "bridgewatch",
		Short:         "Read Renfrew Bridge closure announcements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newParseCmd(), newBlocksCmd(), newVersionCmd())
	return root
}
