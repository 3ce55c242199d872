package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mkdeb/internal/app"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the upstream tarball",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = c.configPath
			return c.app.Fetch(cmd.Context(), opts)
		},
	}
	bindDirFlags(cmd, &opts)
	return cmd
}
