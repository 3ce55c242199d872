package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mkdeb/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which artifacts a build would create without building",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = c.configPath
			return c.app.Status(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	bindDirFlags(cmd, &opts)
	bindSelectionFlags(cmd, &opts)
	return cmd
}
