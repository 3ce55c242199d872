package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mkdeb/internal/app"
	"go.trai.ch/mkdeb/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build source and binary packages and the repository index",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = c.configPath
			return c.app.Build(cmd.Context(), opts)
		},
	}
	bindDirFlags(cmd, &opts)
	bindSelectionFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.SkipBinaryBuild, "skip-build", false, "Stop after the source package of each distribution")
	return cmd
}

// bindDirFlags registers the source and output directory flags.
func bindDirFlags(cmd *cobra.Command, opts *app.Options) {
	cmd.Flags().StringVar(&opts.SourceDir, "src", "", "Directory holding the debian/ packaging metadata (default: current directory)")
	cmd.Flags().StringVar(&opts.OutputDir, "out", "", "Output directory (default: <src>/"+domain.DefaultOutputDirName+")")
}

// bindSelectionFlags registers the distribution, architecture and staleness flags.
func bindSelectionFlags(cmd *cobra.Command, opts *app.Options) {
	cmd.Flags().StringSliceVarP(&opts.Distributions, "distro", "d", nil, "Distributions to build for (repeatable or comma separated)")
	cmd.Flags().StringSliceVarP(&opts.Architectures, "arch", "a", nil, "Architectures to build for (repeatable or comma separated)")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", string(domain.StrategyMTime), "Binary package staleness check: mtime or content")
}
