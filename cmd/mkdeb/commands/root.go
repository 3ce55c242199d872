// Package commands implements the CLI commands for mkdeb.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mkdeb/internal/app"
	"go.trai.ch/mkdeb/internal/build"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/zerr"
)

// Log formats accepted by --log-format.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// CLI represents the command line interface for mkdeb.
type CLI struct {
	app     Application
	log     ports.Logger
	rootCmd *cobra.Command

	configPath string
	logFormat  string
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Fetch(ctx context.Context, opts app.Options) error
	Status(ctx context.Context, opts app.Options, w io.Writer) error
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. log is switched to JSON
// output by --log-format json when it supports it.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mkdeb",
		Short:         "Build Debian packages and a local repository from an upstream tarball",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"Project file (default <src>/"+domain.ProjectFileName+" when present)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", LogFormatPretty, "Log format: pretty or json")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return c.applyLogFormat()
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) applyLogFormat() error {
	switch c.logFormat {
	case LogFormatPretty:
		return nil
	case LogFormatJSON:
		if s, ok := c.log.(jsonSwitcher); ok {
			s.SetJSON(true)
		}
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidUsage, "unknown log format"), "format", c.logFormat)
	}
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func usageError(err error) error {
	return zerr.Wrap(domain.ErrInvalidUsage, err.Error())
}
