// Package app implements the application layer for mkdeb.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/mkdeb/internal/ui/style"
	"go.trai.ch/zerr"
)

// Orchestrator runs, downloads for, and plans package builds.
type Orchestrator interface {
	Run(ctx context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error)
	Fetch(ctx context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error)
	Plan(ctx context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator Orchestrator
	logger       ports.Logger
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orchestrator Orchestrator, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		orchestrator: orchestrator,
		logger:       log,
		getwd:        os.Getwd,
	}
}

// Options are the command line settings of a single invocation.
type Options struct {
	ConfigPath      string
	SourceDir       string
	OutputDir       string
	Distributions   []string
	Architectures   []string
	SkipBinaryBuild bool
	Strategy        string
}

// Build builds the requested distributions and architectures.
func (a *App) Build(ctx context.Context, opts Options) error {
	project, req, err := a.resolve(opts)
	if err != nil {
		return err
	}

	report, err := a.orchestrator.Run(ctx, project, req)
	a.summarize(report)
	if err != nil {
		return zerr.Wrap(err, "build failed")
	}
	return nil
}

// Fetch downloads the upstream tarball into the output directory.
func (a *App) Fetch(ctx context.Context, opts Options) error {
	project, req, err := a.resolve(opts)
	if err != nil {
		return err
	}

	if _, err := a.orchestrator.Fetch(ctx, project, req); err != nil {
		return zerr.Wrap(err, "fetch failed")
	}
	return nil
}

// Status writes the actions a build would take to w without taking them.
func (a *App) Status(ctx context.Context, opts Options, w io.Writer) error {
	project, req, err := a.resolve(opts)
	if err != nil {
		return err
	}

	report, err := a.orchestrator.Plan(ctx, project, req)
	if err != nil {
		return zerr.Wrap(err, "failed to plan build")
	}
	return RenderPlan(w, project, report)
}

// resolve turns the command line options into the project and the build request.
func (a *App) resolve(opts Options) (*domain.Project, domain.BuildRequest, error) {
	src := opts.SourceDir
	if src == "" {
		cwd, err := a.getwd()
		if err != nil {
			return nil, domain.BuildRequest{}, zerr.Wrap(err, "failed to get working directory")
		}
		src = cwd
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, domain.BuildRequest{}, zerr.With(zerr.Wrap(err, "failed to resolve source directory"), "path", src)
	}

	out := opts.OutputDir
	if out == "" {
		out = filepath.Join(src, domain.DefaultOutputDirName)
	}
	out, err = filepath.Abs(out)
	if err != nil {
		return nil, domain.BuildRequest{}, zerr.With(zerr.Wrap(err, "failed to resolve output directory"), "path", out)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = a.configLoader.Discover(src)
	}
	project, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, domain.BuildRequest{}, zerr.Wrap(err, "failed to load configuration")
	}

	distros, err := project.Distributions.Resolve("distribution", opts.Distributions)
	if err != nil {
		return nil, domain.BuildRequest{}, err
	}
	arches, err := project.Architectures.Resolve("architecture", opts.Architectures)
	if err != nil {
		return nil, domain.BuildRequest{}, err
	}
	strategy, err := domain.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, domain.BuildRequest{}, err
	}

	return project, domain.BuildRequest{
		Distributions:   distros,
		Architectures:   arches,
		SourceDir:       src,
		OutputDir:       out,
		SkipBinaryBuild: opts.SkipBinaryBuild,
		Strategy:        strategy,
	}, nil
}

func (a *App) summarize(report *domain.Report) {
	if report == nil || len(report.Actions) == 0 {
		return
	}
	if report.Rebuilds() == 0 {
		a.logger.Info("Everything up to date")
		return
	}
	a.logger.Info(fmt.Sprintf("Built %d artifacts, reused %d", report.Rebuilds(), report.Skipped()))
}

// RenderPlan writes a header naming the upstream release of project, then
// report as a table followed by a summary line.
func RenderPlan(w io.Writer, project *domain.Project, report *domain.Report) error {
	header := fmt.Sprintf("%s %s from %s", project.PackageName, project.UpstreamVersion, project.Repository)
	rows := make([][]string, 0, len(report.Actions))
	for _, act := range report.Actions {
		rows = append(rows, []string{string(act.Stage), act.Subject, actionLabel(act), string(act.Reason)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Border).
		Headers("STAGE", "ARTIFACT", "ACTION", "REASON").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style.Header
			case col != 2:
				return style.Cell
			case report.Actions[row].Performed:
				return style.Stale
			default:
				return style.Fresh
			}
		})

	summary := fmt.Sprintf("%d to build, %d up to date", report.Rebuilds(), report.Skipped())
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", style.Summary.Render(header), t.Render(), style.Summary.Render(summary))
	return err
}

func actionLabel(act domain.Action) string {
	switch {
	case !act.Performed:
		return "keep"
	case act.Stage.IsBuild():
		return "build"
	default:
		return "refresh"
	}
}
