package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkdeb/internal/app"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeOrchestrator struct {
	report  *domain.Report
	err     error
	calls   []string
	project *domain.Project
	req     domain.BuildRequest
}

func (f *fakeOrchestrator) record(call string, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	f.calls = append(f.calls, call)
	f.project = project
	f.req = req
	return f.report, f.err
}

func (f *fakeOrchestrator) Run(_ context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	return f.record("run", project, req)
}

func (f *fakeOrchestrator) Fetch(_ context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	return f.record("fetch", project, req)
}

func (f *fakeOrchestrator) Plan(_ context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	return f.record("plan", project, req)
}

type appMocks struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	orch   *fakeOrchestrator
}

func newApp(t *testing.T, cwd string) (*app.App, appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		orch:   &fakeOrchestrator{report: &domain.Report{}},
	}
	a := app.New(m.loader, m.orch, m.logger)
	a.SetGetwd(func() (string, error) { return cwd, nil })
	return a, m
}

func builtReport() *domain.Report {
	r := &domain.Report{}
	r.Add(domain.StageFetch, "i3-wm_4.17.1.orig.tar.gz", domain.Decision{Reason: domain.ReasonUpToDate})
	r.Add(domain.StageSourcePackage, "bionic/i3-wm_4.17.1-1ubuntu3.dsc", domain.Decision{Rebuild: true, Reason: domain.ReasonMissing})
	r.Add(domain.StageBinaryPackage, "bionic/binary/i3-wm_4.17.1-1ubuntu3_amd64.deb", domain.Decision{Rebuild: true, Reason: domain.ReasonMissing})
	r.Add(domain.StageIndex, "bionic/binary", domain.DecideAlways("bionic/binary"))
	return r
}

func TestApp_Build_Defaults(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.orch.report = builtReport()

	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)
	m.logger.EXPECT().Info("Built 2 artifacts, reused 1")

	require.NoError(t, a.Build(context.Background(), app.Options{}))

	assert.Equal(t, []string{"run"}, m.orch.calls)
	assert.Equal(t, domain.BuildRequest{
		Distributions: []string{"bionic"},
		Architectures: []string{"amd64"},
		SourceDir:     cwd,
		OutputDir:     filepath.Join(cwd, "work"),
		Strategy:      domain.StrategyMTime,
	}, m.orch.req)
}

func TestApp_Build_ExplicitOptions(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	a, m := newApp(t, "/unused")

	m.loader.EXPECT().Load("/etc/mkdeb/sway.yaml").Return(domain.DefaultProject(), nil)
	m.logger.EXPECT().Info("Everything up to date")
	m.orch.report.Add(domain.StageFetch, "tarball", domain.Decision{Reason: domain.ReasonUpToDate})

	err := a.Build(context.Background(), app.Options{
		ConfigPath:      "/etc/mkdeb/sway.yaml",
		SourceDir:       src,
		OutputDir:       out,
		Distributions:   []string{"bionic", "bionic"},
		Architectures:   []string{"arm64", "amd64"},
		SkipBinaryBuild: true,
		Strategy:        "content",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BuildRequest{
		Distributions:   []string{"bionic"},
		Architectures:   []string{"arm64", "amd64"},
		SourceDir:       src,
		OutputDir:       out,
		SkipBinaryBuild: true,
		Strategy:        domain.StrategyContent,
	}, m.orch.req)
}

func TestApp_Build_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts app.Options
		want error
	}{
		{"unknown distribution", app.Options{Distributions: []string{"xenial"}}, domain.ErrInvalidSelection},
		{"unknown architecture", app.Options{Architectures: []string{"sparc"}}, domain.ErrInvalidSelection},
		{"unknown strategy", app.Options{Strategy: "checksum"}, domain.ErrInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			a, m := newApp(t, cwd)
			m.loader.EXPECT().Discover(cwd).Return("")
			m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)

			err := a.Build(context.Background(), tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.ExitUsage, domain.ExitCode(err))
			assert.Empty(t, m.orch.calls)
		})
	}
}

func TestApp_Build_ConfigError(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.loader.EXPECT().Discover(cwd).Return(filepath.Join(cwd, "mkdeb.yaml"))
	m.loader.EXPECT().Load(filepath.Join(cwd, "mkdeb.yaml")).Return(nil, domain.ErrConfigParse)

	err := a.Build(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrConfigParse)
	assert.Empty(t, m.orch.calls)
}

func TestApp_Build_FailureStillSummarizes(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.orch.report = builtReport()
	m.orch.err = errors.Join(domain.ErrSubprocessFailed, errors.New("exit status 1"))

	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)
	m.logger.EXPECT().Info("Built 2 artifacts, reused 1")

	err := a.Build(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrSubprocessFailed)
	assert.Equal(t, domain.ExitSubprocess, domain.ExitCode(err))
}

func TestApp_Fetch(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)

	require.NoError(t, a.Fetch(context.Background(), app.Options{}))
	assert.Equal(t, []string{"fetch"}, m.orch.calls)
	assert.Equal(t, filepath.Join(cwd, "work"), m.orch.req.OutputDir)
}

func TestApp_Fetch_TransferError(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.orch.err = domain.ErrTransferFailed
	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)

	err := a.Fetch(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrTransferFailed)
}

func TestApp_Status(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.orch.report = builtReport()
	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)

	var buf bytes.Buffer
	require.NoError(t, a.Status(context.Background(), app.Options{}, &buf))
	assert.Equal(t, []string{"plan"}, m.orch.calls)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "i3-wm 4.17.1 from https://github.com/cheshirekow/i3\n"), out)
	for _, want := range []string{
		"STAGE", "ARTIFACT", "ACTION", "REASON",
		"bionic/binary/i3-wm_4.17.1-1ubuntu3_amd64.deb",
		"build", "keep", "refresh",
		"always regenerated",
		"2 to build, 1 up to date",
	} {
		assert.Contains(t, out, want)
	}
}

func TestApp_Status_ConfiguredRepository(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	project := domain.DefaultProject()
	project.PackageName = "sway"
	project.UpstreamVersion = "1.4"
	project.Repository = "https://github.com/swaywm/sway"
	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(project, nil)

	var buf bytes.Buffer
	require.NoError(t, a.Status(context.Background(), app.Options{}, &buf))
	assert.Contains(t, buf.String(), "sway 1.4 from https://github.com/swaywm/sway\n")
}

func TestApp_Status_PlanError(t *testing.T) {
	cwd := t.TempDir()
	a, m := newApp(t, cwd)
	m.orch.err = domain.ErrDistributionMismatch
	m.loader.EXPECT().Discover(cwd).Return("")
	m.loader.EXPECT().Load("").Return(domain.DefaultProject(), nil)

	var buf bytes.Buffer
	err := a.Status(context.Background(), app.Options{}, &buf)
	require.ErrorIs(t, err, domain.ErrDistributionMismatch)
	assert.Empty(t, buf.String())
}
