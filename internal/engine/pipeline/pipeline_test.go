package pipeline_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkdeb/internal/adapters/cas"
	"go.trai.ch/mkdeb/internal/adapters/changelog"
	"go.trai.ch/mkdeb/internal/adapters/debian"
	"go.trai.ch/mkdeb/internal/adapters/fs"
	"go.trai.ch/mkdeb/internal/adapters/telemetry"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/engine/pipeline"
	"go.trai.ch/mkdeb/internal/engine/staleness"
)

const (
	header     = "i3-wm (4.17.1-1ubuntu3) ubuntu; urgency=medium"
	descriptor = "i3-wm_4.17.1-1ubuntu3.dsc"
)

// fakeExecutor imitates the packaging tools by creating their artifacts.
type fakeExecutor struct {
	mu           sync.Mutex
	commands     []domain.Command
	skipDebuild  bool
	failPbuilder bool
}

func (f *fakeExecutor) Execute(_ context.Context, cmd domain.Command, stdout, _ io.Writer) error {
	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	// Strip the sudo and env wrappers around the tool.
	argv := append([]string{cmd.Name}, cmd.Args...)
	for len(argv) > 1 && (argv[0] == "sudo" || argv[0] == "env" || strings.Contains(argv[0], "=")) {
		argv = argv[1:]
	}
	name, args := argv[0], argv[1:]

	switch name {
	case "tar":
		return os.MkdirAll(filepath.Join(cmd.Dir, "i3-4.17.1", "debian"), domain.DirPerm)
	case "rsync":
		return os.MkdirAll(args[len(args)-1], domain.DirPerm)
	case "debuild":
		if f.skipDebuild {
			return nil
		}
		return touch(filepath.Join(filepath.Dir(cmd.Dir), descriptor))
	case "pbuilder":
		if f.failPbuilder {
			return fmt.Errorf("pbuilder exited with status 1: %w", domain.ErrSubprocessFailed)
		}
		if args[0] == "--create" {
			return touch(flagValue(args, "--basetgz"))
		}
		dsc := args[len(args)-1]
		pkg := strings.TrimSuffix(filepath.Base(dsc), ".dsc") + "_" + flagValue(args, "--architecture") + ".deb"
		return touch(filepath.Join(flagValue(args, "--buildresult"), pkg))
	case "dpkg-scanpackages":
		debs, err := filepath.Glob(filepath.Join(cmd.Dir, "*.deb"))
		if err != nil {
			return err
		}
		for _, deb := range debs {
			if _, err := fmt.Fprintf(stdout, "Filename: ./%s\n\n", filepath.Base(deb)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unexpected command %s", cmd)
	}
}

func (f *fakeExecutor) tools() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.commands))
	for _, c := range f.commands {
		names = append(names, c.Name)
	}
	return names
}

func (f *fakeExecutor) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = nil
}

type fakeFetcher struct {
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _, dest string) (string, error) {
	f.calls++
	return dest, os.WriteFile(dest, []byte("tarball"), domain.FilePerm)
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string) { l.record(msg) }
func (l *recordingLogger) Warn(msg string) { l.record(msg) }
func (l *recordingLogger) Error(err error) { l.record(err.Error()) }

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, msg)
}

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.lines, msg)
}

type fixture struct {
	pipeline *pipeline.Pipeline
	executor *fakeExecutor
	fetcher  *fakeFetcher
	logger   *recordingLogger
	project  *domain.Project
	req      domain.BuildRequest
}

func newFixture(t *testing.T, changelogHeader string) *fixture {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "debian"), domain.DirPerm))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "debian", "changelog"),
		[]byte(changelogHeader+"\n\n  * Packaging.\n"),
		domain.FilePerm,
	))

	project := domain.DefaultProject()
	project.Builder.BaseImageDir = filepath.Join(root, "pbuilder")
	require.NoError(t, os.MkdirAll(project.Builder.BaseImageDir, domain.DirPerm))

	executor := &fakeExecutor{}
	fetcher := &fakeFetcher{}
	logger := &recordingLogger{}
	provider := telemetry.NewProvider(nil)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	p := pipeline.NewPipeline(
		debian.NewToolchain(executor, debian.DefaultTools()),
		fetcher,
		changelog.NewFiles(),
		staleness.NewEngine(fs.NewInspector(), fs.NewHasher(), cas.NewStore()),
		telemetry.NewOTelTracer(provider),
		logger,
	)

	return &fixture{
		pipeline: p,
		executor: executor,
		fetcher:  fetcher,
		logger:   logger,
		project:  project,
		req: domain.BuildRequest{
			Distributions: []string{"bionic"},
			Architectures: []string{"amd64"},
			SourceDir:     src,
			OutputDir:     filepath.Join(root, "work"),
			Strategy:      domain.StrategyMTime,
		},
	}
}

func (f *fixture) run(t *testing.T) *domain.Report {
	t.Helper()
	f.executor.reset()
	report, err := f.pipeline.Run(context.Background(), f.project, f.req)
	require.NoError(t, err)
	return report
}

func (f *fixture) layout() domain.Layout {
	return domain.NewLayout(f.req.OutputDir, f.project)
}

func (f *fixture) binaryPackage(t *testing.T, arch string) string {
	t.Helper()
	id, err := domain.ParseChangelogHeader(strings.Replace(header, "ubuntu;", "bionic;", 1))
	require.NoError(t, err)
	return f.layout().BinaryPackage("bionic", arch, id)
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(filepath.Base(path)), domain.FilePerm)
}

func flagValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestPipeline_FirstRunBuildsEverything(t *testing.T) {
	f := newFixture(t, header)
	report := f.run(t)

	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, 5, report.Rebuilds())
	assert.Equal(t, 1, report.Performed(domain.StageIndex))
	assert.Equal(t, []string{"tar", "rsync", "debuild", "sudo", "sudo", "dpkg-scanpackages"}, f.executor.tools())

	layout := f.layout()
	link, err := os.Readlink(layout.TarballLink("bionic"))
	require.NoError(t, err)
	assert.Equal(t, layout.Tarball(), link)

	translated, err := os.ReadFile(layout.Changelog("bionic"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(translated), "i3-wm (4.17.1-1ubuntu3) bionic; urgency=medium\n"))

	assert.FileExists(t, f.binaryPackage(t, "amd64"))
	assert.Equal(t, "Filename: ./i3-wm_4.17.1-1ubuntu3_amd64.deb\n\n", readIndex(t, layout.Index("bionic", domain.IndexGzip)))

	for _, msg := range []string{
		"Building for bionic",
		"Extracting tarball",
		"Syncing debian patches",
		"Creating " + descriptor,
		"Making bionic-amd64-base.tgz",
		"Need to create i3-wm_4.17.1-1ubuntu3_amd64.deb",
		"Writing out repository index",
	} {
		assert.True(t, f.logger.has(msg), "missing log line %q", msg)
	}
}

func TestPipeline_SecondRunOnlyRefreshesIndex(t *testing.T) {
	f := newFixture(t, header)
	f.run(t)

	report := f.run(t)
	assert.Equal(t, 0, report.Rebuilds())
	assert.Equal(t, 1, report.Performed(domain.StageIndex))
	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, []string{"rsync", "dpkg-scanpackages"}, f.executor.tools())

	for _, msg := range []string{
		"Already downloaded tarball",
		"Already extracted tarball",
		descriptor + " already built",
		"bionic-amd64-base.tgz up to date",
		"i3-wm_4.17.1-1ubuntu3_amd64.deb is up to date",
	} {
		assert.True(t, f.logger.has(msg), "missing log line %q", msg)
	}
}

func TestPipeline_DeletedBinaryIsRebuiltAlone(t *testing.T) {
	f := newFixture(t, header)
	f.run(t)

	require.NoError(t, os.Remove(f.binaryPackage(t, "amd64")))

	report := f.run(t)
	assert.Equal(t, 1, report.Rebuilds())
	assert.Equal(t, 1, report.Performed(domain.StageBinaryPackage))
	assert.FileExists(t, f.binaryPackage(t, "amd64"))
}

func TestPipeline_NewerDescriptorRebuildsBinary(t *testing.T) {
	f := newFixture(t, header)
	f.run(t)

	dsc := filepath.Join(f.req.OutputDir, "bionic", descriptor)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(dsc, later, later))

	report := f.run(t)
	assert.Equal(t, 1, report.Performed(domain.StageBinaryPackage))
	assert.True(t, f.logger.has("i3-wm_4.17.1-1ubuntu3_amd64.deb is out of date"))
}

func TestPipeline_ContentStrategyIgnoresTouchedDescriptor(t *testing.T) {
	f := newFixture(t, header)
	f.req.Strategy = domain.StrategyContent
	f.run(t)

	dsc := filepath.Join(f.req.OutputDir, "bionic", descriptor)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(dsc, later, later))

	report := f.run(t)
	assert.Equal(t, 0, report.Rebuilds())
}

func TestPipeline_MultipleArchitectures(t *testing.T) {
	f := newFixture(t, header)
	f.req.Architectures = []string{"amd64", "arm64"}

	report := f.run(t)
	assert.Equal(t, 2, report.Performed(domain.StageBaseImage))
	assert.Equal(t, 2, report.Performed(domain.StageBinaryPackage))
	assert.Equal(t, 2, report.Performed(domain.StageIndex))
	assert.FileExists(t, f.binaryPackage(t, "arm64"))
	assert.Equal(t,
		"Filename: ./i3-wm_4.17.1-1ubuntu3_amd64.deb\n\nFilename: ./i3-wm_4.17.1-1ubuntu3_arm64.deb\n\n",
		readIndex(t, f.layout().Index("bionic", domain.IndexGzip)),
	)
}

func TestPipeline_SkipBinaryBuild(t *testing.T) {
	f := newFixture(t, header)
	f.req.SkipBinaryBuild = true

	report := f.run(t)
	assert.Equal(t, 0, report.Performed(domain.StageBinaryPackage))
	assert.Equal(t, 1, report.Performed(domain.StageSourcePackage))
	assert.NotContains(t, f.executor.tools(), "sudo")
	assert.NoDirExists(t, f.layout().BinaryDir("bionic"))
}

func TestPipeline_DistributionMismatch(t *testing.T) {
	f := newFixture(t, "i3-wm (4.17.1-1ubuntu3) xenial; urgency=medium")

	_, err := f.pipeline.Run(context.Background(), f.project, f.req)
	require.ErrorIs(t, err, domain.ErrDistributionMismatch)
	assert.Equal(t, domain.ExitMismatch, domain.ExitCode(err))
	assert.NotContains(t, f.executor.tools(), "debuild")
}

func TestPipeline_UnparsableChangelog(t *testing.T) {
	f := newFixture(t, "not a changelog")

	_, err := f.pipeline.Run(context.Background(), f.project, f.req)
	require.ErrorIs(t, err, domain.ErrChangelogParse)
}

func TestPipeline_MissingDescriptor(t *testing.T) {
	f := newFixture(t, header)
	f.executor.skipDebuild = true

	_, err := f.pipeline.Run(context.Background(), f.project, f.req)
	require.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestPipeline_FailureAbortsRun(t *testing.T) {
	f := newFixture(t, header)
	f.executor.failPbuilder = true

	report, err := f.pipeline.Run(context.Background(), f.project, f.req)
	require.ErrorIs(t, err, domain.ErrSubprocessFailed)
	assert.Equal(t, 0, report.Performed(domain.StageIndex))
	assert.FileExists(t, filepath.Join(f.req.OutputDir, "bionic", descriptor))
}

func TestPipeline_Fetch(t *testing.T) {
	f := newFixture(t, header)

	report, err := f.pipeline.Fetch(context.Background(), f.project, f.req)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Performed(domain.StageFetch))

	report, err = f.pipeline.Fetch(context.Background(), f.project, f.req)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Performed(domain.StageFetch))
	assert.Equal(t, 1, f.fetcher.calls)
	assert.Empty(t, f.executor.tools())
}

func TestPipeline_Plan(t *testing.T) {
	f := newFixture(t, header)

	plan, err := f.pipeline.Plan(context.Background(), f.project, f.req)
	require.NoError(t, err)
	assert.Equal(t, 5, plan.Rebuilds())
	assert.Empty(t, f.executor.tools())
	assert.NoDirExists(t, f.req.OutputDir)

	f.run(t)
	plan, err = f.pipeline.Plan(context.Background(), f.project, f.req)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Rebuilds())

	require.NoError(t, os.Remove(filepath.Join(f.req.OutputDir, "bionic", descriptor)))
	plan, err = f.pipeline.Plan(context.Background(), f.project, f.req)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Performed(domain.StageSourcePackage))
	assert.Equal(t, 1, plan.Performed(domain.StageBinaryPackage))
}

func TestPipeline_PlanMismatch(t *testing.T) {
	f := newFixture(t, "i3-wm (4.17.1-1ubuntu3) xenial; urgency=medium")

	_, err := f.pipeline.Plan(context.Background(), f.project, f.req)
	require.ErrorIs(t, err, domain.ErrDistributionMismatch)
}

func readIndex(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r, err := pgzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}
