// Package pipeline orchestrates the build of source and binary Debian packages.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/mkdeb/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// Pipeline runs the build steps of a project in order, skipping every step
// whose artifact is still current.
type Pipeline struct {
	toolchain ports.Toolchain
	fetcher   ports.Fetcher
	changelog ports.Changelog
	staleness *staleness.Engine
	tracer    ports.Tracer
	logger    ports.Logger
}

// NewPipeline creates a new Pipeline with the given dependencies.
func NewPipeline(
	toolchain ports.Toolchain,
	fetcher ports.Fetcher,
	changelog ports.Changelog,
	engine *staleness.Engine,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		toolchain: toolchain,
		fetcher:   fetcher,
		changelog: changelog,
		staleness: engine,
		tracer:    tracer,
		logger:    logger,
	}
}

// runState holds the state of a single run.
type runState struct {
	p       *Pipeline
	project *domain.Project
	req     domain.BuildRequest
	layout  domain.Layout
	report  *domain.Report
}

func (p *Pipeline) newRunState(project *domain.Project, req domain.BuildRequest) *runState {
	return &runState{
		p:       p,
		project: project,
		req:     req,
		layout:  domain.NewLayout(req.OutputDir, project),
		report:  &domain.Report{},
	}
}

// Run builds every requested distribution and architecture. The first failure
// aborts the run; artifacts built before it stay in place. The returned report
// lists the actions taken so far, also on failure.
func (p *Pipeline) Run(ctx context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	state := p.newRunState(project, req)

	if err := ensureDir(req.OutputDir); err != nil {
		return state.report, err
	}
	if err := state.acquireTarball(ctx); err != nil {
		return state.report, err
	}
	for _, distro := range req.Distributions {
		if err := state.buildFor(ctx, distro); err != nil {
			return state.report, err
		}
	}
	return state.report, nil
}

// Fetch downloads the upstream tarball unless it is already present.
func (p *Pipeline) Fetch(ctx context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	state := p.newRunState(project, req)
	if err := ensureDir(req.OutputDir); err != nil {
		return state.report, err
	}
	return state.report, state.acquireTarball(ctx)
}

func (s *runState) acquireTarball(ctx context.Context) error {
	tarball := s.layout.Tarball()
	d, err := s.p.staleness.Presence(tarball)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageFetch, s.subject(tarball), d)

	if !d.Rebuild {
		s.p.logger.Info("Already downloaded tarball")
		return nil
	}
	return s.step(ctx, "fetch "+s.layout.TarballName(), func(ctx context.Context) error {
		_, err := s.p.fetcher.Fetch(ctx, s.project.TarballURL(), tarball)
		return err
	})
}

func (s *runState) buildFor(ctx context.Context, distro string) (err error) {
	s.p.logger.Info(fmt.Sprintf("Building for %s", distro))

	ctx, span := s.p.tracer.Start(ctx, distro)
	span.SetAttribute("distribution", distro)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	workDir := s.layout.WorkDir(distro)
	if err := ensureDir(workDir); err != nil {
		return err
	}

	if err := s.extract(ctx, distro); err != nil {
		return err
	}
	if err := s.linkTarball(distro); err != nil {
		return err
	}

	tree := s.layout.SourceTree(distro)
	s.p.logger.Info("Syncing debian patches")
	if err := s.step(ctx, "sync debian metadata", func(ctx context.Context) error {
		return s.p.toolchain.SyncMetadata(ctx, s.req.SourceDir, tree)
	}); err != nil {
		return err
	}
	s.report.Add(domain.StageSync, s.subject(filepath.Join(tree, domain.DebianDirName)),
		domain.DecideAlways(filepath.Join(tree, domain.DebianDirName)))

	changelog := s.layout.Changelog(distro)
	if err := s.p.changelog.Translate(s.sourceChangelog(), changelog, s.project.Placeholder, distro); err != nil {
		return err
	}
	s.report.Add(domain.StageTranslate, s.subject(changelog), domain.DecideAlways(changelog))

	id, err := s.p.changelog.Identify(changelog)
	if err != nil {
		return err
	}
	if err := checkDistribution(id, distro); err != nil {
		return err
	}

	descriptor, err := s.buildSource(ctx, distro, id)
	if err != nil {
		return err
	}

	if s.req.SkipBinaryBuild {
		return nil
	}
	for _, arch := range s.req.Architectures {
		if err := s.buildArch(ctx, distro, arch, id, descriptor); err != nil {
			return err
		}
	}
	return nil
}

func (s *runState) extract(ctx context.Context, distro string) error {
	tree := s.layout.SourceTree(distro)
	d, err := s.p.staleness.Presence(tree)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageExtract, s.subject(tree), d)

	if !d.Rebuild {
		s.p.logger.Info("Already extracted tarball")
		return nil
	}
	s.p.logger.Info("Extracting tarball")
	return s.step(ctx, "extract tarball", func(ctx context.Context) error {
		return s.p.toolchain.Extract(ctx, s.layout.Tarball(), s.layout.WorkDir(distro))
	})
}

// linkTarball places a symlink to the shared tarball next to the source tree,
// which is where the source package build looks for it.
func (s *runState) linkTarball(distro string) error {
	link := s.layout.TarballLink(distro)
	d, err := planLink(link)
	if err != nil {
		return err
	}
	if d.Rebuild {
		if err := os.Symlink(s.layout.Tarball(), link); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrLinkFailed, err.Error()), "path", link)
		}
	}
	s.report.Add(domain.StageLink, s.subject(link), d)
	return nil
}

func (s *runState) buildSource(ctx context.Context, distro string, id domain.PackageIdentity) (string, error) {
	descriptor := s.layout.SourceDescriptor(distro, id)
	name := filepath.Base(descriptor)

	d, err := s.p.staleness.SourcePackage(descriptor)
	if err != nil {
		return "", err
	}
	s.report.Add(domain.StageSourcePackage, s.subject(descriptor), d)

	if !d.Rebuild {
		s.p.logger.Info(fmt.Sprintf("%s already built", name))
		return descriptor, nil
	}

	s.p.logger.Info(fmt.Sprintf("Creating %s", name))
	err = s.step(ctx, "source package "+name, func(ctx context.Context) error {
		return s.p.toolchain.BuildSource(ctx, domain.SourceBuild{
			Tree:       s.layout.SourceTree(distro),
			SigningKey: s.project.Builder.SigningKey,
			GPGProgram: s.project.Builder.GPGProgram,
		})
	})
	if err != nil {
		return "", err
	}

	missing, err := s.p.staleness.NeedsRebuild(descriptor, "")
	if err != nil {
		return "", err
	}
	if missing {
		return "", zerr.With(zerr.Wrap(domain.ErrArtifactMissing, "source package build did not produce a descriptor"), "path", descriptor)
	}
	return descriptor, nil
}

func (s *runState) buildArch(ctx context.Context, distro, arch string, id domain.PackageIdentity, descriptor string) error {
	baseImage := s.layout.BaseImage(distro, arch)
	baseName := filepath.Base(baseImage)

	d, err := s.p.staleness.BaseImage(baseImage)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageBaseImage, baseName, d)

	if d.Rebuild {
		s.p.logger.Info(fmt.Sprintf("Making %s", baseName))
		err := s.step(ctx, "base image "+baseName, func(ctx context.Context) error {
			return s.p.toolchain.CreateBaseImage(ctx, domain.BaseImageSpec{
				Distribution: distro,
				Architecture: arch,
				Path:         baseImage,
				Sudo:         s.project.Builder.Sudo,
			})
		})
		if err != nil {
			return err
		}
	} else {
		s.p.logger.Info(fmt.Sprintf("%s up to date", baseName))
	}

	binDir := s.layout.BinaryDir(distro)
	if err := ensureDir(binDir); err != nil {
		return err
	}

	pkg := s.layout.BinaryPackage(distro, arch, id)
	pkgName := filepath.Base(pkg)
	d, err = s.p.staleness.BinaryPackage(s.req.OutputDir, pkg, descriptor, s.req.Strategy)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageBinaryPackage, s.subject(pkg), d)

	switch d.Reason {
	case domain.ReasonMissing:
		s.p.logger.Info(fmt.Sprintf("Need to create %s", pkgName))
	case domain.ReasonUpToDate:
		s.p.logger.Info(fmt.Sprintf("%s is up to date", pkgName))
	default:
		s.p.logger.Info(fmt.Sprintf("%s is out of date", pkgName))
	}

	if d.Rebuild {
		err := s.step(ctx, "binary package "+pkgName, func(ctx context.Context) error {
			return s.p.toolchain.BuildBinary(ctx, domain.BinaryBuild{
				Descriptor:   descriptor,
				Distribution: distro,
				Architecture: arch,
				BaseImage:    baseImage,
				ResultDir:    binDir,
				Options:      s.project.Builder.BuildOptions,
				Sudo:         s.project.Builder.Sudo,
			})
		})
		if err != nil {
			return err
		}
		if err := s.p.staleness.Record(s.req.OutputDir, pkg, descriptor); err != nil {
			return err
		}
	}

	s.p.logger.Info("Writing out repository index")
	if err := s.step(ctx, "index "+distro+"/"+arch, func(ctx context.Context) error {
		return s.p.toolchain.WriteIndex(ctx, binDir, s.project.IndexFormats)
	}); err != nil {
		return err
	}
	s.report.Add(domain.StageIndex, s.subject(binDir), domain.DecideAlways(binDir))
	return nil
}

// step runs fn inside a span named name.
func (s *runState) step(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *runState) sourceChangelog() string {
	return filepath.Join(s.req.SourceDir, domain.DebianDirName, domain.ChangelogFileName)
}

// subject returns path relative to the output directory when it lies inside it.
func (s *runState) subject(path string) string {
	rel, err := filepath.Rel(s.req.OutputDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func checkDistribution(id domain.PackageIdentity, distro string) error {
	if id.Distribution == distro {
		return nil
	}
	err := zerr.Wrap(domain.ErrDistributionMismatch, fmt.Sprintf("%s != %s", distro, id.Distribution))
	err = zerr.With(err, "requested", distro)
	return zerr.With(err, "changelog", id.Distribution)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWorkspaceCreate, err.Error()), "path", path)
	}
	return nil
}
