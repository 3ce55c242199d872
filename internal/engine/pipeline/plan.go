package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/zerr"
)

// Plan computes the decisions Run would take without running any tool or
// writing any file. The package identity is read from the source changelog.
func (p *Pipeline) Plan(_ context.Context, project *domain.Project, req domain.BuildRequest) (*domain.Report, error) {
	state := p.newRunState(project, req)

	tarball := state.layout.Tarball()
	d, err := p.staleness.Presence(tarball)
	if err != nil {
		return nil, err
	}
	state.report.Add(domain.StageFetch, state.subject(tarball), d)

	for _, distro := range req.Distributions {
		if err := state.planFor(distro); err != nil {
			return nil, err
		}
	}
	return state.report, nil
}

func (s *runState) planFor(distro string) error {
	tree := s.layout.SourceTree(distro)
	d, err := s.p.staleness.Presence(tree)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageExtract, s.subject(tree), d)

	link := s.layout.TarballLink(distro)
	linkDecision, err := planLink(link)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageLink, s.subject(link), linkDecision)

	metadata := filepath.Join(tree, domain.DebianDirName)
	s.report.Add(domain.StageSync, s.subject(metadata), domain.DecideAlways(metadata))
	changelog := s.layout.Changelog(distro)
	s.report.Add(domain.StageTranslate, s.subject(changelog), domain.DecideAlways(changelog))

	id, err := s.p.changelog.Identify(s.sourceChangelog())
	if err != nil {
		return err
	}
	if id.Distribution == s.project.Placeholder {
		id.Distribution = distro
	}
	if err := checkDistribution(id, distro); err != nil {
		return err
	}

	descriptor := s.layout.SourceDescriptor(distro, id)
	source, err := s.p.staleness.SourcePackage(descriptor)
	if err != nil {
		return err
	}
	s.report.Add(domain.StageSourcePackage, s.subject(descriptor), source)

	if s.req.SkipBinaryBuild {
		return nil
	}

	binDir := s.layout.BinaryDir(distro)
	for _, arch := range s.req.Architectures {
		baseImage := s.layout.BaseImage(distro, arch)
		base, err := s.p.staleness.BaseImage(baseImage)
		if err != nil {
			return err
		}
		s.report.Add(domain.StageBaseImage, filepath.Base(baseImage), base)

		pkg := s.layout.BinaryPackage(distro, arch, id)
		binary, err := s.planBinary(pkg, descriptor, source.Rebuild)
		if err != nil {
			return err
		}
		s.report.Add(domain.StageBinaryPackage, s.subject(pkg), binary)
		s.report.Add(domain.StageIndex, s.subject(binDir), domain.DecideAlways(binDir))
	}
	return nil
}

// planBinary decides the binary package, assuming a descriptor about to be
// rebuilt is newer than any existing package.
func (s *runState) planBinary(pkg, descriptor string, sourceRebuild bool) (domain.Decision, error) {
	if !sourceRebuild {
		return s.p.staleness.BinaryPackage(s.req.OutputDir, pkg, descriptor, s.req.Strategy)
	}
	d, err := s.p.staleness.Presence(pkg)
	if err != nil || d.Rebuild {
		return d, err
	}
	return domain.Decision{Artifact: pkg, Rebuild: true, Reason: domain.ReasonOutdated}, nil
}

func planLink(link string) (domain.Decision, error) {
	_, err := os.Lstat(link)
	switch {
	case err == nil:
		return domain.Decision{Artifact: link, Reason: domain.ReasonUpToDate}, nil
	case errors.Is(err, fs.ErrNotExist):
		return domain.Decision{Artifact: link, Rebuild: true, Reason: domain.ReasonMissing}, nil
	default:
		return domain.Decision{}, zerr.With(zerr.Wrap(domain.ErrLinkFailed, err.Error()), "path", link)
	}
}
