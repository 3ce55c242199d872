package domain

import (
	"fmt"
	"path/filepath"
)

const (
	// MkdebDirName is the name of the tool's private directory inside the output directory.
	MkdebDirName = ".mkdeb"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// ProjectFileName is the name of the optional project file looked up in the source directory.
	ProjectFileName = "mkdeb.yaml"

	// DefaultOutputDirName is the output directory created below the source directory.
	DefaultOutputDirName = "work"

	// BinaryDirName is the per-distribution directory holding binary packages and the index.
	BinaryDirName = "binary"

	// DebianDirName is the packaging metadata directory of a source tree.
	DebianDirName = "debian"

	// ChangelogFileName is the name of the changelog inside the packaging metadata directory.
	ChangelogFileName = "changelog"

	// IndexBaseName is the base name of the package index file.
	IndexBaseName = "Packages"

	// TempSuffix is appended to files while they are being written.
	TempSuffix = ".tmp"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the build record store path relative to the output directory.
func DefaultStorePath() string {
	return filepath.Join(MkdebDirName, StoreDirName)
}

// Layout resolves every artifact path of a build from the output directory.
type Layout struct {
	Output       string
	BaseImageDir string
	Project      *Project
}

// NewLayout returns the layout of project under the output directory.
func NewLayout(output string, project *Project) Layout {
	return Layout{
		Output:       output,
		BaseImageDir: project.Builder.BaseImageDir,
		Project:      project,
	}
}

// TarballName returns the file name of the upstream tarball.
func (l Layout) TarballName() string {
	return fmt.Sprintf("%s_%s.orig.tar.gz", l.Project.PackageName, l.Project.UpstreamVersion)
}

// Tarball returns the path of the upstream tarball shared by all distributions.
func (l Layout) Tarball() string {
	return filepath.Join(l.Output, l.TarballName())
}

// WorkDir returns the working directory of a distribution.
func (l Layout) WorkDir(distro string) string {
	return filepath.Join(l.Output, distro)
}

// TarballLink returns the path of the tarball symlink inside a distribution's working directory.
func (l Layout) TarballLink(distro string) string {
	return filepath.Join(l.WorkDir(distro), l.TarballName())
}

// SourceTree returns the extracted upstream tree of a distribution.
func (l Layout) SourceTree(distro string) string {
	return filepath.Join(l.WorkDir(distro), l.Project.SourceTreeName())
}

// Changelog returns the translated changelog path inside the distribution's source tree.
func (l Layout) Changelog(distro string) string {
	return filepath.Join(l.SourceTree(distro), DebianDirName, ChangelogFileName)
}

// SourceDescriptor returns the path of the source package descriptor.
func (l Layout) SourceDescriptor(distro string, id PackageIdentity) string {
	return filepath.Join(l.WorkDir(distro), id.SourceDescriptor())
}

// BinaryDir returns the directory receiving binary packages of a distribution.
func (l Layout) BinaryDir(distro string) string {
	return filepath.Join(l.WorkDir(distro), BinaryDirName)
}

// BinaryPackage returns the path of the binary package for arch.
func (l Layout) BinaryPackage(distro, arch string, id PackageIdentity) string {
	return filepath.Join(l.BinaryDir(distro), id.BinaryPackage(arch))
}

// Index returns the path of the package index written in format.
func (l Layout) Index(distro string, format IndexFormat) string {
	return filepath.Join(l.BinaryDir(distro), format.FileName())
}

// BaseImage returns the path of the chroot base image for a distribution and architecture.
func (l Layout) BaseImage(distro, arch string) string {
	return filepath.Join(l.BaseImageDir, fmt.Sprintf("%s-%s-base.tgz", distro, arch))
}
