// Package debian drives the Debian packaging tools through an executor.
package debian

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// Tools names the external programs used by the Toolchain.
type Tools struct {
	Tar          string
	Rsync        string
	Pbuilder     string
	Debuild      string
	ScanPackages string
	Sudo         string
	Env          string
}

// DefaultTools returns the program names looked up on PATH.
func DefaultTools() Tools {
	return Tools{
		Tar:          "tar",
		Rsync:        "rsync",
		Pbuilder:     "pbuilder",
		Debuild:      "debuild",
		ScanPackages: "dpkg-scanpackages",
		Sudo:         "sudo",
		Env:          "env",
	}
}

// Toolchain implements ports.Toolchain.
type Toolchain struct {
	executor ports.Executor
	tools    Tools
}

// NewToolchain creates a Toolchain running tools through executor.
func NewToolchain(executor ports.Executor, tools Tools) *Toolchain {
	return &Toolchain{executor: executor, tools: tools}
}

// Extract unpacks tarball inside dir.
func (t *Toolchain) Extract(ctx context.Context, tarball, dir string) error {
	return t.run(ctx, domain.Command{
		Name: t.tools.Tar,
		Args: []string{"xf", tarball},
		Dir:  dir,
	})
}

// SyncMetadata mirrors src/debian/ into tree/debian/.
func (t *Toolchain) SyncMetadata(ctx context.Context, src, tree string) error {
	return t.run(ctx, domain.Command{
		Name: t.tools.Rsync,
		Args: []string{
			"-a",
			filepath.Join(src, domain.DebianDirName) + "/",
			filepath.Join(tree, domain.DebianDirName) + "/",
		},
	})
}

// CreateBaseImage creates the pbuilder base image described by spec.
func (t *Toolchain) CreateBaseImage(ctx context.Context, spec domain.BaseImageSpec) error {
	return t.run(ctx, t.privileged(spec.Sudo, domain.Command{
		Name: t.tools.Pbuilder,
		Args: []string{
			"--create",
			"--distribution", spec.Distribution,
			"--architecture", spec.Architecture,
			"--basetgz", spec.Path,
		},
	}))
}

// BuildSource runs debuild in the tree. The descriptor lands next to the tree.
func (t *Toolchain) BuildSource(ctx context.Context, build domain.SourceBuild) error {
	args := []string{"-S", "-sa"}
	if build.SigningKey == "" {
		args = append(args, "-us", "-uc")
	} else {
		args = append(args, "-p"+build.GPGProgram, "-k"+build.SigningKey)
	}
	return t.run(ctx, domain.Command{
		Name: t.tools.Debuild,
		Args: args,
		Dir:  build.Tree,
	})
}

// BuildBinary builds the descriptor inside the base image chroot.
func (t *Toolchain) BuildBinary(ctx context.Context, build domain.BinaryBuild) error {
	cmd := domain.Command{
		Name: t.tools.Env,
		Args: []string{
			"DEB_BUILD_OPTIONS=" + strings.Join(build.Options, " "),
			t.tools.Pbuilder,
			"--build",
			"--distribution", build.Distribution,
			"--architecture", build.Architecture,
			"--basetgz", build.BaseImage,
			"--buildresult", build.ResultDir,
			build.Descriptor,
		},
		Dir: filepath.Dir(build.Descriptor),
	}
	return t.run(ctx, t.privileged(build.Sudo, cmd))
}

// privileged prefixes cmd with sudo when requested.
func (t *Toolchain) privileged(sudo bool, cmd domain.Command) domain.Command {
	if !sudo {
		return cmd
	}
	return domain.Command{
		Name: t.tools.Sudo,
		Args: append([]string{cmd.Name}, cmd.Args...),
		Dir:  cmd.Dir,
		Env:  cmd.Env,
	}
}

func (t *Toolchain) run(ctx context.Context, cmd domain.Command) error {
	return t.executor.Execute(ctx, cmd, nil, nil)
}
