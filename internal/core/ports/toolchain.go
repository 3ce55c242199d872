package ports

import (
	"context"

	"go.trai.ch/mkdeb/internal/core/domain"
)

// Toolchain drives the Debian packaging tools.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Extract unpacks tarball inside dir.
	Extract(ctx context.Context, tarball, dir string) error

	// SyncMetadata mirrors the debian/ directory of src into the debian/ directory of tree.
	SyncMetadata(ctx context.Context, src, tree string) error

	// CreateBaseImage creates a chroot base image.
	CreateBaseImage(ctx context.Context, spec domain.BaseImageSpec) error

	// BuildSource builds a source package from an extracted tree.
	// The descriptor is written next to the tree.
	BuildSource(ctx context.Context, build domain.SourceBuild) error

	// BuildBinary builds a binary package from a source descriptor inside a chroot.
	BuildBinary(ctx context.Context, build domain.BinaryBuild) error

	// WriteIndex regenerates the package index of dir in every requested format.
	WriteIndex(ctx context.Context, dir string, formats []domain.IndexFormat) error
}
