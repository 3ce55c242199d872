package ports

import "go.trai.ch/mkdeb/internal/core/domain"

// ArtifactInspector reports the on-disk state of artifacts.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type ArtifactInspector interface {
	// Inspect returns the state of path. A missing path is not an error.
	Inspect(path string) (domain.ArtifactState, error)
}

// Hasher computes file digests.
type Hasher interface {
	// HashFile returns the hex digest of the file contents.
	HashFile(path string) (string, error)
}
