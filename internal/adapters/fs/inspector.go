package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactInspector = (*Inspector)(nil)

// Inspector reports whether artifacts exist and when they were last modified.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect stats path, following symlinks. A missing path yields Exists == false.
func (i *Inspector) Inspect(path string) (domain.ArtifactState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.ArtifactState{Path: path}, nil
		}
		return domain.ArtifactState{}, zerr.With(zerr.Wrap(domain.ErrArtifactInspect, err.Error()), "path", path)
	}
	return domain.ArtifactState{Path: path, Exists: true, ModTime: info.ModTime()}, nil
}
