package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/core/ports"
)

const (
	// InspectorNodeID is the unique identifier for the artifact inspector Graft node.
	InspectorNodeID graft.ID = "adapter.fs.inspector"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.ArtifactInspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactInspector, error) {
			return NewInspector(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
