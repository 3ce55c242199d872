package staleness

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/adapters/cas" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/adapters/fs"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/core/ports"
)

// NodeID is the unique identifier for the staleness engine Graft node.
const NodeID graft.ID = "engine.staleness"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.InspectorNodeID,
			fs.HasherNodeID,
			cas.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			inspector, err := graft.Dep[ports.ArtifactInspector](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(inspector, hasher, store), nil
		},
	})
}
