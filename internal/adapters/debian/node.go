package debian

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/adapters/shell"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewToolchain(executor, DefaultTools()), nil
		},
	})
}
