package linear

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/adapters/detector"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// NodeID is the unique identifier for the step renderer Graft node.
const NodeID graft.ID = "adapter.renderer"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return NewRenderer(os.Stderr, detector.Interactive()), nil
		},
	})
}
