package changelog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// NodeID is the unique identifier for the changelog Graft node.
const NodeID graft.ID = "adapter.changelog"

func init() {
	graft.Register(graft.Node[ports.Changelog]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Changelog, error) {
			return NewFiles(), nil
		},
	})
}
