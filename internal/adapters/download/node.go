package download

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/adapters/detector"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Fetcher, error) {
			return NewFetcher(os.Stderr, detector.Interactive()), nil
		},
	})
}
