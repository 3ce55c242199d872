package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkdeb/internal/adapters/changelog" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/adapters/debian"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/adapters/download"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/mkdeb/internal/engine/staleness"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			debian.NodeID,
			download.NodeID,
			changelog.NodeID,
			staleness.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			files, err := graft.Dep[ports.Changelog](ctx)
			if err != nil {
				return nil, err
			}

			engine, err := graft.Dep[*staleness.Engine](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(toolchain, fetcher, files, engine, tracer, log), nil
		},
	})
}
