// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mkdeb/internal/adapters/cas"
	_ "go.trai.ch/mkdeb/internal/adapters/changelog"
	_ "go.trai.ch/mkdeb/internal/adapters/config"
	_ "go.trai.ch/mkdeb/internal/adapters/debian"
	_ "go.trai.ch/mkdeb/internal/adapters/download"
	_ "go.trai.ch/mkdeb/internal/adapters/fs"
	_ "go.trai.ch/mkdeb/internal/adapters/linear"
	_ "go.trai.ch/mkdeb/internal/adapters/logger"
	_ "go.trai.ch/mkdeb/internal/adapters/shell"
	_ "go.trai.ch/mkdeb/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/mkdeb/internal/app"
	_ "go.trai.ch/mkdeb/internal/engine/pipeline"
	_ "go.trai.ch/mkdeb/internal/engine/staleness"
)
