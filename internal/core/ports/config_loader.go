package ports

import "go.trai.ch/mkdeb/internal/core/domain"

// ConfigLoader defines the interface for loading the project description.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Discover returns the project file inside srcDir, or "" when there is none.
	Discover(srcDir string) string
	// Load reads the project file at path.
	// An empty path returns domain.DefaultProject.
	Load(path string) (*domain.Project, error)
}
