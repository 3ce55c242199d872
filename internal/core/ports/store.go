package ports

import "go.trai.ch/mkdeb/internal/core/domain"

// BuildRecordStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the record of an artifact below root.
	// Returns nil, nil if not found.
	Get(root, artifact string) (*domain.BuildRecord, error)

	// Put stores the record below root.
	Put(root string, record domain.BuildRecord) error
}
