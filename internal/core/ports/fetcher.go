package ports

import "context"

// Fetcher downloads remote files.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch downloads url to dest and returns dest.
	// The final path is only populated by a complete download.
	Fetch(ctx context.Context, url, dest string) (string, error)
}
