package ports

import "go.trai.ch/mkdeb/internal/core/domain"

// Changelog translates and reads Debian changelogs.
//
//go:generate mockgen -source=changelog.go -destination=mocks/mock_changelog.go -package=mocks
type Changelog interface {
	// Translate writes src to dst with the placeholder distribution of every
	// entry header replaced by distro.
	Translate(src, dst, placeholder, distro string) error

	// Identify returns the package identity declared by the first line of the changelog at path.
	Identify(path string) (domain.PackageIdentity, error)
}
