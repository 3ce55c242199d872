package domain

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// changelogHeader matches the first line of a Debian changelog:
// "name (upstream-local) distribution; urgency=level".
var changelogHeader = regexp.MustCompile(`^(\S+) \(([\d.]+)-(\S+)\) (\S+); urgency=\S+`)

// PackageIdentity is the name and version of a package as declared by its changelog.
type PackageIdentity struct {
	Name            string
	UpstreamVersion string
	LocalVersion    string
	Distribution    string
}

// ParseChangelogHeader extracts the package identity from the first changelog line.
func ParseChangelogHeader(line string) (PackageIdentity, error) {
	m := changelogHeader.FindStringSubmatch(line)
	if m == nil {
		return PackageIdentity{}, zerr.With(zerr.Wrap(ErrChangelogParse, "unrecognized changelog header"), "line", line)
	}
	return PackageIdentity{
		Name:            m[1],
		UpstreamVersion: m[2],
		LocalVersion:    m[3],
		Distribution:    m[4],
	}, nil
}

// Version returns the full Debian version, "<upstream>-<local>".
func (p PackageIdentity) Version() string {
	return p.UpstreamVersion + "-" + p.LocalVersion
}

// SourceDescriptor returns the file name of the source package descriptor.
func (p PackageIdentity) SourceDescriptor() string {
	return fmt.Sprintf("%s_%s.dsc", p.Name, p.Version())
}

// BinaryPackage returns the file name of the binary package built for arch.
func (p PackageIdentity) BinaryPackage(arch string) string {
	return fmt.Sprintf("%s_%s_%s.deb", p.Name, p.Version(), arch)
}

// String implements fmt.Stringer.
func (p PackageIdentity) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Version(), p.Distribution)
}

// ChangelogTranslator rewrites the placeholder distribution of changelog entries.
type ChangelogTranslator struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewChangelogTranslator returns a translator replacing placeholder with distro.
func NewChangelogTranslator(placeholder, distro string) *ChangelogTranslator {
	return &ChangelogTranslator{
		pattern:     regexp.MustCompile(`(\S+ \([\d.]+-\S+\) )` + regexp.QuoteMeta(placeholder) + `(; urgency=\S+)`),
		replacement: "${1}" + strings.ReplaceAll(distro, "$", "$$") + "${2}",
	}
}

// Line translates one changelog line. Lines without an entry header are returned unchanged.
func (t *ChangelogTranslator) Line(line string) string {
	return t.pattern.ReplaceAllString(line, t.replacement)
}

// TranslateChangelogLine replaces placeholder with distro in a single changelog line.
func TranslateChangelogLine(line, placeholder, distro string) string {
	return NewChangelogTranslator(placeholder, distro).Line(line)
}
