// Package changelog rewrites and reads Debian changelog files.
package changelog

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/zerr"
)

// Translate copies r to w, replacing the placeholder distribution of every
// entry header with distro. Line endings are kept as they are.
func Translate(r io.Reader, w io.Writer, placeholder, distro string) error {
	translator := domain.NewChangelogTranslator(placeholder, distro)
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			body, ending := splitEnding(line)
			if _, err := io.WriteString(w, translator.Line(body)+ending); err != nil {
				return zerr.Wrap(domain.ErrChangelogWrite, err.Error())
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return zerr.Wrap(domain.ErrChangelogRead, readErr.Error())
		}
	}
}

// TranslateFile translates src into dst, creating the parent directory of dst.
func TranslateFile(src, dst, placeholder, distro string) error {
	//nolint:gosec // src is the project's own changelog
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrChangelogRead, err.Error()), "path", src)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrChangelogWrite, err.Error()), "path", dst)
	}
	//nolint:gosec // dst lives inside the output directory
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrChangelogWrite, err.Error()), "path", dst)
	}

	if err := Translate(in, out, placeholder, distro); err != nil {
		_ = out.Close()
		return zerr.With(err, "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrChangelogWrite, err.Error()), "path", dst)
	}
	return nil
}

// ParseFile reads the package identity from the first line of the changelog at path.
func ParseFile(path string) (domain.PackageIdentity, error) {
	//nolint:gosec // path is the translated changelog
	f, err := os.Open(path)
	if err != nil {
		return domain.PackageIdentity{}, zerr.With(zerr.Wrap(domain.ErrChangelogRead, err.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.PackageIdentity{}, zerr.With(zerr.Wrap(domain.ErrChangelogRead, err.Error()), "path", path)
	}
	body, _ := splitEnding(line)

	id, err := domain.ParseChangelogHeader(body)
	if err != nil {
		return domain.PackageIdentity{}, zerr.With(err, "path", path)
	}
	return id, nil
}

func splitEnding(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// Files implements ports.Changelog on the local filesystem.
type Files struct{}

// NewFiles creates a new Files.
func NewFiles() *Files {
	return &Files{}
}

// Translate implements ports.Changelog.
func (Files) Translate(src, dst, placeholder, distro string) error {
	return TranslateFile(src, dst, placeholder, distro)
}

// Identify implements ports.Changelog.
func (Files) Identify(path string) (domain.PackageIdentity, error) {
	return ParseFile(path)
}
