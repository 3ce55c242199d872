// Package config provides the project file loader for mkdeb.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Discover returns the project file of srcDir, or "" when it has none.
func (l *Loader) Discover(srcDir string) string {
	path := filepath.Join(srcDir, domain.ProjectFileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// Load reads the project file at path and overlays it on the defaults.
// An empty path returns the defaults.
func (l *Loader) Load(path string) (*domain.Project, error) {
	if path == "" {
		return domain.DefaultProject(), nil
	}

	//nolint:gosec // path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigRead, "project file not found"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigRead, err.Error()), "path", path)
	}

	var file Projectfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParse, err.Error()), "path", path)
	}

	project, err := toDomain(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := project.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return project, nil
}

func toDomain(file *Projectfile) (*domain.Project, error) {
	p := domain.DefaultProject()

	setString(&p.PackageName, file.Package)
	setString(&p.UpstreamVersion, file.Upstream.Version)
	setString(&p.SourceURL, file.Upstream.URL)
	setString(&p.SourceTree, file.Upstream.Tree)
	setString(&p.Repository, file.Upstream.Repository)
	setString(&p.Placeholder, file.Changelog.Placeholder)

	if file.Distributions != nil {
		p.Distributions = toSelection(file.Distributions)
	}
	if file.Architectures != nil {
		p.Architectures = toSelection(file.Architectures)
	}

	setString(&p.Builder.BaseImageDir, file.Builder.BaseImageDir)
	setString(&p.Builder.GPGProgram, file.Builder.GPG)
	if file.Builder.SigningKey != nil {
		p.Builder.SigningKey = *file.Builder.SigningKey
	}
	if file.Builder.Sudo != nil {
		p.Builder.Sudo = *file.Builder.Sudo
	}
	if file.Builder.BuildOptions != nil {
		p.Builder.BuildOptions = file.Builder.BuildOptions
	}

	if len(file.Index.Formats) > 0 {
		p.IndexFormats = p.IndexFormats[:0]
		for _, name := range file.Index.Formats {
			format, err := domain.ParseIndexFormat(name)
			if err != nil {
				return nil, err
			}
			p.IndexFormats = append(p.IndexFormats, format)
		}
	}

	return p, nil
}

// toSelection keeps the first allowed value as default when none is given.
func toSelection(dto *SelectionDTO) domain.Selection {
	sel := domain.Selection{Allowed: dto.Allowed, Default: dto.Default}
	if len(sel.Default) == 0 && len(sel.Allowed) > 0 {
		sel.Default = sel.Allowed[:1]
	}
	return sel
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
