package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// VersionToken is substituted with the upstream version in URL and tree templates.
const VersionToken = "{version}"

// Default project values, matching the i3 packaging this tool was written for.
const (
	DefaultPackageName     = "i3-wm"
	DefaultUpstreamVersion = "4.17.1"
	DefaultSourceURL       = "https://github.com/i3/i3/archive/" + VersionToken + ".tar.gz"
	DefaultSourceTree      = "i3-" + VersionToken
	DefaultRepository      = "https://github.com/cheshirekow/i3"
	DefaultPlaceholder     = "ubuntu"
	DefaultBaseImageDir    = "/var/cache/pbuilder"
	DefaultSigningKey      = "6A8A4FAF"
	DefaultGPGProgram      = "gpg2"
)

// Selection is a set of allowed values and the subset used when none is requested.
type Selection struct {
	Allowed []string
	Default []string
}

// Resolve validates requested against the allowed values, falling back to the defaults.
// Duplicates are dropped and the request order is kept.
func (s Selection) Resolve(kind string, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return slices.Clone(s.Default), nil
	}

	resolved := make([]string, 0, len(requested))
	for _, value := range requested {
		if !slices.Contains(s.Allowed, value) {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(ErrInvalidSelection, fmt.Sprintf("unknown %s %q", kind, value)), "allowed", strings.Join(s.Allowed, ", ")),
				kind, value,
			)
		}
		if !slices.Contains(resolved, value) {
			resolved = append(resolved, value)
		}
	}
	return resolved, nil
}

// Builder holds the settings passed to the packaging tools.
type Builder struct {
	BaseImageDir string
	SigningKey   string
	GPGProgram   string
	Sudo         bool
	BuildOptions []string
}

// Project describes the upstream release being packaged and how to package it.
type Project struct {
	PackageName     string
	UpstreamVersion string
	SourceURL       string
	SourceTree      string
	Repository      string
	Placeholder     string
	Distributions   Selection
	Architectures   Selection
	Builder         Builder
	IndexFormats    []IndexFormat
}

// DefaultProject returns the project used when no project file is present.
func DefaultProject() *Project {
	return &Project{
		PackageName:     DefaultPackageName,
		UpstreamVersion: DefaultUpstreamVersion,
		SourceURL:       DefaultSourceURL,
		SourceTree:      DefaultSourceTree,
		Repository:      DefaultRepository,
		Placeholder:     DefaultPlaceholder,
		Distributions: Selection{
			Allowed: []string{"bionic"},
			Default: []string{"bionic"},
		},
		Architectures: Selection{
			Allowed: []string{"i386", "amd64", "armhf", "arm64"},
			Default: []string{"amd64"},
		},
		Builder: Builder{
			BaseImageDir: DefaultBaseImageDir,
			SigningKey:   DefaultSigningKey,
			GPGProgram:   DefaultGPGProgram,
			Sudo:         true,
			BuildOptions: []string{"parallel=8"},
		},
		IndexFormats: []IndexFormat{IndexGzip},
	}
}

// TarballURL returns the download URL of the upstream tarball.
func (p *Project) TarballURL() string {
	return strings.ReplaceAll(p.SourceURL, VersionToken, p.UpstreamVersion)
}

// SourceTreeName returns the name of the directory the tarball extracts to.
func (p *Project) SourceTreeName() string {
	return strings.ReplaceAll(p.SourceTree, VersionToken, p.UpstreamVersion)
}

// Validate reports the first missing or inconsistent value of the project.
func (p *Project) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"package", p.PackageName},
		{"upstream.version", p.UpstreamVersion},
		{"upstream.url", p.SourceURL},
		{"upstream.tree", p.SourceTree},
		{"changelog.placeholder", p.Placeholder},
		{"builder.baseImageDir", p.Builder.BaseImageDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return zerr.With(zerr.Wrap(ErrConfigInvalid, "missing required field"), "field", r.field)
		}
	}

	if strings.ContainsAny(p.SourceTreeName(), `/\`) {
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "source tree must be a single directory name"), "tree", p.SourceTreeName())
	}

	for kind, sel := range map[string]Selection{"distribution": p.Distributions, "architecture": p.Architectures} {
		if len(sel.Allowed) == 0 {
			return zerr.With(zerr.Wrap(ErrConfigInvalid, "no allowed values"), "selection", kind)
		}
		for _, d := range sel.Default {
			if !slices.Contains(sel.Allowed, d) {
				return zerr.With(zerr.With(zerr.Wrap(ErrConfigInvalid, "default is not an allowed value"), "selection", kind), "value", d)
			}
		}
	}

	if len(p.IndexFormats) == 0 {
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "no index formats"), "field", "index.formats")
	}
	return nil
}

// IndexFormat is a compression format for the package index.
type IndexFormat string

const (
	// IndexGzip writes Packages.gz.
	IndexGzip IndexFormat = "gz"
	// IndexXZ writes Packages.xz.
	IndexXZ IndexFormat = "xz"
)

// ParseIndexFormat converts a configured format name.
func ParseIndexFormat(s string) (IndexFormat, error) {
	switch IndexFormat(s) {
	case IndexGzip, IndexXZ:
		return IndexFormat(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidIndexFormat, "unknown index format"), "format", s)
	}
}

// FileName returns the index file name for the format.
func (f IndexFormat) FileName() string {
	return IndexBaseName + "." + string(f)
}
