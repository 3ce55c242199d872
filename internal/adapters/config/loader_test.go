package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkdeb/internal/adapters/config"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	project, err := config.NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProject(), project)
}

func TestLoader_Load_Overrides(t *testing.T) {
	path := writeProjectFile(t, `
package: sway
upstream:
  version: 1.8.1
  url: https://example.com/sway-{version}.tar.gz
  tree: sway-{version}
changelog:
  placeholder: UNRELEASED
distributions:
  allowed: [focal, jammy]
architectures:
  allowed: [amd64, arm64]
  default: [amd64, arm64]
builder:
  baseImageDir: /srv/pbuilder
  signingKey: ""
  sudo: false
  buildOptions: [parallel=4, nocheck]
index:
  formats: [gz, xz]
`)

	project, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sway", project.PackageName)
	assert.Equal(t, "https://example.com/sway-1.8.1.tar.gz", project.TarballURL())
	assert.Equal(t, "sway-1.8.1", project.SourceTreeName())
	assert.Equal(t, "UNRELEASED", project.Placeholder)
	assert.Equal(t, []string{"focal", "jammy"}, project.Distributions.Allowed)
	assert.Equal(t, []string{"focal"}, project.Distributions.Default)
	assert.Equal(t, []string{"amd64", "arm64"}, project.Architectures.Default)
	assert.Equal(t, "/srv/pbuilder", project.Builder.BaseImageDir)
	assert.Empty(t, project.Builder.SigningKey)
	assert.Equal(t, domain.DefaultGPGProgram, project.Builder.GPGProgram)
	assert.False(t, project.Builder.Sudo)
	assert.Equal(t, []string{"parallel=4", "nocheck"}, project.Builder.BuildOptions)
	assert.Equal(t, []domain.IndexFormat{domain.IndexGzip, domain.IndexXZ}, project.IndexFormats)
	assert.Equal(t, domain.DefaultRepository, project.Repository)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	path := writeProjectFile(t, "")

	project, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProject(), project)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"invalid yaml", "package: [unterminated", domain.ErrConfigParse},
		{"unknown field", "pakage: typo\n", domain.ErrConfigParse},
		{"unknown index format", "index:\n  formats: [bz2]\n", domain.ErrInvalidIndexFormat},
		{"default outside allowed", "architectures:\n  allowed: [amd64]\n  default: [arm64]\n", domain.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProjectFile(t, tt.content)

			_, err := config.NewLoader().Load(path)
			require.ErrorIs(t, err, tt.wantErr)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, path, zErr.Metadata()["path"])
		})
	}
}

func TestLoader_Load_Missing(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigRead)
	assert.Equal(t, domain.ExitUsage, domain.ExitCode(err))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, config.NewLoader().Discover(dir))

	path := filepath.Join(dir, domain.ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("package: x\n"), domain.FilePerm))
	assert.Equal(t, path, config.NewLoader().Discover(dir))
}
