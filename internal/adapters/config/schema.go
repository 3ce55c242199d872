package config

// Projectfile represents the structure of the mkdeb.yaml project file.
// Every field is optional; unset fields keep the built-in defaults.
type Projectfile struct {
	Package       string        `yaml:"package"`
	Upstream      UpstreamDTO   `yaml:"upstream"`
	Changelog     ChangelogDTO  `yaml:"changelog"`
	Distributions *SelectionDTO `yaml:"distributions"`
	Architectures *SelectionDTO `yaml:"architectures"`
	Builder       BuilderDTO    `yaml:"builder"`
	Index         IndexDTO      `yaml:"index"`
}

// UpstreamDTO describes where the upstream release comes from.
type UpstreamDTO struct {
	Version    string `yaml:"version"`
	URL        string `yaml:"url"`
	Tree       string `yaml:"tree"`
	Repository string `yaml:"repository"`
}

// ChangelogDTO configures changelog translation.
type ChangelogDTO struct {
	Placeholder string `yaml:"placeholder"`
}

// SelectionDTO lists the allowed values and the defaults of a selection.
type SelectionDTO struct {
	Allowed []string `yaml:"allowed"`
	Default []string `yaml:"default"`
}

// BuilderDTO configures the packaging tools.
type BuilderDTO struct {
	BaseImageDir string   `yaml:"baseImageDir"`
	SigningKey   *string  `yaml:"signingKey"`
	GPG          string   `yaml:"gpg"`
	Sudo         *bool    `yaml:"sudo"`
	BuildOptions []string `yaml:"buildOptions"`
}

// IndexDTO configures the package index.
type IndexDTO struct {
	Formats []string `yaml:"formats"`
}
