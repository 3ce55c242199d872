package domain

// BuildRequest is the immutable description of one invocation.
type BuildRequest struct {
	Distributions   []string
	Architectures   []string
	SourceDir       string
	OutputDir       string
	SkipBinaryBuild bool
	Strategy        StalenessStrategy
}

// BaseImageSpec describes a chroot base image to create.
type BaseImageSpec struct {
	Distribution string
	Architecture string
	Path         string
	Sudo         bool
}

// SourceBuild describes a source package build inside an extracted tree.
type SourceBuild struct {
	Tree       string
	SigningKey string
	GPGProgram string
}

// BinaryBuild describes a chrooted binary package build.
type BinaryBuild struct {
	Descriptor   string
	Distribution string
	Architecture string
	BaseImage    string
	ResultDir    string
	Options      []string
	Sudo         bool
}
