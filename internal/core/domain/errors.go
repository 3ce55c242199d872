package domain

import "go.trai.ch/zerr"

var (
	// ErrChangelogParse is returned when the first changelog line does not carry
	// a "name (upstream-local) distribution; urgency=..." header.
	ErrChangelogParse = zerr.New("failed to parse changelog header")

	// ErrChangelogRead is returned when a changelog file cannot be read.
	ErrChangelogRead = zerr.New("failed to read changelog")

	// ErrChangelogWrite is returned when a translated changelog cannot be written.
	ErrChangelogWrite = zerr.New("failed to write changelog")

	// ErrDistributionMismatch is returned when the translated changelog names a
	// different distribution than the one being built.
	ErrDistributionMismatch = zerr.New("changelog distribution does not match requested distribution")

	// ErrSubprocessFailed is returned when an external packaging tool exits unsuccessfully.
	ErrSubprocessFailed = zerr.New("external command failed")

	// ErrTransferFailed is returned when the upstream tarball cannot be downloaded.
	ErrTransferFailed = zerr.New("download failed")

	// ErrArtifactMissing is returned when a tool reported success but its artifact is absent.
	ErrArtifactMissing = zerr.New("expected artifact was not produced")

	// ErrArtifactInspect is returned when an artifact path cannot be inspected.
	ErrArtifactInspect = zerr.New("failed to inspect artifact")

	// ErrWorkspaceCreate is returned when an output directory cannot be created.
	ErrWorkspaceCreate = zerr.New("failed to create output directory")

	// ErrLinkFailed is returned when the tarball cannot be linked into a working directory.
	ErrLinkFailed = zerr.New("failed to link upstream tarball")

	// ErrIndexWrite is returned when the package index cannot be generated.
	ErrIndexWrite = zerr.New("failed to write package index")

	// ErrInvalidSelection is returned when a requested distribution or architecture is not allowed.
	ErrInvalidSelection = zerr.New("invalid selection")

	// ErrInvalidUsage is returned for malformed command lines and flags.
	ErrInvalidUsage = zerr.New("invalid usage")

	// ErrInvalidStrategy is returned when an unknown staleness strategy is requested.
	ErrInvalidStrategy = zerr.New("invalid staleness strategy, expected 'mtime' or 'content'")

	// ErrInvalidIndexFormat is returned when an unknown package index format is configured.
	ErrInvalidIndexFormat = zerr.New("invalid index format, expected 'gz' or 'xz'")

	// ErrConfigRead is returned when the project file cannot be read.
	ErrConfigRead = zerr.New("failed to read project file")

	// ErrConfigParse is returned when the project file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse project file")

	// ErrConfigInvalid is returned when the project file has missing or inconsistent values.
	ErrConfigInvalid = zerr.New("invalid project configuration")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrHashFailed is returned when an artifact digest cannot be computed.
	ErrHashFailed = zerr.New("failed to hash file")
)
