// Package staleness decides which build artifacts have to be regenerated.
package staleness

import (
	"time"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
)

// Engine checks artifacts against their inputs.
type Engine struct {
	inspector ports.ArtifactInspector
	hasher    ports.Hasher
	store     ports.BuildRecordStore
	now       func() time.Time
}

// NewEngine creates a new Engine with the given dependencies.
func NewEngine(inspector ports.ArtifactInspector, hasher ports.Hasher, store ports.BuildRecordStore) *Engine {
	return &Engine{
		inspector: inspector,
		hasher:    hasher,
		store:     store,
		now:       time.Now,
	}
}

// NeedsRebuild reports whether artifact is missing or older than reference.
// An empty reference only checks presence.
func (e *Engine) NeedsRebuild(artifact, reference string) (bool, error) {
	state, err := e.inspector.Inspect(artifact)
	if err != nil {
		return false, err
	}
	if reference == "" {
		return domain.DecidePresence(state).Rebuild, nil
	}
	ref, err := e.inspector.Inspect(reference)
	if err != nil {
		return false, err
	}
	return domain.DecideAgainst(state, ref).Rebuild, nil
}

// Presence decides whether path has to be produced because it does not exist.
func (e *Engine) Presence(path string) (domain.Decision, error) {
	state, err := e.inspector.Inspect(path)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.DecidePresence(state), nil
}

// BaseImage decides whether a chroot base image has to be created.
func (e *Engine) BaseImage(path string) (domain.Decision, error) {
	return e.Presence(path)
}

// SourcePackage decides whether a source package descriptor has to be built.
func (e *Engine) SourcePackage(path string) (domain.Decision, error) {
	return e.Presence(path)
}

// BinaryPackage decides whether the binary package at path has to be rebuilt
// from descriptor. The content strategy compares the descriptor digest with
// the one recorded below root and falls back to modification times when no
// record of this descriptor exists.
func (e *Engine) BinaryPackage(
	root, path, descriptor string,
	strategy domain.StalenessStrategy,
) (domain.Decision, error) {
	state, err := e.inspector.Inspect(path)
	if err != nil {
		return domain.Decision{}, err
	}
	if !state.Exists {
		return domain.DecidePresence(state), nil
	}

	if strategy == domain.StrategyContent {
		record, err := e.store.Get(root, path)
		if err != nil {
			return domain.Decision{}, err
		}
		if record != nil && record.Input == descriptor {
			digest, err := e.hasher.HashFile(descriptor)
			if err != nil {
				return domain.Decision{}, err
			}
			return domain.DecideDigest(state, record.InputDigest, digest), nil
		}
	}

	ref, err := e.inspector.Inspect(descriptor)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.DecideAgainst(state, ref), nil
}

// Record remembers that the binary package at path was built from descriptor.
func (e *Engine) Record(root, path, descriptor string) error {
	digest, err := e.hasher.HashFile(descriptor)
	if err != nil {
		return err
	}
	record := domain.BuildRecord{
		Artifact:    path,
		Input:       descriptor,
		InputDigest: digest,
		BuiltAt:     e.now().UTC(),
	}
	return e.store.Put(root, record)
}
