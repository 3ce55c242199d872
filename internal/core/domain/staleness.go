package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// StalenessStrategy selects how binary packages are compared with their source descriptor.
type StalenessStrategy string

const (
	// StrategyMTime rebuilds when the artifact is older than its input.
	StrategyMTime StalenessStrategy = "mtime"
	// StrategyContent rebuilds when the input digest differs from the one recorded at build time.
	StrategyContent StalenessStrategy = "content"
)

// ParseStrategy converts a strategy name. The empty string selects StrategyMTime.
func ParseStrategy(s string) (StalenessStrategy, error) {
	switch StalenessStrategy(s) {
	case "", StrategyMTime:
		return StrategyMTime, nil
	case StrategyContent:
		return StrategyContent, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidStrategy, "unknown staleness strategy"), "strategy", s)
	}
}

// Reason explains a staleness decision.
type Reason string

const (
	// ReasonMissing means the artifact does not exist.
	ReasonMissing Reason = "missing"
	// ReasonOutdated means the artifact is older than its input.
	ReasonOutdated Reason = "older than input"
	// ReasonInputChanged means the input digest differs from the recorded one.
	ReasonInputChanged Reason = "input changed"
	// ReasonUpToDate means the artifact can be reused.
	ReasonUpToDate Reason = "up to date"
	// ReasonAlways means the artifact is regenerated on every run.
	ReasonAlways Reason = "always regenerated"
)

// ArtifactState is a snapshot of an artifact on disk.
type ArtifactState struct {
	Path    string
	Exists  bool
	ModTime time.Time
}

// Decision is the outcome of a staleness check.
type Decision struct {
	Artifact string
	Rebuild  bool
	Reason   Reason
}

// DecidePresence rebuilds a only when it does not exist.
func DecidePresence(a ArtifactState) Decision {
	if !a.Exists {
		return Decision{Artifact: a.Path, Rebuild: true, Reason: ReasonMissing}
	}
	return Decision{Artifact: a.Path, Reason: ReasonUpToDate}
}

// DecideAgainst rebuilds a when it is missing or strictly older than ref.
func DecideAgainst(a, ref ArtifactState) Decision {
	if !a.Exists {
		return Decision{Artifact: a.Path, Rebuild: true, Reason: ReasonMissing}
	}
	if ref.Exists && a.ModTime.Before(ref.ModTime) {
		return Decision{Artifact: a.Path, Rebuild: true, Reason: ReasonOutdated}
	}
	return Decision{Artifact: a.Path, Reason: ReasonUpToDate}
}

// DecideDigest rebuilds a when it is missing or the recorded input digest differs from current.
func DecideDigest(a ArtifactState, recorded, current string) Decision {
	if !a.Exists {
		return Decision{Artifact: a.Path, Rebuild: true, Reason: ReasonMissing}
	}
	if recorded != current {
		return Decision{Artifact: a.Path, Rebuild: true, Reason: ReasonInputChanged}
	}
	return Decision{Artifact: a.Path, Reason: ReasonUpToDate}
}

// DecideAlways regenerates a unconditionally.
func DecideAlways(path string) Decision {
	return Decision{Artifact: path, Rebuild: true, Reason: ReasonAlways}
}
