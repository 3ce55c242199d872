package domain

import "time"

// BuildRecord remembers the input a binary package was built from.
type BuildRecord struct {
	Artifact    string    `json:"artifact"`
	Input       string    `json:"input"`
	InputDigest string    `json:"input_digest"`
	BuiltAt     time.Time `json:"built_at"`
}
