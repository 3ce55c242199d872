// Package detector decides whether output can be redrawn in place.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how progress is rendered.
type OutputMode int

const (
	// ModeLinear writes append-only lines, suitable for logs and CI.
	ModeLinear OutputMode = iota
	// ModeInteractive redraws the progress line in place.
	ModeInteractive
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// DetectEnvironment returns the output mode for w.
// It checks if w is a TTY and if CI environment variables are set.
func DetectEnvironment(w any) OutputMode {
	f, ok := w.(fdWriter)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return ModeLinear
	}

	if IsCI() {
		return ModeLinear
	}
	return ModeInteractive
}

// IsCI reports whether the CI environment variable marks a CI job.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// Interactive reports whether progress written to stderr may be redrawn in place.
func Interactive() bool {
	return DetectEnvironment(os.Stderr) == ModeInteractive
}
