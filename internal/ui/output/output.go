// Package output creates termenv outputs with consistent colour handling
// across the logger, the step renderer and the download progress line.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the colour profile to render with.
// NO_COLOR always wins. Terminals use the detected profile, CI logs get plain
// ANSI and anything else is left uncoloured.
func ColorProfile(interactive bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if interactive {
		return termenv.EnvColorProfile()
	}
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return termenv.ANSI
	}
	return termenv.Ascii
}

// New creates a termenv.Output for w.
// interactive reports whether w is attached to a terminal.
func New(w io.Writer, interactive bool) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(ColorProfile(interactive)),
		termenv.WithTTY(interactive),
	)
}

// Paint renders text in color using the profile of out.
func Paint(out *termenv.Output, text string, color lipgloss.Color) string {
	return out.String(text).Foreground(out.Color(string(color))).String()
}
