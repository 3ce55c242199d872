// Package style provides shared UI styling primitives including brand colors,
// icons and the table styles of the status report.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Table styles.
var (
	Header  = lipgloss.NewStyle().Bold(true).Foreground(Iris).Padding(0, 1)
	Cell    = lipgloss.NewStyle().Padding(0, 1)
	Stale   = Cell.Foreground(Yellow)
	Fresh   = Cell.Foreground(Green)
	Border  = lipgloss.NewStyle().Foreground(Slate)
	Summary = lipgloss.NewStyle().Foreground(Slate)
)
