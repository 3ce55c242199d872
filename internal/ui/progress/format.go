// Package progress renders download progress as a single self-overwriting line.
package progress

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the number of cells of the progress bar.
const DefaultWidth = 30

// blocks are the eighth-block glyphs, from empty to a full cell.
var blocks = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

var units = []string{" B", "KB", "MB", "GB", "TB", "PB", "EB"}

// HumanSize formats n bytes with two decimals and a two-letter 1024-based unit.
func HumanSize(n int64) string {
	if n <= 0 {
		return fmt.Sprintf("%6.2f%s", 0.0, units[0])
	}
	exp := (bits.Len64(uint64(n)) - 1) / 10
	scaled := float64(n) / float64(uint64(1)<<(10*exp))
	return fmt.Sprintf("%6.2f%s", scaled, units[exp])
}

// Bar draws fraction of width cells using eighth blocks.
// The result is always width runes long; fractions outside [0, 1] are clamped.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}

	length := math.Min(fraction, 1) * float64(width)
	full := int(length)
	partial := blocks[int(float64(len(blocks))*(length-float64(full)))]
	empty := max(width-full-utf8.RuneCountInString(partial), 0)

	return strings.Repeat(blocks[len(blocks)-1], full) + partial + strings.Repeat(" ", empty)
}

// Percent returns received as a percentage of total. An unknown total reports zero.
func Percent(received, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(received) / float64(total)
}

// Line renders one progress line for the download of name.
func Line(name string, received, total int64) string {
	pct := Percent(received, total)
	return fmt.Sprintf("Downloading %s: %s/%s [%s] %6.2f%%",
		name, HumanSize(received), HumanSize(total), Bar(pct/100, DefaultWidth), pct)
}
