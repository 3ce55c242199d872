// Package linear provides a synchronous, line-oriented renderer of build steps.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/mkdeb/internal/ui/output"
	"go.trai.ch/mkdeb/internal/ui/style"
)

// Renderer implements ports.Renderer.
// It prints one line per finished step, indented below its parent step and
// labelled with the distribution it builds for.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState // spanID -> step state
}

type stepState struct {
	name         string
	distribution string
	depth        int
	startTime    time.Time
}

// NewRenderer creates a new Renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer, interactive bool) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		w:      w,
		output: output.New(w, interactive),
		steps:  make(map[string]*stepState),
	}
}

// OnTaskStart records the start of a step. A step without a distribution
// inherits the one of its parent.
func (r *Renderer) OnTaskStart(spanID, parentID, name, distribution string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.steps[parentID]; ok {
		depth = parent.depth + 1
		if distribution == "" {
			distribution = parent.distribution
		}
	}
	r.steps[spanID] = &stepState{name: name, distribution: distribution, depth: depth, startTime: startTime}
}

// OnTaskComplete prints the outcome and duration of a step.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)

	duration := FormatDuration(endTime.Sub(step.startTime))
	indent := strings.Repeat("  ", step.depth)
	prefix := r.output.String(fmt.Sprintf("[%s]", step.label())).Faint().String()

	if err != nil {
		symbol := output.Paint(r.output, style.Cross, style.Red)
		_, _ = fmt.Fprintf(r.w, "%s%s %s Failed after %s: %v\n", indent, prefix, symbol, duration, err)
		return
	}
	symbol := output.Paint(r.output, style.Check, style.Green)
	_, _ = fmt.Fprintf(r.w, "%s%s %s Completed in %s\n", indent, prefix, symbol, duration)
}

// label names the step, qualified by its distribution unless the step is the
// distribution itself.
func (s *stepState) label() string {
	if s.distribution == "" || s.distribution == s.name {
		return s.name
	}
	return s.distribution + "/" + s.name
}

// FormatDuration rounds d for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
