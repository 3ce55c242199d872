package progress

import (
	"io"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/mkdeb/internal/ui/output"
	"go.trai.ch/mkdeb/internal/ui/style"
)

// DefaultInterval is the minimum time between two redraws of the progress line.
const DefaultInterval = 100 * time.Millisecond

// Reporter prints the progress of one download.
// On terminals the line is redrawn in place; elsewhere only the final line is written.
type Reporter struct {
	w           io.Writer
	out         *termenv.Output
	name        string
	interactive bool
	interval    time.Duration
	now         func() time.Time
	last        time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock replaces the clock used for throttling.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// WithInterval changes the redraw interval.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		r.interval = d
	}
}

// NewReporter creates a Reporter for the download of name written to w.
func NewReporter(w io.Writer, name string, interactive bool, opts ...Option) *Reporter {
	r := &Reporter{
		w:           w,
		out:         output.New(w, interactive),
		name:        name,
		interactive: interactive,
		interval:    DefaultInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Update reports received of total bytes. Calls closer together than the
// interval are dropped.
func (r *Reporter) Update(received, total int64) {
	if !r.interactive {
		return
	}
	now := r.now()
	if !r.last.IsZero() && now.Sub(r.last) <= r.interval {
		return
	}
	r.last = now

	line := output.Paint(r.out, Line(r.name, received, total), style.Iris)
	_, _ = io.WriteString(r.w, line+"\r")
}

// Finish prints the completed line followed by a newline.
func (r *Reporter) Finish(total int64) {
	_, _ = io.WriteString(r.w, Line(r.name, total, total)+"\n")
}
