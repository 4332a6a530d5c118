// Package consoleprogress prints per-frame job progress to the console.
package consoleprogress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/vidmask/pkg/ports"
)

// Reporter implements ports.ProgressReporter.
// On a terminal the line is rewritten in place; otherwise at most one line
// per interval is printed.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	inPlace  bool
	interval time.Duration
	now      func() time.Time
	last     map[string]time.Time
	width    int
}

// New creates a Reporter writing to stderr.
func New() *Reporter {
	fd := os.Stderr.Fd()
	return NewWriter(os.Stderr, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// NewWriter creates a Reporter writing to out.
func NewWriter(out io.Writer, inPlace bool) *Reporter {
	return &Reporter{
		out:      out,
		inPlace:  inPlace,
		interval: time.Second,
		now:      time.Now,
		last:     make(map[string]time.Time),
	}
}

// OnProgress prints p.
func (r *Reporter) OnProgress(p ports.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := Format(p)
	if r.inPlace {
		pad := ""
		if n := r.width - len(line); n > 0 {
			pad = fmt.Sprintf("%*s", n, "")
		}
		fmt.Fprintf(r.out, "\r%s%s", line, pad)
		r.width = len(line)
		return
	}

	now := r.now()
	final := p.Total > 0 && p.Current >= p.Total
	if last, ok := r.last[p.Path]; ok && !final && now.Sub(last) < r.interval {
		return
	}
	r.last[p.Path] = now
	fmt.Fprintln(r.out, line)
}

// Finish ends the progress line of path.
func (r *Reporter) Finish(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.last, path)
	if r.inPlace && r.width > 0 {
		fmt.Fprintln(r.out)
		r.width = 0
	}
}

// Format renders a progress snapshot as one line.
func Format(p ports.Progress) string {
	name := filepath.Base(p.Path)
	if p.Total <= 0 {
		return l10n.F("%s: frame %d (elapsed %s)", name, p.Current, formatDuration(p.Elapsed))
	}

	pct := float64(p.Current) * 100 / float64(p.Total)
	if pct > 100 {
		pct = 100
	}
	if !p.ETAKnown {
		return l10n.F("%s: frame %d/%d (%.1f%%) elapsed %s", name, p.Current, p.Total, pct, formatDuration(p.Elapsed))
	}
	return l10n.F("%s: frame %d/%d (%.1f%%) elapsed %s, ETA %s", name, p.Current, p.Total, pct, formatDuration(p.Elapsed), formatDuration(p.ETA))
}

// formatDuration renders d as m:ss or h:mm:ss.
func formatDuration(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	h, m := s/3600, (s/60)%60
	s %= 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var _ ports.ProgressReporter = (*Reporter)(nil)
