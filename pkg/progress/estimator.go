// Package progress estimates remaining time for per-frame jobs.
package progress

import (
	"time"

	"github.com/user/vidmask/pkg/ports"
)

// Estimator turns a processed-frame count into a progress snapshot.
// The remaining time is the average time per frame so far multiplied by the
// frames still to go.
type Estimator struct {
	path  string
	total int
	start time.Time
	now   func() time.Time
}

// NewEstimator starts timing a job over total frames. total <= 0 means the
// frame count is unknown and no ETA is produced.
func NewEstimator(path string, total int) *Estimator {
	return newEstimator(path, total, time.Now)
}

func newEstimator(path string, total int, now func() time.Time) *Estimator {
	return &Estimator{path: path, total: total, start: now(), now: now}
}

// SetTotal sets the frame count once it is known, keeping the start time.
func (e *Estimator) SetTotal(total int) {
	e.total = total
}

// Update returns the snapshot after done frames.
func (e *Estimator) Update(done int) ports.Progress {
	elapsed := e.now().Sub(e.start)
	p := ports.Progress{
		Path:    e.path,
		Current: done,
		Total:   max(e.total, 0),
		Elapsed: elapsed,
	}
	if e.total <= 0 || done <= 0 {
		return p
	}

	p.ETAKnown = true
	remaining := e.total - done
	if remaining <= 0 {
		return p
	}
	p.ETA = time.Duration(float64(elapsed) / float64(done) * float64(remaining))
	return p
}

// Elapsed returns the time since the estimator was created.
func (e *Estimator) Elapsed() time.Duration {
	return e.now().Sub(e.start)
}
