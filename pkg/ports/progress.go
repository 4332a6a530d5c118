package ports

import "time"

// Progress is a snapshot of a running per-frame job.
type Progress struct {
	Path     string
	Current  int
	Total    int // 0 when unknown
	Elapsed  time.Duration
	ETA      time.Duration
	ETAKnown bool
}

// ProgressReporter observes job progress.
// OnProgress is called from the processing goroutine once per frame.
type ProgressReporter interface {
	OnProgress(p Progress)
	// Finish is called once after the last frame of a job.
	Finish(path string)
}
