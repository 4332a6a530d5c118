package mocks

import (
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// ProgressReporter records every progress update.
type ProgressReporter struct {
	mu       sync.Mutex
	Updates  []ports.Progress
	Finished []string
}

func (m *ProgressReporter) OnProgress(p ports.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, p)
}

func (m *ProgressReporter) Finish(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished = append(m.Finished, path)
}

// Last returns the most recent update.
func (m *ProgressReporter) Last() ports.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Updates) == 0 {
		return ports.Progress{}
	}
	return m.Updates[len(m.Updates)-1]
}

var _ ports.ProgressReporter = (*ProgressReporter)(nil)
