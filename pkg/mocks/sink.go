package mocks

import (
	"image"
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Masks      map[int]*image.Gray
	Detections map[int][]image.Rectangle
	Jobs       []string // job of every SaveDetections call
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Masks:      make(map[int]*image.Gray),
		Detections: make(map[int][]image.Rectangle),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveMask(job string, index int, mask *image.Gray) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Masks[index] = mask
	return nil
}

func (m *DebugSink) SaveDetections(job string, index int, frame image.Image, rects []image.Rectangle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Detections[index] = rects
	m.Jobs = append(m.Jobs, job)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
