package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	mu sync.Mutex

	// Infos maps paths to the metadata returned for them.
	Infos     map[string]ports.VideoInfo
	ProbeFunc func(ctx context.Context, path string) (ports.VideoInfo, error)

	// Recorded calls for verification
	ProbeCalls []string
}

// NewProber creates a Prober answering from infos.
func NewProber(infos map[string]ports.VideoInfo) *Prober {
	if infos == nil {
		infos = make(map[string]ports.VideoInfo)
	}
	return &Prober{Infos: infos}
}

func (m *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	m.mu.Lock()
	m.ProbeCalls = append(m.ProbeCalls, path)
	info, ok := m.Infos[path]
	m.mu.Unlock()

	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	if !ok {
		return ports.VideoInfo{}, fmt.Errorf("no such file: %s", path)
	}
	return info, nil
}

var _ ports.Prober = (*Prober)(nil)
