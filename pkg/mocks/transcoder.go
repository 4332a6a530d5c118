package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/vidmask/pkg/ports"
)

// Transcoder is a mock implementation of ports.Transcoder.
// Successful calls write a placeholder output through FS when it is set.
type Transcoder struct {
	mu sync.Mutex

	FS        *FileSystem
	RemuxFunc func(ctx context.Context, videoPath, audioPath, output string, opts ports.TranscodeOptions) error
	CutFunc   func(ctx context.Context, input, output string, start time.Duration, opts ports.TranscodeOptions) error

	// Recorded calls for verification
	RemuxCalls []RemuxCall
	CutCalls   []CutCall
}

// RemuxCall records a call to Remux.
type RemuxCall struct {
	VideoPath string
	AudioPath string
	Output    string
	Options   ports.TranscodeOptions
}

// CutCall records a call to Cut.
type CutCall struct {
	Input   string
	Output  string
	Start   time.Duration
	Options ports.TranscodeOptions
}

func (m *Transcoder) Remux(ctx context.Context, videoPath, audioPath, output string, opts ports.TranscodeOptions) error {
	m.mu.Lock()
	m.RemuxCalls = append(m.RemuxCalls, RemuxCall{VideoPath: videoPath, AudioPath: audioPath, Output: output, Options: opts})
	m.mu.Unlock()

	if m.RemuxFunc != nil {
		if err := m.RemuxFunc(ctx, videoPath, audioPath, output, opts); err != nil {
			return err
		}
	}
	if m.FS != nil {
		return m.FS.WriteFile(output, []byte("remuxed"))
	}
	return nil
}

func (m *Transcoder) Cut(ctx context.Context, input, output string, start time.Duration, opts ports.TranscodeOptions) error {
	m.mu.Lock()
	m.CutCalls = append(m.CutCalls, CutCall{Input: input, Output: output, Start: start, Options: opts})
	m.mu.Unlock()

	if m.CutFunc != nil {
		if err := m.CutFunc(ctx, input, output, start, opts); err != nil {
			return err
		}
	}
	if m.FS != nil {
		return m.FS.WriteFile(output, []byte("trimmed"))
	}
	return nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
