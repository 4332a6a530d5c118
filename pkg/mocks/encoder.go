package mocks

import (
	"image"

	"github.com/user/vidmask/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
// Successful End writes a placeholder file through FS when it is set.
type VideoEncoder struct {
	FS              *FileSystem
	BeginFunc       func(path string, width, height int, rate ports.Rate, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img *image.RGBA) error
	EndFunc         func() error

	// KeepFrames stores a copy of every encoded frame in Frames.
	KeepFrames bool

	// Recorded calls for verification
	BeginCalled bool
	BeginCall   BeginCall
	FrameCount  int
	Frames      []*image.RGBA
	EndCalled   bool
}

// BeginCall records the arguments of Begin.
type BeginCall struct {
	Path    string
	Width   int
	Height  int
	Rate    ports.Rate
	Options ports.EncoderOptions
}

func (m *VideoEncoder) Begin(path string, width, height int, rate ports.Rate, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginCall = BeginCall{Path: path, Width: width, Height: height, Rate: rate, Options: opts}
	if m.BeginFunc != nil {
		return m.BeginFunc(path, width, height, rate, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img *image.RGBA) error {
	if m.EncodeFrameFunc != nil {
		if err := m.EncodeFrameFunc(img); err != nil {
			return err
		}
	}
	m.FrameCount++
	if m.KeepFrames {
		cp := image.NewRGBA(img.Bounds())
		copy(cp.Pix, img.Pix)
		m.Frames = append(m.Frames, cp)
	}
	return nil
}

func (m *VideoEncoder) End() error {
	m.EndCalled = true
	if m.EndFunc != nil {
		if err := m.EndFunc(); err != nil {
			return err
		}
	}
	if m.FS != nil && m.BeginCalled {
		return m.FS.WriteFile(m.BeginCall.Path, []byte("silent"))
	}
	return nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
