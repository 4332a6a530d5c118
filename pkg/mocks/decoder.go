package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder serving
// synthetic streams.
type VideoDecoder struct {
	mu sync.Mutex

	// Streams maps paths to the stream returned by Open.
	Streams  map[string]*VideoStream
	OpenFunc func(path string) (ports.VideoStream, error)

	// Recorded calls for verification
	OpenCalls []string
}

// NewVideoDecoder creates a VideoDecoder with no streams.
func NewVideoDecoder() *VideoDecoder {
	return &VideoDecoder{Streams: make(map[string]*VideoStream)}
}

// Add registers a stream for path.
func (m *VideoDecoder) Add(path string, s *VideoStream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Streams[path] = s
}

func (m *VideoDecoder) Open(path string) (ports.VideoStream, error) {
	m.mu.Lock()
	m.OpenCalls = append(m.OpenCalls, path)
	s, ok := m.Streams[path]
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if !ok {
		return nil, fmt.Errorf("cannot open %s", path)
	}
	s.pos = 0
	s.Closed = false
	return s, nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)

// VideoStream yields frames produced by Frame.
type VideoStream struct {
	StreamInfo ports.VideoInfo
	// Frames is the number of frames actually decodable. It may be lower
	// than StreamInfo.FrameCount to simulate a truncated file.
	Frames int
	// Frame paints frame i into img. A nil Frame leaves frames black.
	Frame func(i int, img *image.RGBA)

	Closed bool
	pos    int
	buf    *image.RGBA
}

// NewSolidStream creates a stream of n frames painted by paint, with
// metadata advertising n frames.
func NewSolidStream(width, height int, fps float64, n int, paint func(i int, img *image.RGBA)) *VideoStream {
	return &VideoStream{
		StreamInfo: ports.VideoInfo{
			Width:      width,
			Height:     height,
			FPS:        fps,
			Rate:       ports.RateFromFloat(fps),
			FrameCount: n,
			HasAudio:   true,
		},
		Frames: n,
		Frame:  paint,
	}
}

func (s *VideoStream) Info() ports.VideoInfo {
	return s.StreamInfo
}

func (s *VideoStream) NextFrame() (*image.RGBA, bool) {
	if s.Closed || s.pos >= s.Frames {
		return nil, false
	}
	if s.buf == nil {
		s.buf = image.NewRGBA(image.Rect(0, 0, s.StreamInfo.Width, s.StreamInfo.Height))
	}
	for i := range s.buf.Pix {
		s.buf.Pix[i] = 0
	}
	if s.Frame != nil {
		s.Frame(s.pos, s.buf)
	}
	s.pos++
	return s.buf, true
}

func (s *VideoStream) Close() error {
	s.Closed = true
	return nil
}

var _ ports.VideoStream = (*VideoStream)(nil)
