// Package vidiodecoder reads video frames through Vidio, which streams raw
// RGBA frames out of an ffmpeg process.
package vidiodecoder

import (
	"fmt"
	"image"
	"time"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/user/vidmask/pkg/ports"
)

// Decoder implements ports.VideoDecoder.
type Decoder struct{}

// New creates a new Decoder. Vidio runs ffmpeg and ffprobe from PATH.
func New() *Decoder {
	return &Decoder{}
}

// Open opens path and prepares a reusable frame buffer.
// HasAudio is not reported; use a ports.Prober for stream layout.
func (d *Decoder) Open(path string) (ports.VideoStream, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, video.Width(), video.Height()))
	if err := video.SetFrameBuffer(frame.Pix); err != nil {
		video.Close()
		return nil, fmt.Errorf("set frame buffer: %w", err)
	}

	return &stream{
		video: video,
		frame: frame,
		info: ports.VideoInfo{
			Width:      video.Width(),
			Height:     video.Height(),
			FPS:        video.FPS(),
			Rate:       ports.RateFromFloat(video.FPS()),
			FrameCount: video.Frames(),
			Duration:   time.Duration(video.Duration() * float64(time.Second)),
			Codec:      video.Codec(),
			Bitrate:    video.Bitrate(),
		},
	}, nil
}

type stream struct {
	video  *vidio.Video
	frame  *image.RGBA
	info   ports.VideoInfo
	closed bool
}

func (s *stream) Info() ports.VideoInfo {
	return s.info
}

func (s *stream) NextFrame() (*image.RGBA, bool) {
	if s.closed || !s.video.Read() {
		return nil, false
	}
	return s.frame, true
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.video.Close()
	return nil
}

var _ ports.VideoDecoder = (*Decoder)(nil)
