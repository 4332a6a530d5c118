package ports

import (
	"image"
	"time"
)

// VideoInfo describes a video source.
type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	Rate       Rate // exact frame rate, zero when unknown
	FrameCount int  // 0 when the container does not advertise it
	Duration   time.Duration
	Codec      string
	Bitrate    int // bits per second, 0 when unknown
	HasAudio   bool
}

// VideoDecoder opens video files for sequential frame access.
type VideoDecoder interface {
	// Open opens the video at path. The caller must Close the returned stream.
	Open(path string) (VideoStream, error)
}

// VideoStream is an open video source read frame by frame.
type VideoStream interface {
	// Info returns the stream metadata read when the stream was opened.
	Info() VideoInfo

	// NextFrame decodes the next frame in RGB order.
	// The returned image is owned by the stream and is overwritten by the next call.
	// ok is false when the stream is exhausted or a frame could not be decoded.
	NextFrame() (img *image.RGBA, ok bool)

	// Close releases decoder resources.
	Close() error
}
