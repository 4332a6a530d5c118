package ports

import (
	"image"
)

// VideoEncoder writes frames to a silent video file.
type VideoEncoder interface {
	// Begin creates the output file at path with the given dimensions and frame rate.
	// An encoder that cannot store rate exactly returns an error.
	Begin(path string, width, height int, rate Rate, opts EncoderOptions) error

	// EncodeFrame appends a frame. Its bounds must match the dimensions given to Begin.
	EncodeFrame(img *image.RGBA) error

	// End flushes and closes the output file.
	End() error
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Codec   string  // ffmpeg encoder name, e.g. "mpeg4"
	Bitrate int     // Target bitrate in bits/s (0 = use Quality)
	Quality float64 // 0 (best) to 1 (worst), used when Bitrate is 0
}
