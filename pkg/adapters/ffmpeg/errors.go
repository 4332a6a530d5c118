package ffmpeg

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("ffmpeg: encoder not initialized")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found")

	// ErrFFprobeNotFound is returned when no ffprobe binary can be located.
	ErrFFprobeNotFound = errors.New("ffmpeg: ffprobe not found")

	// ErrFrameSize is returned when a frame does not match the encoder dimensions.
	ErrFrameSize = errors.New("ffmpeg: frame size mismatch")
)
