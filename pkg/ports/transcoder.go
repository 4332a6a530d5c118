package ports

import (
	"context"
	"time"
)

// Transcoder runs whole-file operations that need both audio and video streams.
type Transcoder interface {
	// Remux writes output with the video stream of videoPath and the audio
	// stream of audioPath. A missing audio stream yields a video-only output.
	Remux(ctx context.Context, videoPath, audioPath, output string, opts TranscodeOptions) error

	// Cut writes input from start to its end into output, re-encoding video and audio.
	Cut(ctx context.Context, input, output string, start time.Duration, opts TranscodeOptions) error
}

// TranscodeOptions configures the final lossy encode.
type TranscodeOptions struct {
	VideoCodec string // e.g. "libx264"
	AudioCodec string // e.g. "aac", or "copy"
	CRF        int    // 0 = encoder default
	Preset     string // x264 preset, empty = encoder default
	FrameRate  Rate   // forced output rate, zero keeps the input's
}

// Prober reads container metadata without decoding frames.
type Prober interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}
