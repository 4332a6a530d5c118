package pipeline

import (
	"time"

	"github.com/user/vidmask/pkg/colormask"
	"github.com/user/vidmask/pkg/ports"
)

// =============================================================================
// Mask Stage Types
// =============================================================================

// MaskInput describes one frame-masking pass.
type MaskInput struct {
	InputPath        string
	IntermediatePath string // silent video written by the stage
	Range            colormask.Range
	Encoder          ports.EncoderOptions

	// DebugEvery saves every Nth frame to the debug sink (0 = only the first
	// frame with detections).
	DebugEvery int
}

// MaskResult summarizes a masking pass.
type MaskResult struct {
	Source            ports.VideoInfo
	FramesProcessed   int
	FramesWithRegions int
	RegionsPainted    int
	// Truncation wraps ErrDecode when decoding stopped before the advertised
	// frame count. The frames read so far are still encoded.
	Truncation error
	Elapsed    time.Duration
}

// =============================================================================
// Remux Stage Types
// =============================================================================

// RemuxInput pairs the masked silent video with the source audio.
type RemuxInput struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
	Options    ports.TranscodeOptions
}

// RemuxResult describes the final output.
type RemuxResult struct {
	OutputPath string
	FileSize   int64
	Elapsed    time.Duration
}

// =============================================================================
// Trim Stage Types
// =============================================================================

// TrimInput describes one trim job.
// CutStart is carried for reporting only; the kept range is [CutEnd, duration].
type TrimInput struct {
	InputPath  string
	OutputPath string
	CutStart   time.Duration
	CutEnd     time.Duration
	Options    ports.TranscodeOptions
}

// TrimResult describes a completed trim.
type TrimResult struct {
	SourceDuration time.Duration
	CutEnd         time.Duration // after clamping
	Duration       time.Duration // expected output duration
	Clamped        bool
	FileSize       int64
	Elapsed        time.Duration
}
