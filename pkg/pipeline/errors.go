package pipeline

import "errors"

// Job error categories. Stages wrap them with the offending path, so callers
// classify failures with errors.Is.
var (
	// ErrOpen means the source could not be opened or probed.
	ErrOpen = errors.New("cannot open video")

	// ErrDecode means decoding stopped before the advertised frame count.
	// Stages treat it as end of stream and report it in their result.
	ErrDecode = errors.New("decode stopped early")

	// ErrWrite means an output could not be created or encoded.
	ErrWrite = errors.New("cannot write video")

	// ErrNoFrames means the source yielded no frames at all.
	ErrNoFrames = errors.New("no frames decoded")

	// ErrEmptyRange means the trim range is empty after clamping.
	ErrEmptyRange = errors.New("empty trim range")

	// ErrInvalidRange means the trim parameters are out of domain.
	ErrInvalidRange = errors.New("invalid trim range")
)
