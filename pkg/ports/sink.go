package ports

import (
	"image"
)

// DebugSink receives intermediate masking results for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveMask saves the binary color mask of a frame.
	SaveMask(job string, index int, mask *image.Gray) error

	// SaveDetections saves a frame with the detected rectangles outlined.
	SaveDetections(job string, index int, frame image.Image, rects []image.Rectangle) error
}
