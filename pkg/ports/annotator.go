package ports

import "image"

// Annotator draws detection overlays for debug output.
type Annotator interface {
	// Annotate returns a copy of frame with every box outlined and numbered
	// in order. frame is not modified.
	Annotate(frame image.Image, boxes []image.Rectangle) image.Image

	// EncodePNG encodes img as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
