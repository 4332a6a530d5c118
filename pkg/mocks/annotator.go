package mocks

import (
	"image"

	"github.com/user/vidmask/pkg/ports"
)

// Annotator is a mock implementation of ports.Annotator.
type Annotator struct {
	EncodePNGFunc func(img image.Image) ([]byte, error)

	// Boxes records the boxes passed to each Annotate call.
	Boxes [][]image.Rectangle
	// Encoded records the bounds of every encoded image.
	Encoded []image.Rectangle
}

func (m *Annotator) Annotate(frame image.Image, boxes []image.Rectangle) image.Image {
	m.Boxes = append(m.Boxes, append([]image.Rectangle(nil), boxes...))
	return frame
}

func (m *Annotator) EncodePNG(img image.Image) ([]byte, error) {
	m.Encoded = append(m.Encoded, img.Bounds())
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.Annotator = (*Annotator)(nil)
