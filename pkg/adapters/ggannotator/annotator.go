// Package ggannotator draws detection overlays with the gg library.
package ggannotator

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/user/vidmask/pkg/ports"
)

// Default overlay styling.
var (
	DefaultOutline = color.RGBA{R: 255, G: 0, B: 64, A: 255}
	DefaultLabel   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Annotator implements ports.Annotator.
type Annotator struct {
	Outline     color.Color
	Label       color.Color
	StrokeWidth float64
}

// New creates an Annotator with the default styling.
func New() *Annotator {
	return &Annotator{
		Outline:     DefaultOutline,
		Label:       DefaultLabel,
		StrokeWidth: 2,
	}
}

// Annotate outlines every box on a copy of frame. Each box gets a filled
// tab with its 1-based index above its top-left corner, and the region count
// is printed in the top-left corner of the image.
func (a *Annotator) Annotate(frame image.Image, boxes []image.Rectangle) image.Image {
	dc := gg.NewContextForImage(frame)
	origin := frame.Bounds().Min

	dc.SetLineWidth(a.StrokeWidth)
	for i, box := range boxes {
		box = box.Sub(origin)
		dc.SetColor(a.Outline)
		dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
		dc.Stroke()

		label := fmt.Sprintf("#%d", i+1)
		w, h := dc.MeasureString(label)
		x, y := float64(box.Min.X), float64(box.Min.Y)-h-4
		if y < 0 {
			y = float64(box.Min.Y)
		}
		dc.DrawRectangle(x, y, w+4, h+4)
		dc.Fill()
		dc.SetColor(a.Label)
		dc.DrawStringAnchored(label, x+2, y+2, 0, 1)
	}

	summary := fmt.Sprintf("%d regions", len(boxes))
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(summary, 5, 5, 0, 1)
	dc.SetColor(a.Label)
	dc.DrawStringAnchored(summary, 4, 4, 0, 1)

	return dc.Image()
}

// EncodePNG encodes img as PNG.
func (a *Annotator) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ports.Annotator = (*Annotator)(nil)
