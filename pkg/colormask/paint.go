package colormask

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Fill is the color regions are painted with.
var Fill = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Paint overwrites the fill rectangle of every region with opaque white.
// Everything inside a rectangle is replaced, not only the matched pixels.
// Rectangles are clipped to the frame.
func Paint(img *image.RGBA, regions []Region) {
	src := image.NewUniform(Fill)
	for _, r := range regions {
		rect := r.FillRect().Intersect(img.Bounds())
		if rect.Empty() {
			continue
		}
		draw.Draw(img, rect, src, image.Point{}, draw.Src)
	}
}
