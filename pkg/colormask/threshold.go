package colormask

import (
	"image"
)

// Range is an inclusive HSV band.
type Range struct {
	Lower HSV
	Upper HSV
}

// YellowRange is the fixed yellow band: H 20-30, S 100-255, V 100-255.
var YellowRange = Range{
	Lower: HSV{H: 20, S: 100, V: 100},
	Upper: HSV{H: 30, S: 255, V: 255},
}

// Contains reports whether c lies within the range on every component.
func (r Range) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// Threshold returns a binary mask of img with the same bounds: 255 where the
// pixel's HSV value is inside rng, 0 elsewhere. Alpha is ignored.
func Threshold(img *image.RGBA, rng Range) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(b)
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			p := src[x*4 : x*4+3]
			if rng.Contains(ToHSV(p[0], p[1], p[2])) {
				dst[x] = 255
			}
		}
	}

	return mask
}
