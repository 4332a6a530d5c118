// Package colormask detects regions of a target color band in RGB frames and
// paints their bounding boxes over.
//
// Hue is stored on a 0-179 scale (degrees / 2), saturation and value on
// 0-255. ToHSV reproduces the 12-bit fixed-point arithmetic of OpenCV's
// 8-bit RGB to HSV conversion, so pixels on a band edge fall on the same
// side in both backends.
package colormask

// HSV is an 8-bit hue/saturation/value triple. H is in [0, 179].
type HSV struct {
	H uint8
	S uint8
	V uint8
}

const hsvShift = 12

// sdiv[v] is 255/v and hdiv[d] is 30/d, both scaled by 1<<hsvShift and
// rounded to nearest.
var sdiv, hdiv = divTables()

func divTables() (s, h [256]int) {
	for i := 1; i < 256; i++ {
		s[i] = roundDiv(255<<hsvShift, i)
		h[i] = roundDiv(180<<hsvShift, 6*i)
	}
	return s, h
}

func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

// ToHSV converts an 8-bit RGB color to HSV.
func ToHSV(r, g, b uint8) HSV {
	ri, gi, bi := int(r), int(g), int(b)
	v := max(ri, gi, bi)
	diff := v - min(ri, gi, bi)

	s := (diff*sdiv[v] + 1<<(hsvShift-1)) >> hsvShift

	// Red wins ties, then green.
	var h int
	switch v {
	case ri:
		h = gi - bi
	case gi:
		h = bi - ri + 2*diff
	default:
		h = ri - gi + 4*diff
	}
	h = (h*hdiv[diff] + 1<<(hsvShift-1)) >> hsvShift
	if h < 0 {
		h += 180
	}

	return HSV{H: uint8(h), S: uint8(s), V: uint8(v)}
}
