package colormask

import (
	"image"
)

// Region is the axis-aligned bounding box of one detected component, in
// pixel coordinates. Width and Height count pixels, so a single pixel has
// Width == Height == 1.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// FillRect returns the rectangle painted for r. Its corners are (X, Y) and
// (X+Width, Y+Height) inclusive, one pixel past the bounding box on the
// right and bottom edges.
func (r Region) FillRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width+1, r.Y+r.Height+1)
}

// ExternalRegions returns the bounding boxes of the outermost connected
// components of mask. Foreground is any non-zero pixel and is 8-connected.
// A component lying inside a hole of another component is not reported.
// Regions are returned in raster order of their first pixel.
func ExternalRegions(mask *image.Gray) []Region {
	var s scratch
	return s.externalRegions(mask)
}

// scratch holds buffers reused across frames of the same size.
type scratch struct {
	labels []int32
	outer  []bool
	queue  []int
}

func (s *scratch) reset(n int) {
	if cap(s.labels) < n {
		s.labels = make([]int32, n)
		s.outer = make([]bool, n)
	}
	s.labels = s.labels[:n]
	s.outer = s.outer[:n]
	for i := range s.labels {
		s.labels[i] = 0
		s.outer[i] = false
	}
	s.queue = s.queue[:0]
}

type component struct {
	minX, minY, maxX, maxY int
	external               bool
}

func (s *scratch) externalRegions(mask *image.Gray) []Region {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	s.reset(w * h)

	fg := func(i int) bool {
		return mask.Pix[(i/w)*mask.Stride+i%w] != 0
	}

	// Background reachable from outside the frame through 4-neighbors.
	for x := 0; x < w; x++ {
		s.seedOuter(x, fg)
		s.seedOuter((h-1)*w+x, fg)
	}
	for y := 0; y < h; y++ {
		s.seedOuter(y*w, fg)
		s.seedOuter(y*w+w-1, fg)
	}
	for len(s.queue) > 0 {
		i := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		x, y := i%w, i/w
		if x > 0 {
			s.seedOuter(i-1, fg)
		}
		if x < w-1 {
			s.seedOuter(i+1, fg)
		}
		if y > 0 {
			s.seedOuter(i-w, fg)
		}
		if y < h-1 {
			s.seedOuter(i+w, fg)
		}
	}

	var comps []component
	for start := 0; start < w*h; start++ {
		if !fg(start) || s.labels[start] != 0 {
			continue
		}
		comps = append(comps, component{
			minX: start % w, minY: start / w,
			maxX: start % w, maxY: start / w,
		})
		label := int32(len(comps))
		c := &comps[label-1]

		s.labels[start] = label
		s.queue = append(s.queue[:0], start)
		for len(s.queue) > 0 {
			i := s.queue[len(s.queue)-1]
			s.queue = s.queue[:len(s.queue)-1]
			x, y := i%w, i/w

			if x < c.minX {
				c.minX = x
			}
			if x > c.maxX {
				c.maxX = x
			}
			if y < c.minY {
				c.minY = y
			}
			if y > c.maxY {
				c.maxY = y
			}
			if !c.external && s.touchesOutside(x, y, w, h) {
				c.external = true
			}

			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
						continue
					}
					j := ny*w + nx
					if s.labels[j] == 0 && fg(j) {
						s.labels[j] = label
						s.queue = append(s.queue, j)
					}
				}
			}
		}
	}

	regions := make([]Region, 0, len(comps))
	for _, c := range comps {
		if !c.external {
			continue
		}
		regions = append(regions, Region{
			X:      b.Min.X + c.minX,
			Y:      b.Min.Y + c.minY,
			Width:  c.maxX - c.minX + 1,
			Height: c.maxY - c.minY + 1,
		})
	}
	return regions
}

func (s *scratch) seedOuter(i int, fg func(int) bool) {
	if s.outer[i] || fg(i) {
		return
	}
	s.outer[i] = true
	s.queue = append(s.queue, i)
}

// touchesOutside reports whether the foreground pixel at (x, y) sits on the
// frame edge or has a 4-neighbor in the outer background.
func (s *scratch) touchesOutside(x, y, w, h int) bool {
	if x == 0 || y == 0 || x == w-1 || y == h-1 {
		return true
	}
	i := y*w + x
	return s.outer[i-1] || s.outer[i+1] || s.outer[i-w] || s.outer[i+w]
}
