//go:build !gocv

package colormask

import (
	"image"
)

const backendName = "native"

// nativeFinder runs Threshold and the connected-component tracer in Go.
type nativeFinder struct {
	scratch scratch
}

func newRegionFinder() regionFinder {
	return &nativeFinder{}
}

func (f *nativeFinder) find(img *image.RGBA, rng Range) (*image.Gray, []Region) {
	mask := Threshold(img, rng)
	return mask, f.scratch.externalRegions(mask)
}

func (f *nativeFinder) close() {}
