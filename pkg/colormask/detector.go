package colormask

import (
	"image"
)

// regionFinder thresholds a frame and extracts its external regions.
// Implementations are selected at build time: OpenCV with the gocv tag,
// pure Go otherwise.
type regionFinder interface {
	find(img *image.RGBA, rng Range) (*image.Gray, []Region)
	close()
}

// Detector thresholds frames against a color range and paints the detected
// regions. It reuses internal buffers between calls and must not be shared
// between goroutines. Close releases the backend.
type Detector struct {
	rng    Range
	finder regionFinder
	mask   *image.Gray
}

// NewDetector creates a Detector for rng.
func NewDetector(rng Range) *Detector {
	return &Detector{rng: rng, finder: newRegionFinder()}
}

// Backend names the region finder compiled into the binary.
func Backend() string {
	return backendName
}

// Range returns the color band the detector matches.
func (d *Detector) Range() Range {
	return d.rng
}

// Detect returns the external regions of img without modifying it.
// Regions are in raster order of their first pixel.
func (d *Detector) Detect(img *image.RGBA) []Region {
	mask, regions := d.finder.find(img, d.rng)
	d.mask = mask
	return regions
}

// Apply detects regions in img, paints them white in place and returns them.
func (d *Detector) Apply(img *image.RGBA) []Region {
	regions := d.Detect(img)
	Paint(img, regions)
	return regions
}

// LastMask returns the mask computed by the most recent Detect or Apply.
// It is overwritten by the next call.
func (d *Detector) LastMask() *image.Gray {
	return d.mask
}

// Close releases backend resources. The Detector must not be used after.
func (d *Detector) Close() error {
	d.finder.close()
	return nil
}
