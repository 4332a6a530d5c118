//go:build gocv

package colormask

import (
	"image"
	"slices"

	"gocv.io/x/gocv"
)

const backendName = "opencv"

// cvFinder converts, thresholds and traces contours with OpenCV. Mats are
// kept across frames and only reallocated by OpenCV when the size changes.
type cvFinder struct {
	bgr  gocv.Mat
	hsv  gocv.Mat
	mask gocv.Mat
	pix  []byte
}

func newRegionFinder() regionFinder {
	return &cvFinder{bgr: gocv.NewMat(), hsv: gocv.NewMat(), mask: gocv.NewMat()}
}

func (f *cvFinder) find(img *image.RGBA, rng Range) (*image.Gray, []Region) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, f.pack(img))
	if err != nil {
		// pack always yields h*w*4 bytes.
		panic("colormask: " + err.Error())
	}
	defer src.Close()

	gocv.CvtColor(src, &f.bgr, gocv.ColorRGBAToBGR)
	gocv.CvtColor(f.bgr, &f.hsv, gocv.ColorBGRToHSV)
	gocv.InRangeWithScalar(f.hsv, scalar(rng.Lower), scalar(rng.Upper), &f.mask)

	mask := image.NewGray(b)
	copy(mask.Pix, f.mask.ToBytes())

	contours := gocv.FindContours(f.mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	type traced struct {
		first  image.Point
		region Region
	}
	found := make([]traced, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		r := gocv.BoundingRect(contour)
		found = append(found, traced{
			first:  contour.At(0),
			region: Region{X: b.Min.X + r.Min.X, Y: b.Min.Y + r.Min.Y, Width: r.Dx(), Height: r.Dy()},
		})
	}

	// OpenCV lists contours last-found first. A contour starts at its
	// component's first pixel in raster order.
	slices.SortFunc(found, func(a, b traced) int {
		if a.first.Y != b.first.Y {
			return a.first.Y - b.first.Y
		}
		return a.first.X - b.first.X
	})

	regions := make([]Region, len(found))
	for i, t := range found {
		regions[i] = t.region
	}
	return mask, regions
}

// pack returns the pixels of img without row padding.
func (f *cvFinder) pack(img *image.RGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	if len(f.pix) != row*b.Dy() {
		f.pix = make([]byte, row*b.Dy())
	}
	for y := 0; y < b.Dy(); y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(f.pix[y*row:(y+1)*row], img.Pix[off:off+row])
	}
	return f.pix
}

func (f *cvFinder) close() {
	f.bgr.Close()
	f.hsv.Close()
	f.mask.Close()
}

func scalar(c HSV) gocv.Scalar {
	return gocv.NewScalar(float64(c.H), float64(c.S), float64(c.V), 0)
}
