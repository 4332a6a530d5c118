// Package vidioencoder writes silent videos from RGBA frames through Vidio.
package vidioencoder

import (
	"fmt"
	"image"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/user/vidmask/pkg/ports"
)

// DefaultCodec is used when EncoderOptions.Codec is empty.
const DefaultCodec = "mpeg4"

// ErrNotInitialized is returned when frames are written before Begin.
var ErrNotInitialized = fmt.Errorf("vidioencoder: encoder not initialized")

// ErrInexactRate is returned for frame rates Vidio would round. Its writer
// formats the rate with two decimals, so 30000/1001 would become 29.97.
var ErrInexactRate = fmt.Errorf("vidioencoder: frame rate not representable")

// Encoder implements ports.VideoEncoder.
type Encoder struct {
	writer *vidio.VideoWriter
	width  int
	height int
	packed []byte
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin creates the output file.
func (e *Encoder) Begin(path string, width, height int, rate ports.Rate, opts ports.EncoderOptions) error {
	if e.writer != nil {
		return fmt.Errorf("vidioencoder: encoder already started")
	}
	if !Representable(rate) {
		return fmt.Errorf("%w: %s", ErrInexactRate, rate)
	}

	codec := opts.Codec
	if codec == "" {
		codec = DefaultCodec
	}

	writer, err := vidio.NewVideoWriter(path, width, height, &vidio.Options{
		FPS:     rate.Float(),
		Bitrate: opts.Bitrate,
		Quality: opts.Quality,
		Codec:   codec,
	})
	if err != nil {
		return fmt.Errorf("create video writer: %w", err)
	}

	e.writer = writer
	e.width = width
	e.height = height
	return nil
}

// EncodeFrame writes one frame.
func (e *Encoder) EncodeFrame(img *image.RGBA) error {
	if e.writer == nil {
		return ErrNotInitialized
	}

	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("vidioencoder: frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}

	if err := e.writer.Write(e.pack(img)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// End closes the writer and finalizes the file.
func (e *Encoder) End() error {
	if e.writer == nil {
		return ErrNotInitialized
	}
	e.writer.Close()
	e.writer = nil
	return nil
}

// Representable reports whether rate survives Vidio's two-decimal formatting.
func Representable(rate ports.Rate) bool {
	return rate.Valid() && (int64(rate.Num)*100)%int64(rate.Den) == 0
}

// pack returns the frame pixels without row padding.
func (e *Encoder) pack(img *image.RGBA) []byte {
	row := e.width * 4
	b := img.Bounds()
	if img.Stride == row {
		off := img.PixOffset(b.Min.X, b.Min.Y)
		return img.Pix[off : off+row*e.height]
	}

	if len(e.packed) != row*e.height {
		e.packed = make([]byte, row*e.height)
	}
	for y := 0; y < e.height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(e.packed[y*row:(y+1)*row], img.Pix[off:off+row])
	}
	return e.packed
}

var _ ports.VideoEncoder = (*Encoder)(nil)
