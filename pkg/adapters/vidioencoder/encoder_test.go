package vidioencoder

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/vidmask/pkg/adapters/ffmpeg"
	"github.com/user/vidmask/pkg/adapters/vidiodecoder"
	"github.com/user/vidmask/pkg/ports"
)

func TestEncoder_NotInitialized(t *testing.T) {
	e := New()

	if err := e.EncodeFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if err := e.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestEncoder_RejectsInexactRate(t *testing.T) {
	e := New()

	err := e.Begin(filepath.Join(t.TempDir(), "x.avi"), 4, 4, ports.Rate{Num: 30000, Den: 1001}, ports.EncoderOptions{})
	if !errors.Is(err, ErrInexactRate) {
		t.Errorf("expected ErrInexactRate, got %v", err)
	}
	if e.writer != nil {
		t.Error("writer should not be created")
	}
}

func TestRepresentable(t *testing.T) {
	tests := []struct {
		rate ports.Rate
		want bool
	}{
		{ports.Rate{Num: 30, Den: 1}, true},
		{ports.Rate{Num: 25, Den: 2}, true},
		{ports.Rate{Num: 2997, Den: 100}, true},
		{ports.Rate{Num: 30000, Den: 1001}, false},
		{ports.Rate{Num: 24000, Den: 1001}, false},
		{ports.Rate{}, false},
	}

	for _, tt := range tests {
		if got := Representable(tt.rate); got != tt.want {
			t.Errorf("Representable(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestEncoder_PackSubImage(t *testing.T) {
	e := &Encoder{width: 2, height: 2}

	parent := image.NewRGBA(image.Rect(0, 0, 4, 4))
	parent.SetRGBA(1, 1, color.RGBA{R: 1, A: 255})
	parent.SetRGBA(2, 2, color.RGBA{B: 2, A: 255})
	sub := parent.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	got := e.pack(sub)
	if len(got) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(got))
	}
	if got[0] != 1 || got[14] != 2 {
		t.Errorf("unexpected packed pixels %v", got)
	}
}

func TestEncoderDecoder_RoundTrip(t *testing.T) {
	if !ffmpeg.IsAvailable() {
		t.Skip("ffmpeg not available")
	}

	path := filepath.Join(t.TempDir(), "silent.avi")

	enc := New()
	if err := enc.Begin(path, 64, 48, ports.Rate{Num: 10, Den: 1}, ports.EncoderOptions{Quality: 0.1}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	frame := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := 0; i < 15; i++ {
		for p := 0; p < len(frame.Pix); p += 4 {
			frame.Pix[p] = uint8(i * 10)
			frame.Pix[p+2] = 200
			frame.Pix[p+3] = 255
		}
		if err := enc.EncodeFrame(frame); err != nil {
			t.Fatalf("EncodeFrame failed: %v", err)
		}
	}
	if err := enc.EncodeFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("expected error for wrong frame size")
	}
	if err := enc.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	stream, err := vidiodecoder.New().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer stream.Close()

	info := stream.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", info.Width, info.Height)
	}
	if info.FPS != 10 {
		t.Errorf("expected 10 fps, got %f", info.FPS)
	}

	n := 0
	for {
		img, ok := stream.NextFrame()
		if !ok {
			break
		}
		if img.Bounds().Dx() != 64 {
			t.Fatalf("unexpected frame size %v", img.Bounds())
		}
		n++
	}
	if n != 15 {
		t.Errorf("expected 15 frames, got %d", n)
	}
}
