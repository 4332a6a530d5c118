package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/vidmask/pkg/mocks"
)

var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	if !New(testBaseDir, mocks.NewFileSystem(), &mocks.Annotator{}).Enabled() {
		t.Error("expected file sink to be enabled")
	}
	if (Discard{}).Enabled() {
		t.Error("expected discard sink to be disabled")
	}
}

func TestSink_SaveMask(t *testing.T) {
	fs := mocks.NewFileSystem()
	annotator := &mocks.Annotator{
		EncodePNGFunc: func(img image.Image) ([]byte, error) { return []byte("mask"), nil },
	}
	sink := New(testBaseDir, fs, annotator)

	if err := sink.SaveMask("clip", 7, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("SaveMask failed: %v", err)
	}

	if len(annotator.Boxes) != 0 {
		t.Error("mask must not be annotated")
	}
	saved, ok := fs.GetFile(filepath.Join(testBaseDir, "clip", "mask-000007.png"))
	if !ok {
		t.Fatal("expected mask file to be saved")
	}
	if string(saved) != "mask" {
		t.Errorf("unexpected content %q", saved)
	}
}

func TestSink_SaveDetections(t *testing.T) {
	fs := mocks.NewFileSystem()
	annotator := &mocks.Annotator{}
	sink := New(testBaseDir, fs, annotator)

	rects := []image.Rectangle{
		image.Rect(100, 100, 151, 151),
		image.Rect(10, 20, 31, 41),
	}
	if err := sink.SaveDetections("clip", 0, image.NewRGBA(image.Rect(0, 0, 320, 240)), rects); err != nil {
		t.Fatalf("SaveDetections failed: %v", err)
	}

	if diff := cmp.Diff([][]image.Rectangle{rects}, annotator.Boxes); diff != "" {
		t.Errorf("annotated boxes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]image.Rectangle{image.Rect(0, 0, 320, 240)}, annotator.Encoded); diff != "" {
		t.Errorf("encoded images mismatch (-want +got):\n%s", diff)
	}
	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "clip", "frame-000000.png")); !ok {
		t.Error("expected detections frame to be saved")
	}
}

func TestSink_SaveDetections_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	annotator := &mocks.Annotator{
		EncodePNGFunc: func(img image.Image) ([]byte, error) { return nil, errors.New("boom") },
	}
	sink := New(testBaseDir, fs, annotator)

	if err := sink.SaveDetections("clip", 1, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err == nil {
		t.Fatal("expected error")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no file to be written")
	}
}

func TestSink_MkdirError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.MkdirAllFunc = func(path string) error { return errors.New("read-only") }
	sink := New(testBaseDir, fs, &mocks.Annotator{})

	if err := sink.SaveMask("clip", 0, image.NewGray(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error when directory cannot be created")
	}
}

func TestDiscard(t *testing.T) {
	var d Discard
	if err := d.SaveMask("clip", 0, nil); err != nil {
		t.Errorf("SaveMask: %v", err)
	}
	if err := d.SaveDetections("clip", 0, nil, nil); err != nil {
		t.Errorf("SaveDetections: %v", err)
	}
}
