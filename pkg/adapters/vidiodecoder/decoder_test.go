package vidiodecoder

import (
	"path/filepath"
	"testing"

	"github.com/user/vidmask/pkg/adapters/ffmpeg"
)

func TestDecoder_OpenMissing(t *testing.T) {
	if !ffmpeg.IsAvailable() {
		t.Skip("ffmpeg not available")
	}

	if _, err := New().Open(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStream_CloseIsIdempotent(t *testing.T) {
	s := &stream{closed: true}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, ok := s.NextFrame(); ok {
		t.Error("closed stream must not yield frames")
	}
}
