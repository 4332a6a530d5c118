// Package filesink writes debug snapshots of masking jobs as PNG files.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/vidmask/pkg/ports"
)

// Sink saves debug output under baseDir/<job>/.
type Sink struct {
	baseDir   string
	fs        ports.FileSystem
	annotator ports.Annotator
}

// New creates a Sink.
func New(baseDir string, fs ports.FileSystem, annotator ports.Annotator) *Sink {
	return &Sink{
		baseDir:   baseDir,
		fs:        fs,
		annotator: annotator,
	}
}

func (s *Sink) Enabled() bool {
	return true
}

// SaveMask writes mask-NNNNNN.png.
func (s *Sink) SaveMask(job string, index int, mask *image.Gray) error {
	return s.save(job, fmt.Sprintf("mask-%06d.png", index), mask)
}

// SaveDetections writes frame-NNNNNN.png with every rect outlined.
func (s *Sink) SaveDetections(job string, index int, frame image.Image, rects []image.Rectangle) error {
	return s.save(job, fmt.Sprintf("frame-%06d.png", index), s.annotator.Annotate(frame, rects))
}

func (s *Sink) save(job, name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, job)
	if err := s.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := s.annotator.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

var _ ports.DebugSink = (*Sink)(nil)
