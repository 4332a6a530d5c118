// Package remux implements the stage that joins the masked silent video with
// the audio of the source file.
package remux

import (
	"context"
	"fmt"
	"time"

	"github.com/user/vidmask/pkg/pipeline"
	"github.com/user/vidmask/pkg/ports"
)

// Stage writes the final masked output.
type Stage struct {
	transcoder ports.Transcoder
	fs         ports.FileSystem
	logger     ports.Logger
}

// NewStage creates a new remux stage.
func NewStage(transcoder ports.Transcoder, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		transcoder: transcoder,
		fs:         fs,
		logger:     logger.WithComponent("remux"),
	}
}

// Execute combines input.VideoPath with the audio of input.AudioPath.
// A partial output is removed on failure.
func (s *Stage) Execute(ctx context.Context, input pipeline.RemuxInput) (pipeline.RemuxResult, error) {
	result := pipeline.RemuxResult{OutputPath: input.OutputPath}
	start := time.Now()

	s.logger.Debug("Remuxing %s with audio from %s", input.VideoPath, input.AudioPath)

	if err := s.transcoder.Remux(ctx, input.VideoPath, input.AudioPath, input.OutputPath, input.Options); err != nil {
		s.removePartial(input.OutputPath)
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrWrite, input.OutputPath, err)
	}

	size, err := s.fs.Size(input.OutputPath)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrWrite, input.OutputPath, err)
	}

	result.FileSize = size
	result.Elapsed = time.Since(start)
	s.logger.Debug("Remuxed %s: %d bytes", input.OutputPath, size)

	return result, nil
}

func (s *Stage) removePartial(path string) {
	if exists, _ := s.fs.Exists(path); exists {
		if err := s.fs.Remove(path); err != nil {
			s.logger.Warn("Failed to remove partial output %s: %v", path, err)
		}
	}
}
