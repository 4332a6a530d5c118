// Package trim implements the stage that drops the leading part of a video.
package trim

import (
	"context"
	"fmt"
	"time"

	"github.com/user/vidmask/pkg/pipeline"
	"github.com/user/vidmask/pkg/ports"
)

// Stage trims one video.
type Stage struct {
	prober     ports.Prober
	transcoder ports.Transcoder
	fs         ports.FileSystem
	logger     ports.Logger
}

// NewStage creates a new trim stage.
func NewStage(prober ports.Prober, transcoder ports.Transcoder, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		prober:     prober,
		transcoder: transcoder,
		fs:         fs,
		logger:     logger.WithComponent("trim"),
	}
}

// Execute keeps [CutEnd, duration] of the input. CutEnd is clamped to the
// source duration; a range shorter than one frame is rejected with
// pipeline.ErrEmptyRange and nothing is written. CutStart is not applied.
func (s *Stage) Execute(ctx context.Context, input pipeline.TrimInput) (pipeline.TrimResult, error) {
	var result pipeline.TrimResult
	start := time.Now()

	if input.CutEnd < 0 {
		return result, fmt.Errorf("%w: %s: cut_end %s is negative", pipeline.ErrInvalidRange, input.InputPath, input.CutEnd)
	}
	if input.CutStart != 0 {
		s.logger.Warn("cut_start (%s) is accepted but not applied; the kept range starts at cut_end", input.CutStart)
	}

	info, err := s.prober.Probe(ctx, input.InputPath)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrOpen, input.InputPath, err)
	}
	if info.Duration <= 0 {
		return result, fmt.Errorf("%w: %s: unknown duration", pipeline.ErrOpen, input.InputPath)
	}
	result.SourceDuration = info.Duration

	cut := input.CutEnd
	if cut > info.Duration {
		s.logger.Debug("Clamping cut_end %s to duration %s", cut, info.Duration)
		cut = info.Duration
		result.Clamped = true
	}
	result.CutEnd = cut

	remaining := info.Duration - cut
	if remaining <= 0 || remaining < frameInterval(info.FPS) {
		return result, fmt.Errorf("%w: %s: cut_end %s leaves nothing of %s",
			pipeline.ErrEmptyRange, input.InputPath, cut, info.Duration)
	}
	result.Duration = remaining

	s.logger.Debug("Cutting %s from %s, keeping %s", input.InputPath, cut, remaining)

	if err := s.transcoder.Cut(ctx, input.InputPath, input.OutputPath, cut, input.Options); err != nil {
		if exists, _ := s.fs.Exists(input.OutputPath); exists {
			_ = s.fs.Remove(input.OutputPath)
		}
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

	return result, nil
}

func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
