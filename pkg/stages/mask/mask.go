// Package mask implements the frame masking stage: every decoded frame is
// thresholded, its external color regions are painted white and the result
// is appended to a silent intermediate video.
package mask

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/vidmask/pkg/colormask"
	"github.com/user/vidmask/pkg/pipeline"
	"github.com/user/vidmask/pkg/ports"
	"github.com/user/vidmask/pkg/progress"
)

// Stage masks one video.
type Stage struct {
	decoder  ports.VideoDecoder
	encoder  ports.VideoEncoder
	progress ports.ProgressReporter
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new mask stage.
func NewStage(decoder ports.VideoDecoder, encoder ports.VideoEncoder, progress ports.ProgressReporter, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		decoder:  decoder,
		encoder:  encoder,
		progress: progress,
		sink:     sink,
		logger:   logger.WithComponent("mask"),
	}
}

// Execute decodes, masks and re-encodes every frame of input.InputPath.
// The encoder is always finalized, so the intermediate file is closed on
// every return path.
func (s *Stage) Execute(ctx context.Context, input pipeline.MaskInput) (result pipeline.MaskResult, err error) {
	estimator := progress.NewEstimator(input.InputPath, 0)

	stream, err := s.decoder.Open(input.InputPath)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrOpen, input.InputPath, err)
	}
	defer stream.Close()
	defer s.progress.Finish(input.InputPath)

	info := stream.Info()
	if !info.Rate.Valid() {
		info.Rate = ports.RateFromFloat(info.FPS)
	}
	result.Source = info
	if info.Width <= 0 || info.Height <= 0 || !info.Rate.Valid() {
		return result, fmt.Errorf("%w: %s: invalid stream %dx%d at %.3f fps",
			pipeline.ErrOpen, input.InputPath, info.Width, info.Height, info.FPS)
	}

	s.logger.Debug("Masking %s: %dx%d, %s fps, %d frames (%s detector)",
		input.InputPath, info.Width, info.Height, info.Rate, info.FrameCount, colormask.Backend())

	if err := s.encoder.Begin(input.IntermediatePath, info.Width, info.Height, info.Rate, input.Encoder); err != nil {
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrWrite, input.IntermediatePath, err)
	}
	ended := false
	defer func() {
		if !ended {
			_ = s.encoder.End()
		}
	}()

	detector := colormask.NewDetector(input.Range)
	defer detector.Close()
	estimator.SetTotal(info.FrameCount)
	job := filepath.Base(input.InputPath)
	debugged := false

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frame, ok := stream.NextFrame()
		if !ok {
			break
		}
		index := result.FramesProcessed

		regions := detector.Detect(frame)
		if len(regions) > 0 && s.sink.Enabled() && (!debugged || (input.DebugEvery > 0 && index%input.DebugEvery == 0)) {
			s.saveDebug(job, index, frame, detector.LastMask(), regions)
			debugged = true
		}
		colormask.Paint(frame, regions)

		if err := s.encoder.EncodeFrame(frame); err != nil {
			return result, fmt.Errorf("%w: %s: frame %d: %w", pipeline.ErrWrite, input.IntermediatePath, index, err)
		}

		result.FramesProcessed++
		if len(regions) > 0 {
			result.FramesWithRegions++
			result.RegionsPainted += len(regions)
		}
		s.progress.OnProgress(estimator.Update(result.FramesProcessed))
	}

	if result.FramesProcessed == 0 {
		return result, fmt.Errorf("%w: %s", pipeline.ErrNoFrames, input.InputPath)
	}
	if info.FrameCount > 0 && result.FramesProcessed < info.FrameCount {
		result.Truncation = fmt.Errorf("%w after %d of %d frames", pipeline.ErrDecode, result.FramesProcessed, info.FrameCount)
		s.logger.Warn("%s: %v, treating as end of stream", input.InputPath, result.Truncation)
	}

	ended = true
	if err := s.encoder.End(); err != nil {
		return result, fmt.Errorf("%w: %s: %w", pipeline.ErrWrite, input.IntermediatePath, err)
	}

	result.Elapsed = estimator.Elapsed()
	s.logger.Debug("Masked %d frames, %d with regions, %d regions painted",
		result.FramesProcessed, result.FramesWithRegions, result.RegionsPainted)

	return result, nil
}

func (s *Stage) saveDebug(job string, index int, frame *image.RGBA, mask *image.Gray, regions []colormask.Region) {
	rects := make([]image.Rectangle, len(regions))
	for i, r := range regions {
		rects[i] = r.FillRect()
	}
	if err := s.sink.SaveDetections(job, index, frame, rects); err != nil {
		s.logger.Warn("Failed to save debug frame %d: %v", index, err)
	}
	if err := s.sink.SaveMask(job, index, mask); err != nil {
		s.logger.Warn("Failed to save debug mask %d: %v", index, err)
	}
}
