// Package orchestrator runs the per-file jobs: masking (mask stage followed
// by remux) and trimming.
package orchestrator

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/vidmask/pkg/colormask"
	"github.com/user/vidmask/pkg/pipeline"
	"github.com/user/vidmask/pkg/ports"
)

// MaskConfig contains the configuration of one masking job.
type MaskConfig struct {
	InputPath  string
	OutputPath string

	// TempDir holds the silent intermediate. Empty means the output directory.
	TempDir         string
	IntermediateExt string
	Intermediate    ports.EncoderOptions

	Range  colormask.Range
	Output ports.TranscodeOptions

	DebugEvery int
	Verify     bool
}

// DefaultMaskConfig returns a MaskConfig with default values.
func DefaultMaskConfig() MaskConfig {
	return MaskConfig{
		IntermediateExt: ".avi",
		Intermediate: ports.EncoderOptions{
			Codec:   "mpeg4",
			Quality: 0.1,
		},
		Range: colormask.YellowRange,
		Output: ports.TranscodeOptions{
			VideoCodec: "libx264",
			AudioCodec: "aac",
			CRF:        18,
		},
		Verify: true,
	}
}

// MaskJob masks one file: it runs the mask stage into a per-job intermediate,
// remuxes the intermediate with the source audio and removes the intermediate.
type MaskJob struct {
	maskStage  pipeline.Stage[pipeline.MaskInput, pipeline.MaskResult]
	remuxStage pipeline.Stage[pipeline.RemuxInput, pipeline.RemuxResult]
	prober     ports.Prober
	fs         ports.FileSystem
	logger     ports.Logger
	newID      func() string
}

// NewMaskJob creates a new MaskJob. prober may be nil, which disables
// output verification.
func NewMaskJob(
	maskStage pipeline.Stage[pipeline.MaskInput, pipeline.MaskResult],
	remuxStage pipeline.Stage[pipeline.RemuxInput, pipeline.RemuxResult],
	prober ports.Prober,
	fs ports.FileSystem,
	logger ports.Logger,
) *MaskJob {
	return &MaskJob{
		maskStage:  maskStage,
		remuxStage: remuxStage,
		prober:     prober,
		fs:         fs,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// MaskRunResult contains the results of a masking job for summary generation.
type MaskRunResult struct {
	InputPath  string
	OutputPath string

	Source            ports.VideoInfo
	FramesProcessed   int
	FramesWithRegions int
	RegionsPainted    int
	Truncated         bool

	FileSize int64
	// VerifyMismatch is set when the probed output disagrees with the source.
	VerifyMismatch bool
	Elapsed        time.Duration
}

// Run executes the masking job. The intermediate file is removed on every
// return path.
func (j *MaskJob) Run(ctx context.Context, config MaskConfig) (MaskRunResult, error) {
	start := time.Now()
	result := MaskRunResult{InputPath: config.InputPath, OutputPath: config.OutputPath}

	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = filepath.Dir(config.OutputPath)
	}
	temp := IntermediatePath(tempDir, config.InputPath, config.IntermediateExt, j.newID())
	defer j.cleanup(temp)

	masked, err := pipeline.Run(ctx, "mask", j.maskStage, pipeline.MaskInput{
		InputPath:        config.InputPath,
		IntermediatePath: temp,
		Range:            config.Range,
		Encoder:          config.Intermediate,
		DebugEvery:       config.DebugEvery,
	})
	if err != nil {
		return result, err
	}
	result.Source = masked.Source
	result.FramesProcessed = masked.FramesProcessed
	result.FramesWithRegions = masked.FramesWithRegions
	result.RegionsPainted = masked.RegionsPainted
	result.Truncated = masked.Truncation != nil

	output := config.Output
	output.FrameRate = masked.Source.Rate
	remuxed, err := pipeline.Run(ctx, "remux", j.remuxStage, pipeline.RemuxInput{
		VideoPath:  temp,
		AudioPath:  config.InputPath,
		OutputPath: config.OutputPath,
		Options:    output,
	})
	if err != nil {
		return result, err
	}
	result.FileSize = remuxed.FileSize

	if config.Verify && j.prober != nil {
		result.VerifyMismatch = j.verify(ctx, config.OutputPath, masked)
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// verify probes the output and warns when its geometry, frame rate or frame
// count differs from what was masked.
func (j *MaskJob) verify(ctx context.Context, path string, masked pipeline.MaskResult) bool {
	info, err := j.prober.Probe(ctx, path)
	if err != nil {
		j.logger.Warn("Could not verify %s: %v", path, err)
		return true
	}

	mismatch := false
	if info.Width != masked.Source.Width || info.Height != masked.Source.Height {
		j.logger.Warn("%s: output is %dx%d, source is %dx%d",
			path, info.Width, info.Height, masked.Source.Width, masked.Source.Height)
		mismatch = true
	}
	if !sameRate(info, masked.Source) {
		j.logger.Warn("%s: output runs at %s fps, source at %s fps",
			path, describeRate(info), describeRate(masked.Source))
		mismatch = true
	}
	if info.FrameCount > 0 && absInt(info.FrameCount-masked.FramesProcessed) > 1 {
		j.logger.Warn("%s: output has %d frames, %d were masked",
			path, info.FrameCount, masked.FramesProcessed)
		mismatch = true
	}
	return mismatch
}

// rateTolerance is the relative fps difference accepted when either side
// has no exact rate. 29.97 against 30000/1001 is off by 1e-6.
const rateTolerance = 1e-7

// sameRate compares exact rates when both are known, floats otherwise.
// An output without any rate information is not a mismatch.
func sameRate(out, src ports.VideoInfo) bool {
	if out.Rate.Valid() && src.Rate.Valid() {
		return out.Rate.Equal(src.Rate)
	}
	if out.FPS <= 0 || src.FPS <= 0 {
		return true
	}
	return math.Abs(out.FPS-src.FPS) <= rateTolerance*src.FPS
}

func describeRate(info ports.VideoInfo) string {
	if info.Rate.Valid() {
		return info.Rate.String()
	}
	return strconv.FormatFloat(info.FPS, 'f', -1, 64)
}

func (j *MaskJob) cleanup(path string) {
	exists, err := j.fs.Exists(path)
	if err != nil || !exists {
		return
	}
	if err := j.fs.Remove(path); err != nil {
		j.logger.Warn("Failed to remove intermediate %s: %v", path, err)
	}
}

// IntermediatePath returns the per-job silent video path
// <dir>/.<name>.<id>.mask<ext>, where name is the input file name without
// its extension.
func IntermediatePath(dir, input, ext, id string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if ext == "" {
		ext = ".avi"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(dir, "."+name+"."+id+".mask"+ext)
}

// TrimConfig contains the configuration of one trim job.
type TrimConfig struct {
	InputPath  string
	OutputPath string
	CutStart   time.Duration
	CutEnd     time.Duration
	Options    ports.TranscodeOptions
}

// DefaultTrimConfig returns a TrimConfig with default values.
func DefaultTrimConfig() TrimConfig {
	return TrimConfig{
		CutEnd: 4200 * time.Millisecond,
		Options: ports.TranscodeOptions{
			VideoCodec: "libx264",
			AudioCodec: "aac",
			CRF:        18,
		},
	}
}

// TrimJob trims one file.
type TrimJob struct {
	trimStage pipeline.Stage[pipeline.TrimInput, pipeline.TrimResult]
	logger    ports.Logger
}

// NewTrimJob creates a new TrimJob.
func NewTrimJob(trimStage pipeline.Stage[pipeline.TrimInput, pipeline.TrimResult], logger ports.Logger) *TrimJob {
	return &TrimJob{trimStage: trimStage, logger: logger}
}

// TrimRunResult contains the results of a trim job for summary generation.
type TrimRunResult struct {
	InputPath      string
	OutputPath     string
	CutStart       time.Duration
	CutEnd         time.Duration
	SourceDuration time.Duration
	Duration       time.Duration
	FileSize       int64
	Elapsed        time.Duration
}

// Run executes the trim job.
func (j *TrimJob) Run(ctx context.Context, config TrimConfig) (TrimRunResult, error) {
	start := time.Now()
	result := TrimRunResult{
		InputPath:  config.InputPath,
		OutputPath: config.OutputPath,
		CutStart:   config.CutStart,
	}

	trimmed, err := pipeline.Run(ctx, "trim", j.trimStage, pipeline.TrimInput{
		InputPath:  config.InputPath,
		OutputPath: config.OutputPath,
		CutStart:   config.CutStart,
		CutEnd:     config.CutEnd,
		Options:    config.Options,
	})
	if err != nil {
		return result, err
	}
	j.logger.Debug("Trimmed %s: kept %s of %s", config.InputPath, trimmed.Duration, trimmed.SourceDuration)

	result.CutEnd = trimmed.CutEnd
	result.SourceDuration = trimmed.SourceDuration
	result.Duration = trimmed.Duration
	result.FileSize = trimmed.FileSize
	result.Elapsed = time.Since(start)
	return result, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
