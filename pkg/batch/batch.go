// Package batch walks an input folder and runs a masking or trim job for
// every video file in it.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/vidmask/pkg/orchestrator"
	"github.com/user/vidmask/pkg/ports"
)

// Mode selects the per-file pipeline.
type Mode string

const (
	ModeMask Mode = "mask"
	ModeTrim Mode = "trim"
)

// FailurePolicy decides what happens after a file fails.
type FailurePolicy string

const (
	// PolicyAbort stops the batch at the first failure.
	PolicyAbort FailurePolicy = "abort"
	// PolicyContinue logs the failure and moves on.
	PolicyContinue FailurePolicy = "continue"
)

// ParseFailurePolicy parses "abort" or "continue".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAbort:
		return PolicyAbort, nil
	case PolicyContinue:
		return PolicyContinue, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (want abort or continue)", s)
	}
}

// Extensions lists the file extensions picked up from the input folder,
// compared case-insensitively.
var Extensions = []string{".mp4", ".avi", ".mov"}

// TrimPrefix is prepended to the file name of trimmed outputs.
const TrimPrefix = "processed_"

// MaskRunner runs one masking job.
type MaskRunner interface {
	Run(ctx context.Context, config orchestrator.MaskConfig) (orchestrator.MaskRunResult, error)
}

// TrimRunner runs one trim job.
type TrimRunner interface {
	Run(ctx context.Context, config orchestrator.TrimConfig) (orchestrator.TrimRunResult, error)
}

// Params configures one batch run. Mask and Trim are templates: the runner
// fills in the input and output paths per file.
type Params struct {
	InputDir  string
	OutputDir string
	Mode      Mode

	Mask orchestrator.MaskConfig
	Trim orchestrator.TrimConfig

	OnError FailurePolicy
	// Jobs is the number of files processed at once. Values below 2 run the
	// batch sequentially.
	Jobs int
}

// FileResult is the outcome of one file.
type FileResult struct {
	InputPath  string
	OutputPath string
	Elapsed    time.Duration
	Err        error

	Mask *orchestrator.MaskRunResult
	Trim *orchestrator.TrimRunResult
}

// OK reports whether the file was processed successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Report summarizes a batch run.
type Report struct {
	Mode      Mode
	InputDir  string
	OutputDir string

	Total     int
	Processed int
	Failed    int
	// Skipped counts files never started because the batch was aborted.
	Skipped int

	Files   []FileResult
	Elapsed time.Duration
}

// Runner processes folders.
type Runner struct {
	mask   MaskRunner
	trim   TrimRunner
	fs     ports.FileSystem
	logger ports.Logger
}

// NewRunner creates a new Runner. Either job runner may be nil when the
// corresponding mode is never used.
func NewRunner(mask MaskRunner, trim TrimRunner, fs ports.FileSystem, logger ports.Logger) *Runner {
	return &Runner{
		mask:   mask,
		trim:   trim,
		fs:     fs,
		logger: logger,
	}
}

// Discover returns the video files directly inside dir, in listing order.
func Discover(fs ports.FileSystem, dir string) ([]string, error) {
	names, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, name := range names {
		if isVideo(name) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

func isVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// OutputPath returns the output location of input for mode.
func OutputPath(mode Mode, outputDir, input string) string {
	name := filepath.Base(input)
	if mode == ModeTrim {
		name = TrimPrefix + name
	}
	return filepath.Join(outputDir, name)
}

// Run processes every video of params.InputDir. The returned error is
// non-nil when the batch was aborted or could not start; with
// PolicyContinue individual failures are only recorded in the report.
func (r *Runner) Run(ctx context.Context, params Params) (Report, error) {
	start := time.Now()
	report := Report{Mode: params.Mode, InputDir: params.InputDir, OutputDir: params.OutputDir}

	switch params.Mode {
	case ModeMask:
		if r.mask == nil {
			return report, errors.New("mask mode is not configured")
		}
	case ModeTrim:
		if r.trim == nil {
			return report, errors.New("trim mode is not configured")
		}
	default:
		return report, fmt.Errorf("unknown mode %q", params.Mode)
	}

	if err := r.fs.MkdirAll(params.OutputDir); err != nil {
		return report, fmt.Errorf("create output folder %s: %w", params.OutputDir, err)
	}

	inputs, err := Discover(r.fs, params.InputDir)
	if err != nil {
		return report, fmt.Errorf("list input folder %s: %w", params.InputDir, err)
	}
	report.Total = len(inputs)
	if len(inputs) == 0 {
		r.logger.Info("No video files found in %s", params.InputDir)
		report.Elapsed = time.Since(start)
		return report, nil
	}

	var runErr error
	if params.Jobs > 1 {
		runErr = r.runParallel(ctx, params, inputs, &report)
	} else {
		runErr = r.runSequential(ctx, params, inputs, &report)
	}

	report.Skipped = report.Total - len(report.Files)
	report.Elapsed = time.Since(start)
	r.logger.Info("Processed %d of %d videos (%d failed) in %s",
		report.Processed, report.Total, report.Failed, report.Elapsed.Round(time.Millisecond))

	return report, runErr
}

func (r *Runner) runSequential(ctx context.Context, params Params, inputs []string, report *Report) error {
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := r.process(ctx, params, i, len(inputs), input)
		report.add(res)
		if res.Err != nil && r.stops(params, res.Err) {
			return fmt.Errorf("%s: %w", input, res.Err)
		}
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, params Params, inputs []string, report *Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(params.Jobs)

	results := make([]*FileResult, len(inputs))
	var mu sync.Mutex

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := r.process(gctx, params, i, len(inputs), input)
			mu.Lock()
			results[i] = &res
			mu.Unlock()
			if res.Err != nil && r.stops(params, res.Err) {
				return fmt.Errorf("%s: %w", input, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()

	for _, res := range results {
		if res != nil {
			report.add(*res)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// stops reports whether a failure ends the batch.
func (r *Runner) stops(params Params, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return params.OnError != PolicyContinue
}

func (r *Runner) process(ctx context.Context, params Params, index, total int, input string) FileResult {
	start := time.Now()
	output := OutputPath(params.Mode, params.OutputDir, input)
	res := FileResult{InputPath: input, OutputPath: output}

	r.logger.Info("Processing video %d/%d: %s", index+1, total, input)

	switch params.Mode {
	case ModeMask:
		config := params.Mask
		config.InputPath = input
		config.OutputPath = output
		out, err := r.mask.Run(ctx, config)
		res.Mask = &out
		res.Err = err
	case ModeTrim:
		config := params.Trim
		config.InputPath = input
		config.OutputPath = output
		out, err := r.trim.Run(ctx, config)
		res.Trim = &out
		res.Err = err
	}
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		r.logger.Error("Failed to process %s: %v", input, res.Err)
	} else {
		r.logger.Info("Finished %s -> %s in %s", input, output, res.Elapsed.Round(time.Millisecond))
	}
	return res
}

func (rep *Report) add(res FileResult) {
	rep.Files = append(rep.Files, res)
	if res.Err != nil {
		rep.Failed++
	} else {
		rep.Processed++
	}
}
