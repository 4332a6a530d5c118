package summarizer

import (
	"time"

	"github.com/user/vidmask/pkg/batch"
	"github.com/user/vidmask/pkg/pipeline"
)

// Summary contains everything reported about one batch run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `yaml:"generated_at"`

	Mode      string `yaml:"mode"`
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	Settings Settings    `yaml:"settings"`
	Totals   Totals      `yaml:"totals"`
	Files    []FileEntry `yaml:"files"`
}

// Settings contains the run configuration worth reporting.
type Settings struct {
	VideoCodec string `yaml:"video_codec,omitempty"`
	AudioCodec string `yaml:"audio_codec,omitempty"`
	CRF        int    `yaml:"crf,omitempty"`

	// Masking
	IntermediateCodec string `yaml:"intermediate_codec,omitempty"`

	// Trimming
	CutStart time.Duration `yaml:"cut_start,omitempty"`
	CutEnd   time.Duration `yaml:"cut_end,omitempty"`

	OnError string `yaml:"on_error,omitempty"`
	Jobs    int    `yaml:"jobs,omitempty"`
}

// Totals contains the aggregate counts of the run.
type Totals struct {
	Total     int           `yaml:"total"`
	Processed int           `yaml:"processed"`
	Failed    int           `yaml:"failed"`
	Skipped   int           `yaml:"skipped"`
	Elapsed   time.Duration `yaml:"elapsed"`
}

// FileEntry describes one processed file.
type FileEntry struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	OK      bool          `yaml:"ok"`
	Error   string        `yaml:"error,omitempty"`
	Stage   string        `yaml:"stage,omitempty"` // stage that failed, if known
	Elapsed time.Duration `yaml:"elapsed"`

	// Source
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	FPS    float64 `yaml:"fps,omitempty"`

	// Masking
	Frames            int  `yaml:"frames,omitempty"`
	FramesWithRegions int  `yaml:"frames_with_regions,omitempty"`
	Regions           int  `yaml:"regions,omitempty"`
	Truncated         bool `yaml:"truncated,omitempty"`
	VerifyMismatch    bool `yaml:"verify_mismatch,omitempty"`

	// Trimming
	SourceDuration time.Duration `yaml:"source_duration,omitempty"`
	Duration       time.Duration `yaml:"duration,omitempty"`

	FileSize int64 `yaml:"file_size,omitempty"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithReport copies the totals and per-file results of a batch report.
func (b *Builder) WithReport(report batch.Report) *Builder {
	b.summary.Mode = string(report.Mode)
	b.summary.InputDir = report.InputDir
	b.summary.OutputDir = report.OutputDir
	b.summary.Totals = Totals{
		Total:     report.Total,
		Processed: report.Processed,
		Failed:    report.Failed,
		Skipped:   report.Skipped,
		Elapsed:   report.Elapsed,
	}

	b.summary.Files = make([]FileEntry, 0, len(report.Files))
	for _, f := range report.Files {
		b.summary.Files = append(b.summary.Files, entryFromResult(f))
	}
	return b
}

// WithSettings sets the reported configuration.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

func entryFromResult(f batch.FileResult) FileEntry {
	e := FileEntry{
		Input:   f.InputPath,
		Output:  f.OutputPath,
		OK:      f.OK(),
		Elapsed: f.Elapsed,
	}
	if f.Err != nil {
		e.Error = f.Err.Error()
		e.Stage = pipeline.FailedStage(f.Err)
	}
	if m := f.Mask; m != nil {
		e.Width = m.Source.Width
		e.Height = m.Source.Height
		e.FPS = m.Source.FPS
		e.Frames = m.FramesProcessed
		e.FramesWithRegions = m.FramesWithRegions
		e.Regions = m.RegionsPainted
		e.Truncated = m.Truncated
		e.VerifyMismatch = m.VerifyMismatch
		e.SourceDuration = m.Source.Duration
		e.FileSize = m.FileSize
	}
	if t := f.Trim; t != nil {
		e.SourceDuration = t.SourceDuration
		e.Duration = t.Duration
		e.FileSize = t.FileSize
	}
	return e
}
