// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/vidmask/pkg/batch"
	"github.com/user/vidmask/pkg/orchestrator"
	"github.com/user/vidmask/pkg/ports"
)

// Config represents the full configuration for vidmask.
type Config struct {
	// Input/Output
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	TempDir string `yaml:"temp_dir"`
	Report  string `yaml:"report"`

	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Logging
	LogLevel string `yaml:"log_level"`

	Mask  MaskConfig  `yaml:"mask"`
	Trim  TrimConfig  `yaml:"trim"`
	Batch BatchConfig `yaml:"batch"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"`
}

// MaskConfig represents the masking pipeline settings.
type MaskConfig struct {
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
	CRF        int    `yaml:"crf"`
	Preset     string `yaml:"preset"`

	// IntermediateEncoder is "ffmpeg" or "vidio". Vidio rounds the frame
	// rate to two decimals and refuses sources it cannot store exactly.
	IntermediateEncoder string  `yaml:"intermediate_encoder"`
	IntermediateCodec   string  `yaml:"intermediate_codec"`
	IntermediateExt     string  `yaml:"intermediate_ext"`
	IntermediateQuality float64 `yaml:"intermediate_quality"`
	IntermediateBitrate int     `yaml:"intermediate_bitrate"` // kbps, 0 = quality based

	Verify bool `yaml:"verify"`
}

// TrimConfig represents the trim pipeline settings. Cut points are seconds.
type TrimConfig struct {
	CutStart   float64 `yaml:"cut_start"`
	CutEnd     float64 `yaml:"cut_end"`
	VideoCodec string  `yaml:"video_codec"`
	AudioCodec string  `yaml:"audio_codec"`
	CRF        int     `yaml:"crf"`
	Preset     string  `yaml:"preset"`
}

// BatchConfig represents folder processing settings. An empty OnError
// selects the default of the mode.
type BatchConfig struct {
	OnError string `yaml:"on_error"`
	Jobs    int    `yaml:"jobs"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel: "info",

		Mask: MaskConfig{
			VideoCodec:          "libx264",
			AudioCodec:          "aac",
			CRF:                 18,
			IntermediateEncoder: "ffmpeg",
			IntermediateCodec:   "mpeg4",
			IntermediateExt:     ".avi",
			IntermediateQuality: 0.1,
			Verify:              true,
		},

		Trim: TrimConfig{
			CutStart:   0,
			CutEnd:     4.2,
			VideoCodec: "libx264",
			AudioCodec: "aac",
			CRF:        18,
		},

		Batch: BatchConfig{
			Jobs: 1,
		},

		DebugDir:   "./debug",
		DebugEvery: 0,
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that cannot be used as given.
func (c Config) Validate() error {
	var errs []error

	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Batch.OnError != "" {
		if _, err := batch.ParseFailurePolicy(c.Batch.OnError); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Batch.Jobs < 0 {
		errs = append(errs, fmt.Errorf("batch.jobs must not be negative, got %d", c.Batch.Jobs))
	}
	switch strings.ToLower(c.Mask.IntermediateEncoder) {
	case "", "vidio", "ffmpeg":
	default:
		errs = append(errs, fmt.Errorf("mask.intermediate_encoder must be vidio or ffmpeg, got %q", c.Mask.IntermediateEncoder))
	}
	if q := c.Mask.IntermediateQuality; q < 0 || q > 1 {
		errs = append(errs, fmt.Errorf("mask.intermediate_quality must be within [0, 1], got %g", q))
	}
	if c.Mask.CRF < 0 || c.Mask.CRF > 51 {
		errs = append(errs, fmt.Errorf("mask.crf must be within [0, 51], got %d", c.Mask.CRF))
	}
	if c.Trim.CRF < 0 || c.Trim.CRF > 51 {
		errs = append(errs, fmt.Errorf("trim.crf must be within [0, 51], got %d", c.Trim.CRF))
	}
	if c.Trim.CutEnd < 0 {
		errs = append(errs, fmt.Errorf("trim.cut_end must not be negative, got %g", c.Trim.CutEnd))
	}
	if c.DebugEvery < 0 {
		errs = append(errs, fmt.Errorf("debug_every must not be negative, got %d", c.DebugEvery))
	}

	return errors.Join(errs...)
}

// ToMaskConfig converts Config to the per-file masking template.
func (c Config) ToMaskConfig() orchestrator.MaskConfig {
	cfg := orchestrator.DefaultMaskConfig()
	cfg.TempDir = c.TempDir
	cfg.IntermediateExt = c.Mask.IntermediateExt
	cfg.Intermediate = ports.EncoderOptions{
		Codec:   c.Mask.IntermediateCodec,
		Bitrate: c.Mask.IntermediateBitrate * 1000,
		Quality: c.Mask.IntermediateQuality,
	}
	cfg.Output = ports.TranscodeOptions{
		VideoCodec: c.Mask.VideoCodec,
		AudioCodec: c.Mask.AudioCodec,
		CRF:        c.Mask.CRF,
		Preset:     c.Mask.Preset,
	}
	cfg.Verify = c.Mask.Verify
	if c.Debug {
		cfg.DebugEvery = c.DebugEvery
	}
	return cfg
}

// ToTrimConfig converts Config to the per-file trim template.
func (c Config) ToTrimConfig() orchestrator.TrimConfig {
	return orchestrator.TrimConfig{
		CutStart: Seconds(c.Trim.CutStart),
		CutEnd:   Seconds(c.Trim.CutEnd),
		Options: ports.TranscodeOptions{
			VideoCodec: c.Trim.VideoCodec,
			AudioCodec: c.Trim.AudioCodec,
			CRF:        c.Trim.CRF,
			Preset:     c.Trim.Preset,
		},
	}
}

// ToBatchParams converts Config to batch parameters for mode.
func (c Config) ToBatchParams(mode batch.Mode) batch.Params {
	policy := batch.PolicyAbort
	if mode == batch.ModeTrim {
		policy = batch.PolicyContinue
	}
	if c.Batch.OnError != "" {
		if p, err := batch.ParseFailurePolicy(c.Batch.OnError); err == nil {
			policy = p
		}
	}

	return batch.Params{
		InputDir:  c.Input,
		OutputDir: c.Output,
		Mode:      mode,
		Mask:      c.ToMaskConfig(),
		Trim:      c.ToTrimConfig(),
		OnError:   policy,
		Jobs:      c.Batch.Jobs,
	}
}

// Seconds converts fractional seconds to a Duration, rounded to the
// nearest millisecond.
func Seconds(s float64) time.Duration {
	return (time.Duration(s*1000+0.5*sign(s)) * time.Millisecond)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
