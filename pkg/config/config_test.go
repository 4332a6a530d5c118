package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/user/vidmask/pkg/batch"
	"github.com/user/vidmask/pkg/ports"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vidmask.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults_Valid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	path := writeYAML(t, `
input: ./videos
output: ./masked
log_level: debug
mask:
  crf: 23
  intermediate_encoder: vidio
trim:
  cut_end: 2.5
batch:
  on_error: continue
  jobs: 2
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input != "./videos" || cfg.Output != "./masked" {
		t.Errorf("unexpected folders: %q %q", cfg.Input, cfg.Output)
	}
	if cfg.Mask.CRF != 23 || cfg.Mask.IntermediateEncoder != "vidio" {
		t.Errorf("unexpected mask config: %+v", cfg.Mask)
	}
	// Unset keys keep their defaults.
	if cfg.Mask.VideoCodec != "libx264" || cfg.Mask.IntermediateExt != ".avi" || !cfg.Mask.Verify {
		t.Errorf("defaults lost: %+v", cfg.Mask)
	}
	if cfg.Trim.CutEnd != 2.5 || cfg.Trim.CutStart != 0 {
		t.Errorf("unexpected trim config: %+v", cfg.Trim)
	}
	if cfg.Batch.Jobs != 2 {
		t.Errorf("unexpected jobs %d", cfg.Batch.Jobs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFromFile(writeYAML(t, "mask: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "verbose"
	cfg.Batch.OnError = "retry"
	cfg.Mask.IntermediateQuality = 2
	cfg.Trim.CutEnd = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, key := range []string{"log_level", "retry", "intermediate_quality", "cut_end"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to mention %q: %v", key, err)
		}
	}
}

func TestToMaskConfig(t *testing.T) {
	cfg := Defaults()
	cfg.TempDir = "/scratch"
	cfg.Mask.IntermediateBitrate = 8000
	cfg.Mask.Preset = "slow"

	got := cfg.ToMaskConfig()

	if got.TempDir != "/scratch" || got.IntermediateExt != ".avi" {
		t.Errorf("unexpected paths: %+v", got)
	}
	wantEnc := ports.EncoderOptions{Codec: "mpeg4", Bitrate: 8000000, Quality: 0.1}
	if diff := cmp.Diff(wantEnc, got.Intermediate); diff != "" {
		t.Errorf("intermediate mismatch (-want +got):\n%s", diff)
	}
	wantOut := ports.TranscodeOptions{VideoCodec: "libx264", AudioCodec: "aac", CRF: 18, Preset: "slow"}
	if diff := cmp.Diff(wantOut, got.Output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if got.DebugEvery != 0 {
		t.Errorf("debug disabled should not sample frames, got %d", got.DebugEvery)
	}
}

func TestToTrimConfig(t *testing.T) {
	cfg := Defaults()
	got := cfg.ToTrimConfig()

	if got.CutEnd != 4200*time.Millisecond {
		t.Errorf("cut_end = %s, want 4.2s", got.CutEnd)
	}
	if got.CutStart != 0 {
		t.Errorf("cut_start = %s, want 0", got.CutStart)
	}
}

func TestToBatchParams_PolicyDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Input = "/in"
	cfg.Output = "/out"

	if p := cfg.ToBatchParams(batch.ModeMask); p.OnError != batch.PolicyAbort {
		t.Errorf("mask policy = %q, want abort", p.OnError)
	}
	if p := cfg.ToBatchParams(batch.ModeTrim); p.OnError != batch.PolicyContinue {
		t.Errorf("trim policy = %q, want continue", p.OnError)
	}

	cfg.Batch.OnError = "continue"
	p := cfg.ToBatchParams(batch.ModeMask)
	if p.OnError != batch.PolicyContinue {
		t.Errorf("explicit policy = %q, want continue", p.OnError)
	}
	if p.InputDir != "/in" || p.OutputDir != "/out" || p.Jobs != 1 {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{0, 0},
		{4.2, 4200 * time.Millisecond},
		{0.0005, time.Millisecond},
		{-1.5, -1500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := Seconds(tt.in); got != tt.want {
			t.Errorf("Seconds(%g) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
