package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/user/vidmask/pkg/ports"
)

// stderrTail bounds how much ffmpeg output is kept in error messages.
const stderrTail = 2048

// Transcoder implements ports.Transcoder with the ffmpeg binary.
type Transcoder struct {
	ffmpegPath string
	logger     ports.Logger
}

// NewTranscoder locates ffmpeg (see FindFFmpeg) and returns a Transcoder.
func NewTranscoder(customPath string, logger ports.Logger) (*Transcoder, error) {
	path, err := FindFFmpeg(customPath)
	if err != nil {
		return nil, err
	}
	return &Transcoder{ffmpegPath: path, logger: logger.WithComponent("ffmpeg")}, nil
}

// Remux writes output with the first video stream of videoPath and the
// first audio stream of audioPath, if any. The output ends with the shorter
// of the two streams.
func (t *Transcoder) Remux(ctx context.Context, videoPath, audioPath, output string, opts ports.TranscodeOptions) error {
	return t.run(ctx, RemuxArgs(videoPath, audioPath, output, opts))
}

// Cut re-encodes input from start to its end. The seek is applied after the
// input so the cut is frame accurate.
func (t *Transcoder) Cut(ctx context.Context, input, output string, start time.Duration, opts ports.TranscodeOptions) error {
	return t.run(ctx, CutArgs(input, output, start, opts))
}

func (t *Transcoder) run(ctx context.Context, args []string) error {
	t.logger.Debug("Running ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w\nstderr: %s", err, tail(stderr.String()))
	}
	return nil
}

// RemuxArgs builds the ffmpeg arguments for Remux.
func RemuxArgs(videoPath, audioPath, output string, opts ports.TranscodeOptions) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0?",
	}
	args = append(args, codecArgs(opts)...)
	return append(args, "-shortest", output)
}

// CutArgs builds the ffmpeg arguments for Cut.
func CutArgs(input, output string, start time.Duration, opts ports.TranscodeOptions) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-ss", formatSeconds(start),
		"-map", "0:v:0",
		"-map", "0:a:0?",
	}
	args = append(args, codecArgs(opts)...)
	return append(args, output)
}

func codecArgs(opts ports.TranscodeOptions) []string {
	vcodec := opts.VideoCodec
	if vcodec == "" {
		vcodec = "libx264"
	}
	acodec := opts.AudioCodec
	if acodec == "" {
		acodec = "aac"
	}

	args := []string{"-c:v", vcodec}
	if opts.Preset != "" {
		args = append(args, "-preset", opts.Preset)
	}
	if opts.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
	}
	if vcodec == "libx264" || vcodec == "libx265" {
		args = append(args, "-pix_fmt", "yuv420p")
	}
	if opts.FrameRate.Valid() {
		args = append(args, "-r", opts.FrameRate.String())
	}
	return append(args, "-c:a", acodec)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTail {
		return s
	}
	return "..." + s[len(s)-stderrTail:]
}

var _ ports.Transcoder = (*Transcoder)(nil)
