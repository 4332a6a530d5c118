package ffmpeg

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// Encoder implements ports.VideoEncoder by piping raw RGBA frames into an
// ffmpeg process. The output has no audio stream.
type Encoder struct {
	ffmpegPath string

	mu         sync.Mutex
	width      int
	height     int
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	frameCount int
}

// NewEncoder locates ffmpeg (see FindFFmpeg) and returns an Encoder.
func NewEncoder(customPath string) (*Encoder, error) {
	path, err := FindFFmpeg(customPath)
	if err != nil {
		return nil, err
	}
	return &Encoder{ffmpegPath: path}, nil
}

// Begin starts ffmpeg writing to path.
func (e *Encoder) Begin(path string, width, height int, rate ports.Rate, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin != nil {
		return fmt.Errorf("ffmpeg: encoder already started")
	}
	if !rate.Valid() {
		return fmt.Errorf("ffmpeg: invalid frame rate %s", rate)
	}

	e.width = width
	e.height = height
	e.frameCount = 0
	e.stderr.Reset()

	e.cmd = exec.Command(e.ffmpegPath, EncodeArgs(path, width, height, rate, opts)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	e.stdin = stdin

	return nil
}

// EncodeFrame writes one frame to ffmpeg.
func (e *Encoder) EncodeFrame(img *image.RGBA) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), e.width, e.height)
	}

	row := e.width * 4
	if img.Stride == row {
		off := img.PixOffset(b.Min.X, b.Min.Y)
		if _, err := e.stdin.Write(img.Pix[off : off+row*e.height]); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := img.PixOffset(b.Min.X, y)
			if _, err := e.stdin.Write(img.Pix[off : off+row]); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		}
	}

	e.frameCount++
	return nil
}

// End closes the pipe and waits for ffmpeg to finish the file.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil

	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, tail(e.stderr.String()))
	}
	return nil
}

// FrameCount returns the number of frames written since Begin.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

// EncodeArgs builds the ffmpeg arguments for a raw RGBA pipe encode.
// The rate is passed as a rational so NTSC rates survive unchanged.
func EncodeArgs(path string, width, height int, rate ports.Rate, opts ports.EncoderOptions) []string {
	codec := opts.Codec
	if codec == "" {
		codec = "mpeg4"
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-framerate", rate.String(),
		"-i", "pipe:0",
		"-an",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
	}

	switch {
	case opts.Bitrate > 0:
		args = append(args, "-b:v", strconv.Itoa(opts.Bitrate))
	case codec == "libx264" || codec == "libx265":
		args = append(args, "-crf", strconv.Itoa(scaleQuality(opts.Quality, 0, 51)))
	default:
		args = append(args, "-q:v", strconv.Itoa(scaleQuality(opts.Quality, 2, 31)))
	}

	return append(args, path)
}

// scaleQuality maps q in [0,1] (0 best) onto [lo,hi].
func scaleQuality(q float64, lo, hi int) int {
	q = math.Max(0, math.Min(1, q))
	return lo + int(math.Round(q*float64(hi-lo)))
}

var _ ports.VideoEncoder = (*Encoder)(nil)
