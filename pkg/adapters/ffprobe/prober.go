// Package ffprobe reads video metadata with a single ffprobe JSON call.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/user/vidmask/pkg/adapters/ffmpeg"
	"github.com/user/vidmask/pkg/ports"
)

// Prober implements ports.Prober with the ffprobe binary.
type Prober struct {
	path string
}

// New locates ffprobe (see ffmpeg.FindFFprobe) and returns a Prober.
func New(customPath string) (*Prober, error) {
	path, err := ffmpeg.FindFFprobe(customPath)
	if err != nil {
		return nil, err
	}
	return &Prober{path: path}, nil
}

// Probe returns the metadata of the first video stream of path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, p.path,
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe %q: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a VideoInfo.
func ParseJSON(data []byte) (ports.VideoInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var info ports.VideoInfo
	var video *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil && s.Disposition["attached_pic"] != 1 {
				video = s
			}
		case "audio":
			info.HasAudio = true
		}
	}
	if video == nil {
		return ports.VideoInfo{}, fmt.Errorf("no video stream")
	}

	info.Width = video.Width
	info.Height = video.Height
	info.Codec = video.CodecName
	for _, s := range []string{video.AvgFrameRate, video.RFrameRate} {
		if rate, err := ports.ParseRate(s); err == nil {
			info.Rate = rate
			info.FPS = rate.Float()
			break
		}
	}

	seconds := parseFloat(video.Duration)
	if seconds == 0 {
		seconds = parseFloat(raw.Format.Duration)
	}
	info.Duration = time.Duration(seconds * float64(time.Second))

	info.FrameCount = parseInt(video.NbFrames)
	if info.FrameCount == 0 && info.FPS > 0 && seconds > 0 {
		info.FrameCount = int(math.Round(seconds * info.FPS))
	}

	info.Bitrate = parseInt(video.BitRate)
	if info.Bitrate == 0 {
		info.Bitrate = parseInt(raw.Format.BitRate)
	}

	return info, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index        int            `json:"index"`
	CodecName    string         `json:"codec_name"`
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	RFrameRate   string         `json:"r_frame_rate"`
	Duration     string         `json:"duration"`
	NbFrames     string         `json:"nb_frames"`
	BitRate      string         `json:"bit_rate"`
	Disposition  map[string]int `json:"disposition"`
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

var _ ports.Prober = (*Prober)(nil)
