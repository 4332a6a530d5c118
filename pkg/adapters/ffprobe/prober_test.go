package ffprobe

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/user/vidmask/pkg/adapters/ffmpeg"
	"github.com/user/vidmask/pkg/ports"
)

// H.264 + AAC in MP4, with cover art that must not be chosen as the video.
const sampleMP4 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 600,
      "avg_frame_rate": "0/0",
      "disposition": { "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1280,
      "height": 720,
      "avg_frame_rate": "30/1",
      "r_frame_rate": "30/1",
      "duration": "10.000000",
      "nb_frames": "300",
      "bit_rate": "2500000",
      "disposition": { "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "duration": "10.005333"
    }
  ],
  "format": {
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "10.005333",
    "bit_rate": "2630000"
  }
}`

// XVID in AVI: no per-stream duration or frame count, NTSC rate.
const sampleAVI = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mpeg4",
      "codec_type": "video",
      "width": 640,
      "height": 480,
      "avg_frame_rate": "30000/1001",
      "r_frame_rate": "30000/1001"
    }
  ],
  "format": {
    "format_name": "avi",
    "duration": "5.005000",
    "bit_rate": "900000"
  }
}`

func TestParseJSON_MP4(t *testing.T) {
	got, err := ParseJSON([]byte(sampleMP4))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	want := ports.VideoInfo{
		Width:      1280,
		Height:     720,
		FPS:        30,
		Rate:       ports.Rate{Num: 30, Den: 1},
		FrameCount: 300,
		Duration:   10 * time.Second,
		Codec:      "h264",
		Bitrate:    2500000,
		HasAudio:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON_AVIFallbacks(t *testing.T) {
	got, err := ParseJSON([]byte(sampleAVI))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if got.HasAudio {
		t.Error("expected no audio")
	}
	if got.FrameCount != 150 {
		t.Errorf("expected frame count derived from duration, got %d", got.FrameCount)
	}
	if got.Duration != 5005*time.Millisecond {
		t.Errorf("expected format duration, got %v", got.Duration)
	}
	if got.Bitrate != 900000 {
		t.Errorf("expected format bitrate, got %d", got.Bitrate)
	}
	if want := (ports.Rate{Num: 30000, Den: 1001}); got.Rate != want {
		t.Errorf("expected rate %v, got %v", want, got.Rate)
	}
	if got.FPS < 29.97 || got.FPS > 29.98 {
		t.Errorf("expected ~29.97 fps, got %f", got.FPS)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseJSON([]byte(`{"streams":[{"codec_type":"audio"}],"format":{}}`)); err == nil {
		t.Error("expected error for audio-only input")
	}
}

func TestParseJSON_UnknownAverageRate(t *testing.T) {
	raw := `{"streams":[{"codec_type":"video","width":8,"height":8,"avg_frame_rate":"0/0","r_frame_rate":"24000/1001"}],"format":{}}`

	got, err := ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if want := (ports.Rate{Num: 24000, Den: 1001}); got.Rate != want {
		t.Errorf("expected rate %v, got %v", want, got.Rate)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	if !ffmpeg.IsAvailable() {
		t.Skip("ffprobe not available")
	}
	p, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := p.Probe(context.Background(), "/nonexistent/video.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}
