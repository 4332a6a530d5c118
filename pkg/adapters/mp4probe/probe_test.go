package mp4probe

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidmask/pkg/ports"
)

// buildFragmentedMP4 writes ftyp + moov + one fragment, the layout produced
// by fragmented MP4 muxers.
func buildFragmentedMP4(t *testing.T, width, height int, fps uint32, frames int, withAudio bool) []byte {
	t.Helper()
	return buildTimedMP4(t, width, height, fps*1000, 1000, frames, withAudio)
}

// buildTimedMP4 is buildFragmentedMP4 with every sample lasting dur ticks.
func buildTimedMP4(t *testing.T, width, height int, timescale, dur uint32, frames int, withAudio bool) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	if withAudio {
		init.AddEmptyTrack(48000, "audio", "en")
	}

	trak := init.Moov.Traks[0]
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	for i := 0; i < frames; i++ {
		data := make([]byte, 100)
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(data)),
				Dur:   dur,
			},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	return buf.Bytes()
}

func TestProbeReader_Fragmented(t *testing.T) {
	data := buildFragmentedMP4(t, 320, 240, 30, 30, true)

	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProbeReader failed: %v", err)
	}

	if info.Width != 320 || info.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", info.Width, info.Height)
	}
	if info.FrameCount != 30 {
		t.Errorf("expected 30 frames, got %d", info.FrameCount)
	}
	if info.Duration != time.Second {
		t.Errorf("expected 1s, got %v", info.Duration)
	}
	if info.FPS != 30 {
		t.Errorf("expected 30 fps, got %f", info.FPS)
	}
	if want := (ports.Rate{Num: 30, Den: 1}); info.Rate != want {
		t.Errorf("expected rate %v, got %v", want, info.Rate)
	}
	if !info.HasAudio {
		t.Error("expected audio track to be detected")
	}
	if info.Bitrate != 30*100*8 {
		t.Errorf("expected bitrate %d, got %d", 30*100*8, info.Bitrate)
	}
}

func TestReader_NTSCTimescaleRate(t *testing.T) {
	data := buildTimedMP4(t, 64, 48, 30000, 1001, 60, false)

	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProbeReader failed: %v", err)
	}
	if want := (ports.Rate{Num: 30000, Den: 1001}); info.Rate != want {
		t.Errorf("expected rate %v, got %v", want, info.Rate)
	}
	if info.FPS != 30000.0/1001.0 {
		t.Errorf("expected fps from exact rate, got %v", info.FPS)
	}
}

func TestTotals_DominantDelta(t *testing.T) {
	var tt totals
	tt.addDelta(1001, 299)
	tt.addDelta(512, 1)
	if got := tt.dominantDelta(); got != 1001 {
		t.Errorf("expected 1001, got %d", got)
	}
	if got := (totals{}).dominantDelta(); got != 0 {
		t.Errorf("expected 0 without samples, got %d", got)
	}
}

func TestProbeReader_VideoOnly(t *testing.T) {
	data := buildFragmentedMP4(t, 64, 48, 25, 50, false)

	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProbeReader failed: %v", err)
	}
	if info.HasAudio {
		t.Error("expected no audio")
	}
	if info.Duration != 2*time.Second {
		t.Errorf("expected 2s, got %v", info.Duration)
	}
}

func TestProbeReader_NoVideoTrack(t *testing.T) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(48000, "audio", "en")

	var buf bytes.Buffer
	if err := init.Encode(&buf); err != nil {
		t.Fatalf("encode init: %v", err)
	}

	_, err := ProbeReader(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestProbeReader_Garbage(t *testing.T) {
	if _, err := ProbeReader(bytes.NewReader([]byte("definitely not an mp4 file"))); err == nil {
		t.Error("expected error for non-mp4 input")
	}
}

func TestProbe_MissingFile(t *testing.T) {
	if _, err := New().Probe(context.Background(), "/nonexistent/clip.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}
