// Package mp4probe reads video metadata from ISO-BMFF files (.mp4, .mov)
// by parsing the moov and moof boxes, without running external tools.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidmask/pkg/ports"
)

var (
	// ErrNoMoov is returned when the file has no movie box.
	ErrNoMoov = errors.New("mp4probe: no moov box")
	// ErrNoVideoTrack is returned when the file has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track")
)

// Prober implements ports.Prober for ISO-BMFF files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads the metadata of the first video track in path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads metadata from an ISO-BMFF stream.
func ProbeReader(r io.ReadSeeker) (ports.VideoInfo, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	return infoFromFile(file)
}

func infoFromFile(file *mp4.File) (ports.VideoInfo, error) {
	moov := file.Moov
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return ports.VideoInfo{}, ErrNoMoov
	}

	var info ports.VideoInfo
	var video *mp4.TrakBox
	for _, trak := range moov.Traks {
		switch handlerType(trak) {
		case "vide":
			if video == nil {
				video = trak
			}
		case "soun":
			info.HasAudio = true
		}
	}
	if video == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	var trackID uint32
	if video.Tkhd != nil {
		info.Width = int(video.Tkhd.Width >> 16)
		info.Height = int(video.Tkhd.Height >> 16)
		trackID = video.Tkhd.TrackID
	}
	info.Codec = codecName(video)

	var timescale uint32
	if video.Mdia.Mdhd != nil {
		timescale = video.Mdia.Mdhd.Timescale
	}

	var t totals
	if file.IsFragmented() || moov.Mvex != nil {
		t = fragmentTotals(file, trackID)
	} else {
		t = progressiveTotals(video)
	}

	info.FrameCount = t.samples
	if timescale > 0 && t.ticks > 0 {
		seconds := float64(t.ticks) / float64(timescale)
		info.Duration = time.Duration(seconds * float64(time.Second))
		info.FPS = float64(t.samples) / seconds
		info.Bitrate = int(float64(t.bytes*8) / seconds)
	}
	if delta := t.dominantDelta(); timescale > 0 && delta > 0 {
		info.Rate = ports.NewRate(int(timescale), int(delta))
		info.FPS = info.Rate.Float()
	} else {
		info.Rate = ports.RateFromFloat(info.FPS)
	}

	return info, nil
}

func handlerType(trak *mp4.TrakBox) string {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return ""
	}
	return trak.Mdia.Hdlr.HandlerType
}

// codecName maps the sample entry of a video track to an ffmpeg codec name.
func codecName(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return "h264"
		case "hvc1", "hev1":
			return "hevc"
		case "av01":
			return "av1"
		case "mp4v":
			return "mpeg4"
		case "vp09":
			return "vp9"
		}
	}
	return ""
}

// totals summarizes the samples of one track. deltas counts samples per
// decode duration, in timescale ticks.
type totals struct {
	samples int
	ticks   uint64
	bytes   uint64
	deltas  map[uint32]int
}

func (t *totals) addDelta(delta uint32, n int) {
	if t.deltas == nil {
		t.deltas = make(map[uint32]int)
	}
	t.deltas[delta] += n
}

// dominantDelta returns the sample duration shared by most samples, so a
// shortened final sample does not hide a constant frame rate.
func (t totals) dominantDelta() uint32 {
	var best uint32
	bestN := 0
	for delta, n := range t.deltas {
		if delta > 0 && (n > bestN || n == bestN && delta < best) {
			best, bestN = delta, n
		}
	}
	return best
}

func progressiveTotals(trak *mp4.TrakBox) totals {
	var t totals
	if trak.Mdia.Mdhd != nil {
		t.ticks = trak.Mdia.Mdhd.Duration
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return t
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stts != nil {
		for i, delta := range stbl.Stts.SampleTimeDelta {
			if i < len(stbl.Stts.SampleCount) {
				t.addDelta(delta, int(stbl.Stts.SampleCount[i]))
			}
		}
	}
	if stbl.Stsz == nil {
		return t
	}
	stsz := stbl.Stsz
	t.samples = int(stsz.SampleNumber)
	if stsz.SampleUniformSize > 0 {
		t.bytes = uint64(stsz.SampleUniformSize) * uint64(stsz.SampleNumber)
	} else {
		for _, size := range stsz.SampleSize {
			t.bytes += uint64(size)
		}
	}
	return t
}

func fragmentTotals(file *mp4.File, trackID uint32) totals {
	var t totals
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					t.samples += int(trun.SampleCount())
					for _, s := range trun.Samples {
						dur := s.Dur
						if dur == 0 {
							dur = traf.Tfhd.DefaultSampleDuration
						}
						size := s.Size
						if size == 0 {
							size = traf.Tfhd.DefaultSampleSize
						}
						t.ticks += uint64(dur)
						t.bytes += uint64(size)
						t.addDelta(dur, 1)
					}
				}
			}
		}
	}
	return t
}

var _ ports.Prober = (*Prober)(nil)
