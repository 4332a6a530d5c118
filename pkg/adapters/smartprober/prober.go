// Package smartprober picks the cheapest prober that understands a file:
// ISO-BMFF containers are parsed in-process, everything else goes to ffprobe.
package smartprober

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/user/vidmask/pkg/ports"
)

var isoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// Prober routes Probe calls by file extension.
type Prober struct {
	iso      ports.Prober
	fallback ports.Prober
	logger   ports.Logger
}

// New creates a Prober. iso handles .mp4/.mov/.m4v; fallback handles the rest
// and any ISO file iso fails on. iso may be nil.
func New(iso, fallback ports.Prober, logger ports.Logger) *Prober {
	return &Prober{
		iso:      iso,
		fallback: fallback,
		logger:   logger.WithComponent("probe"),
	}
}

// Probe implements ports.Prober.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if p.iso != nil && isoExtensions[strings.ToLower(filepath.Ext(path))] {
		info, err := p.iso.Probe(ctx, path)
		if err == nil && usable(info) {
			return info, nil
		}
		if err != nil {
			p.logger.Debug("In-process probe failed for %s, using ffprobe: %v", path, err)
		} else {
			p.logger.Debug("In-process probe incomplete for %s, using ffprobe", path)
		}
	}
	return p.fallback.Probe(ctx, path)
}

// usable reports whether info carries everything the pipelines rely on.
func usable(info ports.VideoInfo) bool {
	return info.Width > 0 && info.Height > 0 && info.Duration > 0 && info.FrameCount > 0
}

var _ ports.Prober = (*Prober)(nil)
