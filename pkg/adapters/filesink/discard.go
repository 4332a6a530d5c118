package filesink

import (
	"image"

	"github.com/user/vidmask/pkg/ports"
)

// Discard is a DebugSink that is never enabled.
type Discard struct{}

func (Discard) Enabled() bool { return false }

func (Discard) SaveMask(string, int, *image.Gray) error { return nil }

func (Discard) SaveDetections(string, int, image.Image, []image.Rectangle) error { return nil }

var _ ports.DebugSink = Discard{}
