package progress

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/user/vidmask/pkg/ports"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestEstimator_Update(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := newEstimator("in.mp4", 300, clock.now)

	clock.advance(10 * time.Second)
	got := e.Update(100)

	want := ports.Progress{
		Path:     "in.mp4",
		Current:  100,
		Total:    300,
		Elapsed:  10 * time.Second,
		ETA:      20 * time.Second,
		ETAKnown: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimator_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		done     int
		wantETA  time.Duration
		wantKnow bool
	}{
		{"unknown total", 0, 50, 0, false},
		{"negative total", -1, 50, 0, false},
		{"no frames yet", 300, 0, 0, false},
		{"last frame", 300, 300, 0, true},
		{"past advertised total", 300, 310, 0, true},
		{"one frame", 4, 1, 6 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Unix(0, 0)}
			e := newEstimator("x", tt.total, clock.now)
			clock.advance(2 * time.Second)

			got := e.Update(tt.done)
			if got.ETAKnown != tt.wantKnow {
				t.Errorf("ETAKnown = %v, want %v", got.ETAKnown, tt.wantKnow)
			}
			if got.ETA != tt.wantETA {
				t.Errorf("ETA = %v, want %v", got.ETA, tt.wantETA)
			}
			if got.Elapsed != 2*time.Second {
				t.Errorf("Elapsed = %v, want 2s", got.Elapsed)
			}
			if got.Total < 0 {
				t.Errorf("Total = %d, want >= 0", got.Total)
			}
		})
	}
}

func TestEstimator_Elapsed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	e := newEstimator("x", 10, clock.now)
	clock.advance(1500 * time.Millisecond)

	if got := e.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.5s", got)
	}
}

func TestEstimator_SetTotalKeepsStart(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	e := newEstimator("x", 0, clock.now)
	clock.advance(2 * time.Second)
	e.SetTotal(20)
	clock.advance(2 * time.Second)

	p := e.Update(10)
	if p.Elapsed != 4*time.Second {
		t.Errorf("Elapsed = %v, want 4s from creation", p.Elapsed)
	}
	if !p.ETAKnown || p.ETA != 4*time.Second {
		t.Errorf("ETA = %v (known %v), want 4s", p.ETA, p.ETAKnown)
	}
}
