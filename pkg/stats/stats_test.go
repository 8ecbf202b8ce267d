package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thelolagemann/go8080/internal/invaders"
)

func frame(n uint64) invaders.FrameStats {
	return invaders.FrameStats{
		Frame:        n,
		Cycles:       33340,
		Instructions: 5000 + n,
		Interrupts:   2,
		Dropped:      int(n % 2),
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(3)
	for i := uint64(0); i < 5; i++ {
		c.Add(frame(i), time.Millisecond)
	}

	frames := c.Frames()
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Frame != uint64(i+2) {
			t.Errorf("expected frame %d at %d, got %d", i+2, i, f.Frame)
		}
	}

	totals := c.Totals()
	expected := Totals{
		Frames:       5,
		Cycles:       5 * 33340,
		Instructions: 5*5000 + 10,
		Interrupts:   10,
		Dropped:      2,
		Elapsed:      5 * time.Millisecond,
	}
	if totals != expected {
		t.Errorf("expected %+v, got %+v", expected, totals)
	}
}

func TestCollector_Partial(t *testing.T) {
	c := NewCollector(0)
	c.Add(frame(0), 0)
	c.Add(frame(1), 0)

	if frames := c.Frames(); len(frames) != 2 || frames[1].Frame != 1 {
		t.Errorf("expected frames 0 and 1, got %+v", frames)
	}
}

func TestCollector_Plot(t *testing.T) {
	c := NewCollector(10)
	for i := uint64(0); i < 10; i++ {
		c.Add(frame(i), time.Millisecond)
	}

	img, err := c.Plot(320, 240)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("expected 320x240, got %v", b)
	}

	path := filepath.Join(t.TempDir(), "frames")
	if err := c.SavePlot(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".png"); err != nil {
		t.Errorf("expected plot to be saved: %v", err)
	}
}

func TestCollector_PlotEmpty(t *testing.T) {
	if _, err := NewCollector(1).Plot(10, 10); err != ErrNoFrames {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
