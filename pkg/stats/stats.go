// Package stats collects per frame statistics from a running machine and
// plots them.
package stats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/thelolagemann/go8080/internal/invaders"
	"github.com/thelolagemann/go8080/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultWindow is the number of frames a Collector keeps.
const DefaultWindow = 600

var (
	cyclesColor       = color.RGBA{R: 0xD0, G: 0x30, B: 0x30, A: 0xFF}
	instructionsColor = color.RGBA{R: 0x30, G: 0x60, B: 0xD0, A: 0xFF}
)

// ErrNoFrames is returned when plotting an empty Collector.
var ErrNoFrames = errors.New("no frames recorded")

// Frame is the statistics of one frame.
type Frame struct {
	invaders.FrameStats
	Elapsed time.Duration
}

// Totals sums every frame added to a Collector.
type Totals struct {
	Frames       uint64
	Cycles       uint64
	Instructions uint64
	Interrupts   uint64
	Dropped      uint64
	Elapsed      time.Duration
}

// String returns a one line summary of t.
func (t Totals) String() string {
	return fmt.Sprintf("%d frames, %d instructions, %d cycles, %d interrupts (%d dropped) in %s",
		t.Frames, t.Instructions, t.Cycles, t.Interrupts, t.Dropped, t.Elapsed.Round(time.Millisecond))
}

// Collector records the most recent frames in a ring.
type Collector struct {
	frames []Frame
	next   int
	full   bool
	totals Totals
}

// NewCollector returns a Collector keeping the last window frames.
func NewCollector(window int) *Collector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Collector{frames: make([]Frame, window)}
}

// Add records a frame.
func (c *Collector) Add(s invaders.FrameStats, elapsed time.Duration) {
	c.frames[c.next] = Frame{FrameStats: s, Elapsed: elapsed}
	c.next++
	if c.next == len(c.frames) {
		c.next = 0
		c.full = true
	}

	c.totals.Frames++
	c.totals.Cycles += s.Cycles
	c.totals.Instructions += s.Instructions
	c.totals.Interrupts += uint64(s.Interrupts)
	c.totals.Dropped += uint64(s.Dropped)
	c.totals.Elapsed += elapsed
}

// Frames returns the recorded frames, oldest first.
func (c *Collector) Frames() []Frame {
	if !c.full {
		return append([]Frame(nil), c.frames[:c.next]...)
	}
	return append(append([]Frame(nil), c.frames[c.next:]...), c.frames[:c.next]...)
}

// Totals returns the sums over every frame added.
func (c *Collector) Totals() Totals {
	return c.totals
}

// Plot draws the cycles and instructions of the recorded frames.
func (c *Collector) Plot(width, height int) (*image.RGBA, error) {
	frames := c.Frames()
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	p := plot.New()
	p.Title.Text = "Frame Work"
	p.X.Label.Text = "Frame"

	cycles := make(plotter.XYs, len(frames))
	instructions := make(plotter.XYs, len(frames))
	for i, f := range frames {
		cycles[i].X = float64(f.Frame)
		cycles[i].Y = float64(f.Cycles)
		instructions[i].X = float64(f.Frame)
		instructions[i].Y = float64(f.Instructions)
	}

	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{
		{"cycles", cycles, cyclesColor},
		{"instructions", instructions, instructionsColor},
	} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return nil, err
		}
		line.Color = series.color
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	canvas := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(canvas))
	return img, nil
}

// SavePlot writes the plot of the recorded frames to filename as a PNG.
func (c *Collector) SavePlot(filename string) error {
	img, err := c.Plot(800, 480)
	if err != nil {
		return err
	}
	return utils.SaveImage(filename, img)
}
