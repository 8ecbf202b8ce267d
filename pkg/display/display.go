// Package display shows the invaders screen in a window and plays its
// sounds through the default audio device.
package display

import (
	"encoding/binary"
	"errors"
	"image"
)

const (
	// DefaultScale is the size of a screen pixel in window pixels.
	DefaultScale = 2
	// FrameRate is the rate the window is presented at.
	FrameRate = 60
)

// ErrUnavailable is returned when the binary was built without SDL.
var ErrUnavailable = errors.New("display: built without SDL support")

// Span is a horizontal run of lit pixels.
type Span struct {
	X, Y, W int
}

// Spans returns the runs of lit pixels in img, row by row.
func Spans(img *image.Paletted) []Span {
	var spans []Span
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		start := -1
		for x := 0; x < b.Dx(); x++ {
			lit := row[x] != 0
			switch {
			case lit && start < 0:
				start = x
			case !lit && start >= 0:
				spans = append(spans, Span{X: b.Min.X + start, Y: y, W: x - start})
				start = -1
			}
		}
		if start >= 0 {
			spans = append(spans, Span{X: b.Min.X + start, Y: y, W: b.Dx() - start})
		}
	}
	return spans
}

// KeyEvent is a key going down or up.
type KeyEvent struct {
	Key     rune
	Pressed bool
}

// pcm writes samples to dst as signed 16-bit little endian.
func pcm(dst []byte, samples []int16) []byte {
	dst = dst[:0]
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}
