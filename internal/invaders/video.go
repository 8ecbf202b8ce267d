package invaders

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	// ScreenWidth is the width of the picture as the player sees it. The
	// monitor is mounted rotated 90 degrees counter-clockwise, so this is
	// the height of the raster.
	ScreenWidth = 224
	// ScreenHeight is the height of the picture as the player sees it.
	ScreenHeight = 256

	rasterWidth = ScreenHeight
	bytesPerRow = rasterWidth / 8
)

// Palette is the monochrome palette of the monitor.
var Palette = color.Palette{color.Black, color.White}

// Frame returns the current contents of video RAM as an upright
// ScreenWidth x ScreenHeight image.
//
// Video RAM holds the raster one bit per pixel, 32 bytes per scan line with
// the least significant bit leftmost.
func (m *Machine) Frame() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, ScreenWidth, ScreenHeight), Palette)
	vram := m.VRAM()

	for i, b := range vram {
		if b == 0 {
			continue
		}
		line := i / bytesPerRow
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) == 0 {
				continue
			}
			x := (i%bytesPerRow)*8 + bit
			// rotate counter-clockwise
			img.SetColorIndex(line, rasterWidth-1-x, 1)
		}
	}
	return img
}

// Screenshot returns the current frame scaled by scale with nearest
// neighbour sampling, keeping the pixels sharp.
func (m *Machine) Screenshot(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	frame := m.Frame()
	dst := image.NewRGBA(image.Rect(0, 0, ScreenWidth*scale, ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	return dst
}
