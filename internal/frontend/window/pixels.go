// Package window implements the desktop window frontend.
package window

import (
	"image/color"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const bytesPerPixel = 4

// fillPixels converts the frame to RGBA pixel data of the display size.
func fillPixels(dst []byte, frame chip8.Frame, foreground, background color.RGBA) {
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			c := background
			if frame.Pixel(x, y) {
				c = foreground
			}
			i := (y*chip8.DisplayWidth + x) * bytesPerPixel
			dst[i] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = 0xFF
		}
	}
}
