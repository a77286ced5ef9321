package window

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFillPixels(t *testing.T) {
	var frame chip8.Frame
	frame[0] = 0x40 // pixel 1,0

	fg := color.RGBA{R: 0x10, G: 0x20, B: 0x30}
	bg := color.RGBA{R: 0x01, G: 0x02, B: 0x03}
	pixels := make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*bytesPerPixel)
	fillPixels(pixels, frame, fg, bg)

	assert.Equal(t, byte(0x01), pixels[0])
	assert.Equal(t, byte(0x03), pixels[2])
	assert.Equal(t, byte(0xFF), pixels[3])

	assert.Equal(t, byte(0x10), pixels[4])
	assert.Equal(t, byte(0x20), pixels[5])
	assert.Equal(t, byte(0x30), pixels[6])
	assert.Equal(t, byte(0xFF), pixels[7])

	last := len(pixels) - bytesPerPixel
	assert.Equal(t, byte(0x01), pixels[last])
}
