package screenshot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func testFrame() chip8.Frame {
	var frame chip8.Frame
	frame[0] = 0x80 // pixel 0,0
	frame[len(frame)-1] = 0x01
	return frame
}

func TestImage(t *testing.T) {
	img := Image(testFrame(), white, black)
	assert.Equal(t, chip8.DisplayWidth, img.Bounds().Dx())
	assert.Equal(t, chip8.DisplayHeight, img.Bounds().Dy())

	assert.Equal(t, uint8(foregroundIndex), img.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(backgroundIndex), img.ColorIndexAt(1, 0))
	assert.Equal(t, uint8(foregroundIndex), img.ColorIndexAt(63, 31))
}

func TestScale(t *testing.T) {
	img := Scale(Image(testFrame(), white, black), 4)
	assert.Equal(t, chip8.DisplayWidth*4, img.Bounds().Dx())
	assert.Equal(t, chip8.DisplayHeight*4, img.Bounds().Dy())

	assert.Equal(t, uint8(foregroundIndex), img.ColorIndexAt(3, 3))
	assert.Equal(t, uint8(backgroundIndex), img.ColorIndexAt(4, 0))
	assert.Equal(t, uint8(foregroundIndex), img.ColorIndexAt(255, 127))
	assert.Equal(t, uint8(backgroundIndex), img.ColorIndexAt(251, 127))

	same := Image(testFrame(), white, black)
	assert.True(t, Scale(same, 1) == same)
}

func TestEncode(t *testing.T) {
	data, err := Encode(testFrame(), Options{Foreground: white, Background: black, Scale: 2})
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)
	r, _, _, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	path, data, err := Save(dir, "games/pong.ch8", testFrame(), Options{Foreground: white, Background: black, Scale: 1})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "pong_"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	written, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(data, written))
}
