// Package screenshot converts CHIP-8 frames to PNG images.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/draw"
)

const (
	backgroundIndex = 0
	foregroundIndex = 1
)

// Options defines the output colors and the scale factor of the image.
type Options struct {
	Foreground color.Color
	Background color.Color
	Scale      int
}

// Image converts a frame to a paletted image of the display size.
func Image(frame chip8.Frame, foreground, background color.Color) *image.Paletted {
	palette := color.Palette{backgroundIndex: background, foregroundIndex: foreground}
	img := image.NewPaletted(image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight), palette)

	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if frame.Pixel(x, y) {
				img.SetColorIndex(x, y, foregroundIndex)
			}
		}
	}
	return img
}

// Scale enlarges the image by the given factor without smoothing.
func Scale(src *image.Paletted, scale int) *image.Paletted {
	if scale <= 1 {
		return src
	}

	bounds := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale), src.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// Encode writes the frame as PNG image.
func Encode(frame chip8.Frame, options Options) ([]byte, error) {
	img := Scale(Image(frame, options.Foreground, options.Background), options.Scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the frame as PNG file to the directory. The file name is
// built from the program name and the current time. The path of the
// written file and the encoded image data are returned.
func Save(dir, name string, frame chip8.Frame, options Options) (string, []byte, error) {
	data, err := Encode(frame, options)
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating screenshot directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	fileName := fmt.Sprintf("%s_%s.png", base, time.Now().Format("20060102-150405.000"))
	path := filepath.Join(dir, fileName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("writing screenshot file: %w", err)
	}
	return path, data, nil
}
