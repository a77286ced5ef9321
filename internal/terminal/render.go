package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// half block characters indexed by top pixel | bottom pixel << 1
var blocks = [4]string{" ", "▀", "▄", "█"}

// Render converts a frame to text. Every character covers two pixel rows,
// the result has one line per two display rows.
func Render(frame chip8.Frame) string {
	var sb strings.Builder
	sb.Grow(chip8.DisplayHeight / 2 * (chip8.DisplayWidth*3 + 1))

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			index := 0
			if frame.Pixel(x, y) {
				index |= 1
			}
			if frame.Pixel(x, y+1) {
				index |= 2
			}
			sb.WriteString(blocks[index])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
