package chip8

// Display dimensions. The framebuffer stores 8 pixels per byte, row-major,
// with the most significant bit being the leftmost pixel.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight / 8

	bytesPerRow = DisplayWidth / 8
)

// Frame is a copy of the monochrome framebuffer.
type Frame [DisplaySize]byte

// Pixel returns whether the pixel at the given position is set.
// Coordinates wrap around the screen edges.
func (f Frame) Pixel(x, y int) bool {
	x = wrap(x, DisplayWidth)
	y = wrap(y, DisplayHeight)
	return f[y*bytesPerRow+x/8]&(0x80>>(x%8)) != 0
}

// xor composites sprite bits into the byte at column and row and returns
// whether a set pixel was cleared.
func (f *Frame) xor(column, row uint16, bits uint8) bool {
	index := row*bytesPerRow + column
	collision := f[index]&bits != 0
	f[index] ^= bits
	return collision
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}

// drw: DXYN - DRW VX, VY, N
// Draws N sprite rows read from memory at I with the origin at VX, VY.
// Both axes wrap around, VF is set if any set pixel was cleared.
func (c *CPU) drw(ins Instruction, res *TickResult) error {
	x := uint16(c.v[ins.X]) % DisplayWidth
	y := uint16(c.v[ins.Y]) % DisplayHeight
	column := x / 8
	shift := x % 8

	collision := false
	for r := range uint16(ins.N) {
		sprite := c.memory[(c.i+r)&addressMask]
		row := (y + r) % DisplayHeight

		if c.display.xor(column, row, sprite>>shift) {
			collision = true
		}
		if shift != 0 {
			if c.display.xor((column+1)%bytesPerRow, row, sprite<<(8-shift)) {
				collision = true
			}
		}
	}

	c.v[flagReg] = flag(collision)
	res.DisplayDirty = true
	c.next()
	return nil
}
