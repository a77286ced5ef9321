package chip8

// ALU instructions. All arithmetic wraps modulo 256. Instructions that set
// VF write the flag last, so for VX == VF the flag is the stored result.

// ldImm: 6XKK - LD VX, KK
func (c *CPU) ldImm(ins Instruction, _ *TickResult) error {
	c.v[ins.X] = ins.KK
	c.next()
	return nil
}

// addImm: 7XKK - ADD VX, KK
func (c *CPU) addImm(ins Instruction, _ *TickResult) error {
	c.v[ins.X] += ins.KK
	c.next()
	return nil
}

// ldReg: 8XY0 - LD VX, VY
func (c *CPU) ldReg(ins Instruction, _ *TickResult) error {
	c.v[ins.X] = c.v[ins.Y]
	c.next()
	return nil
}

// or: 8XY1 - OR VX, VY
func (c *CPU) or(ins Instruction, _ *TickResult) error {
	c.v[ins.X] |= c.v[ins.Y]
	c.next()
	return nil
}

// and: 8XY2 - AND VX, VY
func (c *CPU) and(ins Instruction, _ *TickResult) error {
	c.v[ins.X] &= c.v[ins.Y]
	c.next()
	return nil
}

// xor: 8XY3 - XOR VX, VY
func (c *CPU) xor(ins Instruction, _ *TickResult) error {
	c.v[ins.X] ^= c.v[ins.Y]
	c.next()
	return nil
}

// addReg: 8XY4 - ADD VX, VY, VF is set on carry.
func (c *CPU) addReg(ins Instruction, _ *TickResult) error {
	sum := uint16(c.v[ins.X]) + uint16(c.v[ins.Y])
	c.v[ins.X] = uint8(sum)
	c.v[flagReg] = flag(sum > 0xFF)
	c.next()
	return nil
}

// subReg: 8XY5 - SUB VX, VY, VF is set if VX > VY.
func (c *CPU) subReg(ins Instruction, _ *TickResult) error {
	x, y := c.v[ins.X], c.v[ins.Y]
	c.v[ins.X] = x - y
	c.v[flagReg] = flag(x > y)
	c.next()
	return nil
}

// shr: 8XY6 - SHR VX, VF receives the shifted out bit 0.
func (c *CPU) shr(ins Instruction, _ *TickResult) error {
	x := c.v[ins.X]
	c.v[ins.X] = x >> 1
	c.v[flagReg] = x & 0x01
	c.next()
	return nil
}

// subn: 8XY7 - SUBN VX, VY, VX = VY - VX, VF is set if VY > VX.
func (c *CPU) subn(ins Instruction, _ *TickResult) error {
	x, y := c.v[ins.X], c.v[ins.Y]
	c.v[ins.X] = y - x
	c.v[flagReg] = flag(y > x)
	c.next()
	return nil
}

// shl: 8XYE - SHL VX, VF receives the shifted out bit 7.
func (c *CPU) shl(ins Instruction, _ *TickResult) error {
	x := c.v[ins.X]
	c.v[ins.X] = x << 1
	c.v[flagReg] = x >> 7
	c.next()
	return nil
}

// rnd: CXKK - RND VX, KK
func (c *CPU) rnd(ins Instruction, _ *TickResult) error {
	c.v[ins.X] = uint8(c.rng.Uint32()) & ins.KK
	c.next()
	return nil
}
