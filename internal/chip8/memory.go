package chip8

// Instructions accessing memory through the index register I. Only the low
// 12 bits of I address memory.

// ldI: ANNN - LD I, NNN
func (c *CPU) ldI(ins Instruction, _ *TickResult) error {
	c.i = ins.NNN
	c.next()
	return nil
}

// addI: FX1E - ADD I, VX
func (c *CPU) addI(ins Instruction, _ *TickResult) error {
	c.i += uint16(c.v[ins.X])
	c.next()
	return nil
}

// ldSprt: FX29 - LD F, VX
// Points I to the font glyph of the low nibble of VX.
func (c *CPU) ldSprt(ins Instruction, _ *TickResult) error {
	c.i = uint16(c.v[ins.X]&0xF) * fontGlyphSize
	c.next()
	return nil
}

// ldBcd: FX33 - LD B, VX
// Stores the decimal digits of VX at I, I+1 and I+2.
func (c *CPU) ldBcd(ins Instruction, _ *TickResult) error {
	value := c.v[ins.X]
	c.memory[c.i&addressMask] = value / 100
	c.memory[(c.i+1)&addressMask] = value / 10 % 10
	c.memory[(c.i+2)&addressMask] = value % 10
	c.next()
	return nil
}

// ldMem: FX55 - LD [I], VX
// Stores V0 through VX at I. I is not modified.
func (c *CPU) ldMem(ins Instruction, _ *TickResult) error {
	for n := range uint16(ins.X) + 1 {
		c.memory[(c.i+n)&addressMask] = c.v[n]
	}
	c.next()
	return nil
}

// ldRegs: FX65 - LD VX, [I]
// Loads V0 through VX from I. I is not modified.
func (c *CPU) ldRegs(ins Instruction, _ *TickResult) error {
	for n := range uint16(ins.X) + 1 {
		c.v[n] = c.memory[(c.i+n)&addressMask]
	}
	c.next()
	return nil
}
