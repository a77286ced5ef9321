package chip8

// cls: 00E0 - CLS
func (c *CPU) cls(_ Instruction, res *TickResult) error {
	c.display = Frame{}
	res.DisplayDirty = true
	c.next()
	return nil
}

// ret: 00EE - RET
// The stack holds the address of the CALL instruction, execution continues
// after it.
func (c *CPU) ret(_ Instruction, _ *TickResult) error {
	if c.sp == stackEmpty {
		return &StackError{Err: ErrStackUnderflow, Address: c.pc}
	}
	c.sp++
	c.pc = c.stack[c.sp]
	c.next()
	return nil
}

// jmp: 1NNN - JP NNN
func (c *CPU) jmp(ins Instruction, _ *TickResult) error {
	c.pc = ins.NNN
	return nil
}

// call: 2NNN - CALL NNN
// The stack grows downwards from slot 15; slot 0 is never written as the
// 4 bit stack pointer would wrap onto the empty marker.
func (c *CPU) call(ins Instruction, _ *TickResult) error {
	if c.sp == 0 {
		return &StackError{Err: ErrStackOverflow, Address: c.pc}
	}
	c.stack[c.sp] = c.pc
	c.sp--
	c.pc = ins.NNN
	return nil
}

// seImm: 3XKK - SE VX, KK
func (c *CPU) seImm(ins Instruction, _ *TickResult) error {
	c.skipIf(c.v[ins.X] == ins.KK)
	return nil
}

// sneImm: 4XKK - SNE VX, KK
func (c *CPU) sneImm(ins Instruction, _ *TickResult) error {
	c.skipIf(c.v[ins.X] != ins.KK)
	return nil
}

// seReg: 5XY0 - SE VX, VY
func (c *CPU) seReg(ins Instruction, _ *TickResult) error {
	c.skipIf(c.v[ins.X] == c.v[ins.Y])
	return nil
}

// sneReg: 9XY0 - SNE VX, VY
func (c *CPU) sneReg(ins Instruction, _ *TickResult) error {
	c.skipIf(c.v[ins.X] != c.v[ins.Y])
	return nil
}

// jmpReg: BNNN - JP V0, NNN
func (c *CPU) jmpReg(ins Instruction, _ *TickResult) error {
	c.pc = (ins.NNN + uint16(c.v[0])) & addressMask
	return nil
}
