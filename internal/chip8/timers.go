package chip8

// stepTimers decrements the delay and sound timers once every
// TimerDivider ticks.
func (c *CPU) stepTimers() {
	c.timerTicks++
	if c.timerTicks < TimerDivider {
		return
	}
	c.timerTicks = 0

	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// ldVxDt: FX07 - LD VX, DT
func (c *CPU) ldVxDt(ins Instruction, _ *TickResult) error {
	c.v[ins.X] = c.dt
	c.next()
	return nil
}

// ldDtVx: FX15 - LD DT, VX
func (c *CPU) ldDtVx(ins Instruction, _ *TickResult) error {
	c.dt = c.v[ins.X]
	c.next()
	return nil
}

// ldSt: FX18 - LD ST, VX
func (c *CPU) ldSt(ins Instruction, res *TickResult) error {
	c.st = c.v[ins.X]
	if c.st != 0 {
		res.SoundActive = true
	}
	c.next()
	return nil
}
