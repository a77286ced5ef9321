package chip8

import "math/bits"

// Key is one of the 16 keys of the hex keypad.
type Key uint8

// Keypad keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// KeyCount is the number of keypad keys.
	KeyCount = 16
)

// UpdateKeyState sets the pressed state of a key. Repeat events are
// accepted but do not change the level triggered key state. Keys outside
// of the keypad range are ignored.
func (c *CPU) UpdateKeyState(pressed, isRepeat bool, key Key) {
	if key >= KeyCount {
		return
	}
	mask := uint16(1) << key
	if pressed {
		c.keys |= mask
	} else {
		c.keys &^= mask
	}
}

func (c *CPU) keyDown(key uint8) bool {
	return key < KeyCount && c.keys&(1<<key) != 0
}

// skp: EX9E - SKP VX
func (c *CPU) skp(ins Instruction, _ *TickResult) error {
	c.skipIf(c.keyDown(c.v[ins.X]))
	return nil
}

// sknp: EXA1 - SKNP VX
func (c *CPU) sknp(ins Instruction, _ *TickResult) error {
	c.skipIf(!c.keyDown(c.v[ins.X]))
	return nil
}

// ldKp: FX0A - LD VX, K
// Waits for any key being held: the instruction is repeated until the
// keypad state is non zero, then VX receives the lowest held key.
func (c *CPU) ldKp(ins Instruction, _ *TickResult) error {
	if c.keys == 0 {
		return nil
	}
	c.v[ins.X] = uint8(bits.TrailingZeros16(c.keys))
	c.next()
	return nil
}
