package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestUpdateKeyState(t *testing.T) {
	c := newTestCPU(t)
	c.UpdateKeyState(true, false, Key5)
	c.UpdateKeyState(true, true, KeyF)
	assert.Equal(t, uint16(0x8020), c.State().Keys)

	// repeated presses do not toggle the key
	c.UpdateKeyState(true, true, Key5)
	assert.Equal(t, uint16(0x8020), c.State().Keys)

	c.UpdateKeyState(false, false, Key5)
	assert.Equal(t, uint16(0x8000), c.State().Keys)

	c.UpdateKeyState(true, false, Key(KeyCount))
	assert.Equal(t, uint16(0x8000), c.State().Keys)
}

func TestKeysSurviveReset(t *testing.T) {
	c := newTestCPU(t)
	c.UpdateKeyState(true, false, KeyA)
	c.Reset(2)
	assert.Equal(t, uint16(1<<KeyA), c.State().Keys)
}

func TestSkipKey(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		vx      uint8
		pressed bool
		skip    bool
	}{
		{"SKP pressed", 0xE39E, 0x7, true, true},
		{"SKP released", 0xE39E, 0x7, false, false},
		{"SKNP pressed", 0xE3A1, 0x7, true, false},
		{"SKNP released", 0xE3A1, 0x7, false, true},
		{"SKP out of range key", 0xE39E, 0x17, true, false},
		{"SKNP out of range key", 0xE3A1, 0x17, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.v[3] = tt.vx
			c.UpdateKeyState(tt.pressed, false, Key7)
			execute(t, c, tt.opcode)

			expected := uint16(ProgramStart + 2)
			if tt.skip {
				expected += 2
			}
			assert.Equal(t, expected, c.pc)
		})
	}
}

func TestWaitForKey(t *testing.T) {
	c := newTestCPU(t, 0xF40A)
	c.v[4] = 0xEE

	for range 25 {
		tick(t, c)
		assert.Equal(t, uint16(ProgramStart), c.pc)
		assert.Equal(t, uint8(0xEE), c.v[4])
	}

	c.UpdateKeyState(true, false, Key9)
	c.UpdateKeyState(true, false, Key5)
	tick(t, c)
	assert.Equal(t, uint8(5), c.v[4])
	assert.Equal(t, uint16(ProgramStart+2), c.pc)
}

func TestWaitForKeyStillRunsTimers(t *testing.T) {
	c := newTestCPU(t, 0xF00A)
	c.dt = 2

	for range TimerDivider {
		tick(t, c)
	}
	assert.Equal(t, uint8(1), c.dt)
}
