package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCallReturn(t *testing.T) {
	for sp := uint8(1); sp < StackSize; sp++ {
		c := newTestCPU(t)
		c.sp = sp
		c.pc = 0x300

		execute(t, c, 0x2400)
		assert.Equal(t, uint16(0x400), c.pc)
		assert.Equal(t, sp-1, c.sp)
		assert.Equal(t, uint16(0x300), c.stack[sp])

		execute(t, c, 0x00EE)
		assert.Equal(t, uint16(0x302), c.pc)
		assert.Equal(t, sp, c.sp)
	}
}

func TestNestedCalls(t *testing.T) {
	c := newTestCPU(t,
		0x2206, // 0x200: CALL 0x206
		0x6101, // 0x202: LD V1, 1
		0x1204, // 0x204: JP 0x204
		0x220A, // 0x206: CALL 0x20A
		0x00EE, // 0x208: RET
		0x6202, // 0x20A: LD V2, 2
		0x00EE, // 0x20C: RET
	)

	for range 7 {
		tick(t, c)
	}
	assert.Equal(t, uint8(1), c.v[1])
	assert.Equal(t, uint8(2), c.v[2])
	assert.Equal(t, uint16(0x204), c.pc)
	assert.Equal(t, uint8(stackEmpty), c.sp)
}

func TestStackOverflow(t *testing.T) {
	c := newTestCPU(t, 0x2200) // recursive call to itself

	for range StackSize - 1 {
		tick(t, c)
	}
	assert.Equal(t, uint8(0), c.sp)
	before := c.State()

	_, err := c.Tick()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.ErrorContains(t, err, "0x0200")

	var stackErr *StackError
	assert.True(t, errors.As(err, &stackErr))
	assert.Equal(t, uint16(0x200), stackErr.Address)
	assert.Equal(t, before, c.State())
}

func TestStackUnderflow(t *testing.T) {
	c := newTestCPU(t, 0x00EE)
	before := c.State()

	_, err := c.Tick()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.False(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, before, c.State())
}

func TestJumps(t *testing.T) {
	c := newTestCPU(t)
	execute(t, c, 0x1ABC)
	assert.Equal(t, uint16(0xABC), c.pc)

	c.v[0] = 0x10
	execute(t, c, 0xB300)
	assert.Equal(t, uint16(0x310), c.pc)

	c.v[0] = 0xFF
	execute(t, c, 0xBFFF)
	assert.Equal(t, uint16(0x0FE), c.pc)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		v1, v2 uint8
		skip   bool
	}{
		{"SE_IMM equal", 0x3142, 0x42, 0, true},
		{"SE_IMM not equal", 0x3142, 0x41, 0, false},
		{"SNE_IMM equal", 0x4142, 0x42, 0, false},
		{"SNE_IMM not equal", 0x4142, 0x41, 0, true},
		{"SE_REG equal", 0x5120, 7, 7, true},
		{"SE_REG not equal", 0x5120, 7, 8, false},
		{"SNE_REG equal", 0x9120, 7, 7, false},
		{"SNE_REG not equal", 0x9120, 7, 8, true},
		{"SE_REG ignores low nibble", 0x5127, 7, 7, true},
		{"SNE_REG ignores low nibble", 0x912F, 7, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.v[1] = tt.v1
			c.v[2] = tt.v2
			execute(t, c, tt.opcode)

			expected := uint16(ProgramStart + 2)
			if tt.skip {
				expected += 2
			}
			assert.Equal(t, expected, c.pc)
		})
	}
}

func TestClearScreen(t *testing.T) {
	c := newTestCPU(t)
	c.display[0] = 0xFF
	c.display[DisplaySize-1] = 0x01

	res := execute(t, c, 0x00E0)
	assert.True(t, res.DisplayDirty)
	assert.Equal(t, Frame{}, c.Display())
}
