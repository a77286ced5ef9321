// Package chip8 implements the CHIP-8 virtual CPU: memory, registers, call
// stack, framebuffer, timers and keypad, driven one instruction per Tick.
package chip8

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/exp/rand"
)

// CHIP-8 machine layout constants.
//
//	0x000-0x04F: built-in font, 16 glyphs of 5 bytes
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000
	// FontSize is the size of the built-in font table at address 0.
	FontSize = 0x50
	// ProgramStart is the address programs are loaded to and started from.
	ProgramStart = 0x200
	// MaxROMSize is the largest program that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16
	// StackSize is the number of return address slots.
	StackSize = 16

	// TimerDivider is the number of ticks between two timer decrements.
	// It maps the host tick rate of TickRate to the timer rate.
	TimerDivider = 10
	// TickRate is the tick frequency in Hz the timer divider is designed for.
	TickRate = 500

	addressMask = MemorySize - 1
	stackEmpty  = StackSize - 1
	flagReg     = 0xF
)

// TickResult reports host relevant state changes of a single tick.
type TickResult struct {
	DisplayDirty bool // framebuffer was cleared or drawn to
	SoundActive  bool // sound timer is running
}

// State is a snapshot of the CPU registers, used for tracing and debugging.
type State struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	DT    uint8
	ST    uint8
	Stack [StackSize]uint16
	Keys  uint16
}

// CPU is a CHIP-8 interpreter instance. It is not safe for concurrent use,
// the host is expected to call all methods from the same goroutine.
type CPU struct {
	memory  [MemorySize]byte
	v       [RegisterCount]uint8
	stack   [StackSize]uint16
	display Frame

	i  uint16
	pc uint16
	sp uint8 // 4 bit, StackSize-1 means empty
	dt uint8
	st uint8

	timerTicks uint8
	keys       uint16

	rng    *rand.Rand
	logger *log.Logger
}

// Option configures optional CPU settings.
type Option func(*CPU)

// WithLogger sets a logger that receives a debug trace of every executed
// instruction.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// New returns a reset CPU with the font loaded and the random generator
// seeded with the given seed.
func New(seed uint64, opts ...Option) *CPU {
	c := &CPU{}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset(seed)
	return c
}

// NewWithROM returns a new CPU and loads the program read from rom.
// The caller owns rom and is responsible for closing it.
func NewWithROM(seed uint64, rom io.Reader, opts ...Option) (*CPU, error) {
	c := New(seed, opts...)
	if err := c.Load(rom); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset reinitializes memory, registers, stack, display and timers and
// reseeds the random generator. The keypad state is kept as it mirrors
// the physical host keys.
func (c *CPU) Reset(seed uint64) {
	c.memory = [MemorySize]byte{}
	copy(c.memory[:], font[:])

	c.v = [RegisterCount]uint8{}
	c.stack = [StackSize]uint16{}
	c.display = Frame{}
	c.i = 0
	c.dt = 0
	c.st = 0
	c.timerTicks = 0
	c.pc = ProgramStart
	c.sp = stackEmpty

	c.rng = rand.New(rand.NewSource(seed))
}

// Load reads a raw program image from rom and copies it to the program
// space. Memory after the program is zero filled. An image larger than
// MaxROMSize is rejected without modifying memory.
func (c *CPU) Load(rom io.Reader) error {
	buf := make([]byte, MaxROMSize+1)
	n, err := io.ReadFull(rom, buf)
	switch {
	case err == nil:
		return fmt.Errorf("%w: more than %d bytes", ErrROMTooLarge, MaxROMSize)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	default:
		return fmt.Errorf("reading ROM: %w", err)
	}
	return c.LoadBytes(buf[:n])
}

// LoadBytes copies a raw program image to the program space.
func (c *CPU) LoadBytes(rom []byte) error {
	if len(rom) == 0 {
		return ErrEmptyROM
	}
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	clear(c.memory[ProgramStart:])
	copy(c.memory[ProgramStart:], rom)
	return nil
}

// Display returns a copy of the framebuffer.
func (c *CPU) Display() Frame {
	return c.display
}

// State returns a snapshot of the registers, stack and keypad.
func (c *CPU) State() State {
	return State{
		V:     c.v,
		I:     c.i,
		PC:    c.pc,
		SP:    c.sp,
		DT:    c.dt,
		ST:    c.st,
		Stack: c.stack,
		Keys:  c.keys,
	}
}

// ReadMemory returns the byte at the given address, wrapped to the
// address space.
func (c *CPU) ReadMemory(address uint16) byte {
	return c.memory[address&addressMask]
}

// next advances the program counter to the following instruction.
func (c *CPU) next() {
	c.pc = (c.pc + 2) & addressMask
}

// skipIf advances the program counter and skips the following instruction
// if cond holds.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.next()
	}
	c.next()
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
