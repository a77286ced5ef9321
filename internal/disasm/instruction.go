package disasm

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Instruction is an opcode identified through the CHIP-8 instruction set table.
type Instruction struct {
	ins    *chip8cpu.Instruction
	opcode uint16
}

// Identify returns the instruction that the opcode encodes. Opcodes that
// the interpreter does not execute are not identified, so that the
// listing treats them as data.
func Identify(opcode uint16) (Instruction, bool) {
	if _, ok := chip8.OperationName(opcode); !ok {
		return Instruction{}, false
	}

	// the interpreter ignores the low nibble of register comparisons
	match := opcode
	if class := opcode >> 12; class == 0x5 || class == 0x9 {
		match &= 0xFFF0
	}

	for _, op := range chip8cpu.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&match == op.Info.Value && op.Instruction != nil {
			return Instruction{ins: op.Instruction, opcode: opcode}, true
		}
	}
	return Instruction{}, false
}

// Opcode returns the encoded opcode.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// IsNil returns true if the instruction is nil.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8cpu.Call
}

// IsJump returns true for absolute jumps with a known target.
func (i Instruction) IsJump() bool {
	return i.ins == chip8cpu.Jp && i.opcode&0xF000 == 0x1000
}

// IsIndirectJump returns true for JP V0, NNN whose target depends on V0.
func (i Instruction) IsIndirectJump() bool {
	return i.ins == chip8cpu.Jp && i.opcode&0xF000 == 0xB000
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8cpu.Ret
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(i.ins.Name)
}

// IsDataReference returns true if the instruction loads an address into I.
func (i Instruction) IsDataReference() bool {
	return i.ins == chip8cpu.Ld && i.opcode&0xF000 == 0xA000
}

// ReadsMemory returns true if the instruction reads from memory.
func (i Instruction) ReadsMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8cpu.MemoryReadInstructions.Contains(i.ins.Name)
}

// WritesMemory returns true if the instruction writes to memory.
func (i Instruction) WritesMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8cpu.MemoryWriteInstructions.Contains(i.ins.Name)
}

// EndsFlow returns true if execution never continues with the following
// instruction.
func (i Instruction) EndsFlow() bool {
	return i.IsJump() || i.IsIndirectJump() || i.IsReturn()
}

// Target returns the address encoded in the low 12 bits of the opcode.
func (i Instruction) Target() uint16 {
	return i.opcode & 0x0FFF
}
