package disasm

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembly representation of an opcode. Opcodes that
// are not identified are formatted as data bytes.
func Format(opcode uint16) string {
	return format(opcode, nil)
}

// format formats an opcode and replaces address parameters that have a
// label assigned by the label name.
func format(opcode uint16, labels map[uint16]string) string {
	ins, ok := Identify(opcode)
	if !ok {
		return fmt.Sprintf(".byte $%02X, $%02X", opcode>>8, opcode&0xFF)
	}

	name := ins.Name()
	if params := formatParams(name, opcode, labels); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func formatParams(name string, opcode uint16, labels map[uint16]string) string {
	switch name {
	case chip8cpu.Cls.Name, chip8cpu.Ret.Name:
		return "" // No parameters
	case chip8cpu.Jp.Name:
		return formatJump(opcode, labels)
	case chip8cpu.Call.Name:
		return formatAddress(opcode&0x0FFF, labels)
	case chip8cpu.Se.Name, chip8cpu.Sne.Name:
		return formatCompare(opcode)
	case chip8cpu.Ld.Name:
		return formatLoad(opcode, labels)
	case chip8cpu.Add.Name:
		return formatAdd(opcode)
	case chip8cpu.Or.Name, chip8cpu.And.Name, chip8cpu.Xor.Name, chip8cpu.Sub.Name, chip8cpu.Subn.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8cpu.Shr.Name, chip8cpu.Shl.Name, chip8cpu.Skp.Name, chip8cpu.Sknp.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8cpu.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8cpu.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

func formatAddress(address uint16, labels map[uint16]string) string {
	if name, ok := labels[address]; ok {
		return name
	}
	return fmt.Sprintf("$%03X", address)
}

// formatJump formats jump instructions (JP addr, JP V0, addr).
func formatJump(opcode uint16, labels map[uint16]string) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return formatAddress(opcode&0x0FFF, labels)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// formatLoad formats all LD variants.
func formatLoad(opcode uint16, labels map[uint16]string) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return "I, " + formatAddress(opcode&0x0FFF, labels)
	case 0xF000:
		return formatLoadMisc(opcode)
	}
	return ""
}

func formatLoadMisc(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy and ADD I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
