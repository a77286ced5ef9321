package chip8

// Instruction is a decoded 16 bit CHIP-8 instruction word.
//
// Field layout of the opcode word:
//
//	CXYN
//	  KK
//	 NNN
type Instruction struct {
	Opcode uint16
	Class  uint8  // bits 15-12
	X      uint8  // bits 11-8, register operand
	Y      uint8  // bits 7-4, register operand
	N      uint8  // bits 3-0, nibble operand
	KK     uint8  // bits 7-0, byte operand
	NNN    uint16 // bits 11-0, address operand
}

// Decode splits an opcode word into its operand fields.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Class:  uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		KK:     uint8(opcode),
		NNN:    opcode & addressMask,
	}
}
