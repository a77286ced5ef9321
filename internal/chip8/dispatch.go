package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction. It is responsible for advancing
// the program counter and must not modify any state if it returns an error.
type handler func(c *CPU, ins Instruction, res *TickResult) error

type operation struct {
	name string
	exec handler
}

// classOps contains the instructions that are fully identified by the
// opcode class. Classes 0x0, 0x8, 0xE and 0xF use a second level table.
var classOps = [16]operation{
	0x1: {"JMP", (*CPU).jmp},
	0x2: {"CALL", (*CPU).call},
	0x3: {"SE_IMM", (*CPU).seImm},
	0x4: {"SNE_IMM", (*CPU).sneImm},
	0x5: {"SE_REG", (*CPU).seReg},
	0x6: {"LD_IMM", (*CPU).ldImm},
	0x7: {"ADD_IMM", (*CPU).addImm},
	0x9: {"SNE_REG", (*CPU).sneReg},
	0xA: {"LD_I", (*CPU).ldI},
	0xB: {"JMP_REG", (*CPU).jmpReg},
	0xC: {"RND", (*CPU).rnd},
	0xD: {"DRW", (*CPU).drw},
}

// systemOps is indexed by the low 12 bits of class 0x0 opcodes.
var systemOps = map[uint16]operation{
	0x0E0: {"CLS", (*CPU).cls},
	0x0EE: {"RET", (*CPU).ret},
}

// aluOps is indexed by the low nibble of class 0x8 opcodes.
var aluOps = [16]operation{
	0x0: {"LD_REG", (*CPU).ldReg},
	0x1: {"OR", (*CPU).or},
	0x2: {"AND", (*CPU).and},
	0x3: {"XOR", (*CPU).xor},
	0x4: {"ADD_REG", (*CPU).addReg},
	0x5: {"SUB_REG", (*CPU).subReg},
	0x6: {"SHR", (*CPU).shr},
	0x7: {"SUBN", (*CPU).subn},
	0xE: {"SHL", (*CPU).shl},
}

// keyOps is indexed by the low byte of class 0xE opcodes.
var keyOps = map[uint8]operation{
	0x9E: {"SKP", (*CPU).skp},
	0xA1: {"SKNP", (*CPU).sknp},
}

// miscOps is indexed by the low byte of class 0xF opcodes.
var miscOps = map[uint8]operation{
	0x07: {"LD_VX_DT", (*CPU).ldVxDt},
	0x0A: {"LD_KP", (*CPU).ldKp},
	0x15: {"LD_DT_VX", (*CPU).ldDtVx},
	0x18: {"LD_ST", (*CPU).ldSt},
	0x1E: {"ADD_I", (*CPU).addI},
	0x29: {"LD_SPRT", (*CPU).ldSprt},
	0x33: {"LD_BCD", (*CPU).ldBcd},
	0x55: {"LD_MEM", (*CPU).ldMem},
	0x65: {"LD_REGS", (*CPU).ldRegs},
}

func lookup(ins Instruction) (operation, bool) {
	var op operation
	switch ins.Class {
	case 0x0:
		op = systemOps[ins.NNN]
	case 0x8:
		op = aluOps[ins.N]
	case 0xE:
		op = keyOps[ins.KK]
	case 0xF:
		op = miscOps[ins.KK]
	default:
		op = classOps[ins.Class]
	}
	return op, op.exec != nil
}

// OperationName returns the name of the operation an opcode decodes to.
func OperationName(opcode uint16) (string, bool) {
	op, ok := lookup(Decode(opcode))
	return op.name, ok
}

// Tick fetches, decodes and executes the instruction at the program counter
// and advances the timers on every TimerDivider-th successful tick.
// An undecodable instruction or a stack violation returns an error and
// leaves the CPU state unchanged.
func (c *CPU) Tick() (TickResult, error) {
	address := c.pc
	opcode := uint16(c.memory[address&addressMask])<<8 | uint16(c.memory[(address+1)&addressMask])
	ins := Decode(opcode)

	op, ok := lookup(ins)
	if !ok {
		return TickResult{}, &UnknownOpcodeError{Opcode: opcode, Address: address}
	}

	if c.logger != nil {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", address),
			log.Hex("opcode", opcode),
			log.String("op", op.name))
	}

	var res TickResult
	if err := op.exec(c, ins, &res); err != nil {
		return TickResult{}, err
	}

	c.stepTimers()
	res.SoundActive = res.SoundActive || c.st != 0
	return res, nil
}
