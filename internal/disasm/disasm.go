// Package disasm implements a CHIP-8 disassembler that follows the
// execution flow of a program to separate code from data.
package disasm

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// offset extends program.Offset with disassembler internal state.
type offset struct {
	program.Offset

	ins        Instruction // instruction this offset represents
	branchFrom []uint16    // list of all addresses that branch to this offset
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	name    string
	rom     []byte
	offsets []offset

	codeBaseAddress uint16

	branchDestinations set.Set[uint16] // set of all addresses that are branched to

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
	offsetsParsed       set.Set[uint16]
}

// New creates a new disassembler for the given ROM image.
func New(logger *log.Logger, name string, rom []byte, options options.Disassembler) (*Disasm, error) {
	if len(rom) == 0 {
		return nil, chip8.ErrEmptyROM
	}
	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", chip8.ErrROMTooLarge, len(rom), chip8.MaxROMSize)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		name:                name,
		rom:                 rom,
		offsets:             make([]offset, len(rom)),
		codeBaseAddress:     chip8.ProgramStart,
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
		offsetsParsed:       set.New[uint16](),
	}

	for i := range dis.offsets {
		dis.offsets[i].Address = dis.codeBaseAddress + uint16(i)
	}
	return dis, nil
}

// Process disassembles the ROM and returns the program representation
// that can be written with the writer package.
func (dis *Disasm) Process(ctx context.Context) (*program.Program, error) {
	dis.offsets[0].Label = "Start"
	dis.addAddressToParse(dis.codeBaseAddress, 0, Instruction{}, false)

	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}

	dis.processData()
	dis.processJumpDestinations()
	dis.formatCode()

	dis.logger.Debug("Disassembly finished",
		log.String("name", dis.name),
		log.Int("instructions", len(dis.offsetsParsed)),
		log.Int("labels", len(dis.branchDestinations)))

	return dis.convertToProgram(), nil
}

func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}
	return nil
}

// processOffset identifies the instruction at the given address and queues
// all addresses that execution can continue at.
func (dis *Disasm) processOffset(address uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok || index+opcodeSize > len(dis.rom) {
		return
	}
	offsetInfo := &dis.offsets[index]
	if offsetInfo.IsType(program.CodeOffset) {
		return
	}

	opcode := uint16(dis.rom[index])<<8 | uint16(dis.rom[index+1])
	ins, ok := Identify(opcode)
	if !ok {
		// consider an unknown instruction as start of data
		offsetInfo.SetType(program.DataOffset)
		return
	}

	dis.offsetsParsed.Add(address)
	offsetInfo.ins = ins
	offsetInfo.Data = dis.rom[index : index+opcodeSize]
	offsetInfo.SetType(program.CodeOffset)
	dis.checkInstructionOverlap(index)

	next := address + opcodeSize
	switch {
	case ins.IsJump():
		dis.addAddressToParse(ins.Target(), address, ins, true)

	case ins.IsCall():
		dis.addAddressToParse(ins.Target(), address, ins, true)
		dis.addAddressToParse(next, address, ins, false)

	case ins.IsSkip():
		dis.addAddressToParse(next, address, ins, false)
		dis.addAddressToParse(next+opcodeSize, address, ins, false)

	case ins.IsDataReference():
		dis.addDataReference(ins.Target(), address)
		dis.addAddressToParse(next, address, ins, false)

	case !ins.EndsFlow():
		dis.addAddressToParse(next, address, ins, false)
	}
}

// checkInstructionOverlap converts instructions that start inside of the
// second byte of another instruction into data.
func (dis *Disasm) checkInstructionOverlap(index int) {
	if index > 0 {
		previous := &dis.offsets[index-1]
		if previous.IsType(program.CodeOffset) && len(previous.Data) == opcodeSize {
			dis.changeToCodeAsData(previous)
		}
	}
	if index+1 < len(dis.offsets) {
		following := &dis.offsets[index+1]
		if following.IsType(program.CodeOffset) && len(following.Data) == opcodeSize {
			dis.changeToCodeAsData(following)
		}
	}
}

// addAddressToParse adds an address to the list to be processed if the address has not been processed yet.
func (dis *Disasm) addAddressToParse(address, from uint16, current Instruction, isABranchDestination bool) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		// targets outside of the ROM, for example in the interpreter area
		return
	}
	offsetInfo := &dis.offsets[index]

	if isABranchDestination {
		if current.IsCall() {
			offsetInfo.SetType(program.CallDestination)
		}
		offsetInfo.branchFrom = append(offsetInfo.branchFrom, from)
		dis.branchDestinations.Add(address)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// addDataReference marks the target of an LD I instruction as data.
func (dis *Disasm) addDataReference(address, from uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return
	}
	offsetInfo := &dis.offsets[index]
	offsetInfo.SetType(program.DataReference)
	offsetInfo.branchFrom = append(offsetInfo.branchFrom, from)
	dis.branchDestinations.Add(address)
}

// processData assigns the data bytes to all offsets that are not code.
func (dis *Disasm) processData() {
	for i := range dis.offsets {
		offsetInfo := &dis.offsets[i]
		if offsetInfo.IsType(program.CodeOffset) {
			continue
		}
		if i > 0 && dis.offsets[i-1].IsType(program.CodeOffset) && len(dis.offsets[i-1].Data) == opcodeSize {
			continue // second opcode byte
		}
		offsetInfo.SetType(program.DataOffset)
		offsetInfo.Data = dis.rom[i : i+1]
	}
}

func (dis *Disasm) addressToIndex(address uint16) (int, bool) {
	if address < dis.codeBaseAddress {
		return 0, false
	}
	index := int(address - dis.codeBaseAddress)
	return index, index < len(dis.offsets)
}

// converts the internal disassembly representation to a program type that will be used by
// the writer to generate the asm file.
func (dis *Disasm) convertToProgram() *program.Program {
	app := program.New(dis.name, dis.codeBaseAddress, len(dis.offsets))
	app.Checksums.XXH64 = xxhash.Sum64(dis.rom)

	for i, offsetInfo := range dis.offsets {
		app.Offsets[i] = offsetInfo.Offset
	}
	return app
}
