package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/program"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations assigns label names to all jump, call and data
// reference destinations.
func (dis *Disasm) processJumpDestinations() {
	branchDestinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		branchDestinations = append(branchDestinations, dest)
	}
	slices.Sort(branchDestinations)

	for _, address := range branchDestinations {
		index, _ := dis.addressToIndex(address)
		offsetInfo := &dis.offsets[index]

		// the destination is inside the second byte of an instruction
		if !offsetInfo.IsType(program.CodeOffset) && index > 0 {
			previous := &dis.offsets[index-1]
			if previous.IsType(program.CodeOffset) && len(previous.Data) == opcodeSize {
				dis.changeToCodeAsData(previous)
				offsetInfo.SetType(program.DataOffset)
				offsetInfo.Data = dis.rom[index : index+1]
			}
		}

		if offsetInfo.Label != "" {
			continue
		}
		switch {
		case offsetInfo.IsType(program.CallDestination):
			offsetInfo.Label = fmt.Sprintf(funcNaming, address)
		case offsetInfo.IsType(program.CodeOffset):
			offsetInfo.Label = fmt.Sprintf(labelNaming, address)
		default:
			offsetInfo.Label = fmt.Sprintf(dataNaming, address)
		}
	}
}

// changeToCodeAsData converts an instruction into data bytes and keeps the
// instruction as comment.
func (dis *Disasm) changeToCodeAsData(offsetInfo *offset) {
	index, _ := dis.addressToIndex(offsetInfo.Address)

	offsetInfo.Comment = "branch into instruction detected: " + Format(offsetInfo.ins.Opcode())
	offsetInfo.ClearType(program.CodeOffset)
	offsetInfo.SetType(program.CodeAsData | program.DataOffset)
	offsetInfo.Data = dis.rom[index : index+1]

	second := &dis.offsets[index+1]
	if !second.IsType(program.CodeOffset) {
		second.SetType(program.DataOffset)
		second.Data = dis.rom[index+1 : index+2]
	}
}

// formatCode sets the assembly code of all instructions, using the
// assigned labels as parameters.
func (dis *Disasm) formatCode() {
	labels := make(map[uint16]string, len(dis.branchDestinations))
	for address := range dis.branchDestinations {
		index, _ := dis.addressToIndex(address)
		labels[address] = dis.offsets[index].Label
	}

	for i := range dis.offsets {
		offsetInfo := &dis.offsets[i]
		if !offsetInfo.IsType(program.CodeOffset) {
			continue
		}
		offsetInfo.Code = format(offsetInfo.ins.Opcode(), labels)
	}
}
