// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Data    []byte // data byte or both opcode bytes of the instruction
	Address uint16

	Type OffsetType

	Label        string // name of label or subroutine if identified as a jump destination
	Code         string // asm output of this instruction
	Comment      string
	LabelComment string
}

// HexCodeComment returns the data bytes of the offset as hex string.
func (o Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}
	for _, b := range o.Data {
		if _, err := fmt.Fprintf(buf, "%02X ", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}
	return strings.TrimRight(buf.String(), " "), nil
}

// Checksums identifies the ROM the program was disassembled from.
type Checksums struct {
	XXH64 uint64
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Name            string
	CodeBaseAddress uint16
	Checksums       Checksums

	// Offsets covers the ROM image, index 0 is located at CodeBaseAddress.
	Offsets []Offset
}

// New creates a new program with space for size offsets.
func New(name string, codeBaseAddress uint16, size int) *Program {
	return &Program{
		Name:            name,
		CodeBaseAddress: codeBaseAddress,
		Offsets:         make([]Offset, size),
	}
}

// LastNonZeroOffset returns the index after the last offset that is not a
// zero data byte or that has a label. Trailing zero padding of a ROM
// image can be skipped in the output this way.
func (p *Program) LastNonZeroOffset() int {
	for i := len(p.Offsets) - 1; i >= 0; i-- {
		offset := p.Offsets[i]
		if (len(offset.Data) == 0 || offset.Data[0] == 0) && offset.Label == "" &&
			!offset.IsType(CodeOffset) {
			continue
		}
		return i + 1
	}
	return 0
}
