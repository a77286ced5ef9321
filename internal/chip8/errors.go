package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooLarge is returned when a program does not fit into the program space.
	ErrROMTooLarge = errors.New("ROM too large")
	// ErrEmptyROM is returned when a program image contains no data.
	ErrEmptyROM = errors.New("ROM is empty")

	// ErrStackOverflow is wrapped by a StackError for a CALL on a full stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is wrapped by a StackError for a RET on an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// UnknownOpcodeError is returned by Tick for an instruction that can not be
// decoded. The CPU state is left unchanged.
type UnknownOpcodeError struct {
	Opcode  uint16
	Address uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at address 0x%04X", e.Opcode, e.Address)
}

// StackError is returned by Tick when a CALL or RET would move the stack
// pointer out of its range. The CPU state is left unchanged.
type StackError struct {
	Err     error // ErrStackOverflow or ErrStackUnderflow
	Address uint16
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%s at address 0x%04X", e.Err, e.Address)
}

func (e *StackError) Unwrap() error {
	return e.Err
}
