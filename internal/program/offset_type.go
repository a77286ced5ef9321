package program

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	DataOffset
	CodeAsData      // for branches into instructions and undecodable opcodes
	CallDestination // opcode is the destination of a CALL, indicating a subroutine
	DataReference   // address is loaded into I, usually sprite data
)

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	ret := o.Type&typ != 0
	return ret
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType unsets the type of the offset.
func (o *Offset) ClearType(typ OffsetType) {
	mask := ^(typ)
	o.Type &= mask
}
