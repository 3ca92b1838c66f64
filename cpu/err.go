package cpu

import (
	"micro16/translate"
)

var f = translate.From

// ErrAddress is a physical address outside the addressable space.
type ErrAddress uint32

func (ea ErrAddress) Error() string {
	return f("physical address out of range: 0x%05X", uint32(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrOpcode is an opcode byte with no handler, with the location it was
// fetched from.
type ErrOpcode struct {
	Op      uint8
	Segment uint16
	Offset  uint16
}

func (eo ErrOpcode) Error() string {
	return f("unknown opcode 0x%02X at %04X:%04X (phys 0x%05X)",
		eo.Op, eo.Segment, eo.Offset, PhysAddr(eo.Segment, eo.Offset))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrRepeat is a repeat prefix followed by an opcode that is not a
// repeatable string instruction.
type ErrRepeat struct {
	Prefix uint8
	Op     uint8
}

func (er ErrRepeat) Error() string {
	return f("invalid opcode 0x%02X after repeat prefix 0x%02X", er.Op, er.Prefix)
}

func (er ErrRepeat) Is(err error) (ok bool) {
	_, ok = err.(ErrRepeat)
	return
}
