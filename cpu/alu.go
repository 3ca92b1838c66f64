package cpu

import (
	"math/bits"
)

// Flag derivation. Every instruction category routes its results through
// these helpers; none re-derives flags on its own. Add and subtract take
// the operands widened to 32 bits so carry and borrow beyond bit 15 stay
// visible.

// flagsZS sets Zero and Sign from a 16-bit result.
func (cpu *Cpu) flagsZS(result uint16) {
	cpu.Flags.Zero = result == 0
	cpu.Flags.Sign = (result & 0x8000) != 0
}

// flagsZSP sets Zero, Sign, and Parity. Parity is even popcount of the low
// byte.
func (cpu *Cpu) flagsZSP(result uint16) {
	cpu.flagsZS(result)
	cpu.Flags.Parity = bits.OnesCount8(uint8(result))%2 == 0
}

// flagsAdd derives all flags for a 16-bit addition of a and b with the wide
// result.
func (cpu *Cpu) flagsAdd(a uint16, b uint16, result uint32) {
	res := uint16(result)
	cpu.flagsZSP(res)
	cpu.Flags.Carry = result > 0xFFFF
	cpu.Flags.Overflow = ((a^res)&(b^res)&0x8000) != 0
}

// flagsSub derives all flags for a 16-bit subtraction a-b with the wide
// result. Carry is the borrow: a < b.
func (cpu *Cpu) flagsSub(a uint16, b uint16, result uint32) {
	res := uint16(result)
	cpu.flagsZSP(res)
	cpu.Flags.Carry = a < b
	cpu.Flags.Overflow = ((a^b)&(a^res)&0x8000) != 0
}

// flagsLogic derives flags for AND/OR/XOR/TEST results: Zero, Sign, Parity
// from the result, Carry and Overflow unconditionally cleared.
func (cpu *Cpu) flagsLogic(result uint16) {
	cpu.flagsZSP(result)
	cpu.Flags.Carry = false
	cpu.Flags.Overflow = false
}

// add16 computes a+b (plus an optional carry-in) with full flag derivation.
func (cpu *Cpu) add16(a uint16, b uint16, carryIn bool) (result uint16) {
	wide := uint32(a) + uint32(b)
	if carryIn {
		wide++
	}
	cpu.flagsAdd(a, b, wide)
	return uint16(wide)
}

// sub16 computes a-b (minus an optional borrow-in) with full flag derivation.
func (cpu *Cpu) sub16(a uint16, b uint16, borrowIn bool) (result uint16) {
	wide := uint32(a) - uint32(b)
	if borrowIn {
		wide--
	}
	cpu.flagsSub(a, b, wide)
	return uint16(wide)
}
