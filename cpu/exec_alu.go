package cpu

func (cpu *Cpu) opAddRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] = cpu.add16(cpu.Reg[dst], cpu.Reg[src], false)
	return 2
}

func (cpu *Cpu) opAddRI() (cycles int) {
	reg := cpu.fetchReg()
	imm := cpu.fetchWord()
	cpu.Reg[reg] = cpu.add16(cpu.Reg[reg], imm, false)
	return 3
}

func (cpu *Cpu) opAdcRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] = cpu.add16(cpu.Reg[dst], cpu.Reg[src], cpu.Flags.Carry)
	return 2
}

func (cpu *Cpu) opAdcRI() (cycles int) {
	reg := cpu.fetchReg()
	imm := cpu.fetchWord()
	cpu.Reg[reg] = cpu.add16(cpu.Reg[reg], imm, cpu.Flags.Carry)
	return 3
}

func (cpu *Cpu) opSubRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] = cpu.sub16(cpu.Reg[dst], cpu.Reg[src], false)
	return 2
}

func (cpu *Cpu) opSubRI() (cycles int) {
	reg := cpu.fetchReg()
	imm := cpu.fetchWord()
	cpu.Reg[reg] = cpu.sub16(cpu.Reg[reg], imm, false)
	return 3
}

func (cpu *Cpu) opSbcRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] = cpu.sub16(cpu.Reg[dst], cpu.Reg[src], cpu.Flags.Carry)
	return 2
}

func (cpu *Cpu) opSbcRI() (cycles int) {
	reg := cpu.fetchReg()
	imm := cpu.fetchWord()
	cpu.Reg[reg] = cpu.sub16(cpu.Reg[reg], imm, cpu.Flags.Carry)
	return 3
}

// CMP derives flags like SUB but discards the result.
func (cpu *Cpu) opCmpRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.sub16(cpu.Reg[dst], cpu.Reg[src], false)
	return 2
}

func (cpu *Cpu) opCmpRI() (cycles int) {
	reg := cpu.fetchReg()
	imm := cpu.fetchWord()
	cpu.sub16(cpu.Reg[reg], imm, false)
	return 3
}

// NEG is 0 - Rd through the subtraction derivation.
func (cpu *Cpu) opNeg() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = cpu.sub16(0, cpu.Reg[reg], false)
	return 2
}

// INC updates flags through the add derivation but restores the prior
// carry: the ISA defines INC/DEC as carry-preserving.
func (cpu *Cpu) opInc() (cycles int) {
	reg := cpu.fetchReg()
	carry := cpu.Flags.Carry
	cpu.Reg[reg] = cpu.add16(cpu.Reg[reg], 1, false)
	cpu.Flags.Carry = carry
	return 1
}

func (cpu *Cpu) opDec() (cycles int) {
	reg := cpu.fetchReg()
	carry := cpu.Flags.Carry
	cpu.Reg[reg] = cpu.sub16(cpu.Reg[reg], 1, false)
	cpu.Flags.Carry = carry
	return 1
}

// MUL: DX:AX = AX * Rs unsigned. Carry and overflow report a high half
// that is non-zero.
func (cpu *Cpu) opMul() (cycles int) {
	reg := cpu.fetchReg()
	wide := uint32(cpu.Reg[REG_AX]) * uint32(cpu.Reg[reg])
	cpu.setDxax(wide)
	overflow := (wide >> 16) != 0
	cpu.Flags.Carry = overflow
	cpu.Flags.Overflow = overflow
	return 10
}

// IMUL: DX:AX = AX * Rs signed. Carry and overflow report a product that
// does not fit in AX alone.
func (cpu *Cpu) opImul() (cycles int) {
	reg := cpu.fetchReg()
	wide := int32(int16(cpu.Reg[REG_AX])) * int32(int16(cpu.Reg[reg]))
	cpu.setDxax(uint32(wide))
	overflow := wide != int32(int16(wide&0xFFFF))
	cpu.Flags.Carry = overflow
	cpu.Flags.Overflow = overflow
	return 12
}

// DIV: AX = DX:AX / Rs, DX = remainder, unsigned. Divide-by-zero and a
// quotient beyond 16 bits are synchronous faults through vector 0, leaving
// the operands untouched.
func (cpu *Cpu) opDiv() (cycles int) {
	reg := cpu.fetchReg()
	divisor := uint32(cpu.Reg[reg])
	if divisor == 0 {
		cpu.serviceInterrupt(0)
		return 15
	}
	dividend := cpu.dxax()
	quotient := dividend / divisor
	if quotient > 0xFFFF {
		cpu.serviceInterrupt(0)
		return 15
	}
	cpu.Reg[REG_AX] = uint16(quotient)
	cpu.Reg[REG_DX] = uint16(dividend % divisor)
	return 15
}

// IDIV: signed divide with the same vector-0 faults for a zero divisor or
// a quotient outside int16.
func (cpu *Cpu) opIdiv() (cycles int) {
	reg := cpu.fetchReg()
	divisor := int32(int16(cpu.Reg[reg]))
	if divisor == 0 {
		cpu.serviceInterrupt(0)
		return 18
	}
	dividend := int32(cpu.dxax())
	quotient := dividend / divisor
	if quotient > 0x7FFF || quotient < -0x8000 {
		cpu.serviceInterrupt(0)
		return 18
	}
	cpu.Reg[REG_AX] = uint16(int16(quotient))
	cpu.Reg[REG_DX] = uint16(int16(dividend % divisor))
	return 18
}

func (cpu *Cpu) opAndRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] &= cpu.Reg[src]
	cpu.flagsLogic(cpu.Reg[dst])
	return 2
}

func (cpu *Cpu) opAndRI() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] &= cpu.fetchWord()
	cpu.flagsLogic(cpu.Reg[reg])
	return 3
}

func (cpu *Cpu) opOrRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] |= cpu.Reg[src]
	cpu.flagsLogic(cpu.Reg[dst])
	return 2
}

func (cpu *Cpu) opOrRI() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] |= cpu.fetchWord()
	cpu.flagsLogic(cpu.Reg[reg])
	return 3
}

func (cpu *Cpu) opXorRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] ^= cpu.Reg[src]
	cpu.flagsLogic(cpu.Reg[dst])
	return 2
}

func (cpu *Cpu) opXorRI() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] ^= cpu.fetchWord()
	cpu.flagsLogic(cpu.Reg[reg])
	return 3
}

// NOT affects no flags.
func (cpu *Cpu) opNot() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = ^cpu.Reg[reg]
	return 2
}

func (cpu *Cpu) opTestRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.flagsLogic(cpu.Reg[dst] & cpu.Reg[src])
	return 2
}

func (cpu *Cpu) opTestRI() (cycles int) {
	reg := cpu.fetchReg()
	cpu.flagsLogic(cpu.Reg[reg] & cpu.fetchWord())
	return 3
}

// shiftCount decodes the shift selector byte: register in the high nibble,
// count in the low nibble. A zero count takes the count from CX instead.
func (cpu *Cpu) shiftCount() (reg int, count int) {
	sel := cpu.fetchByte()
	reg = int((sel >> 4) & 0x07)
	count = int(sel & 0x0F)
	if count == 0 {
		count = int(cpu.Reg[REG_CX] & 0x0F)
	}
	return
}

func (cpu *Cpu) opShl() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		cpu.Flags.Carry = (cpu.Reg[reg] & 0x8000) != 0
		cpu.Reg[reg] <<= 1
	}
	cpu.flagsZS(cpu.Reg[reg])
	return 3
}

func (cpu *Cpu) opShr() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		cpu.Flags.Carry = (cpu.Reg[reg] & 0x0001) != 0
		cpu.Reg[reg] >>= 1
	}
	cpu.flagsZS(cpu.Reg[reg])
	return 3
}

// SAR shifts right while replicating the sign bit.
func (cpu *Cpu) opSar() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		cpu.Flags.Carry = (cpu.Reg[reg] & 0x0001) != 0
		cpu.Reg[reg] = (cpu.Reg[reg] >> 1) | (cpu.Reg[reg] & 0x8000)
	}
	cpu.flagsZS(cpu.Reg[reg])
	return 3
}

func (cpu *Cpu) opRol() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		msb := (cpu.Reg[reg] & 0x8000) != 0
		cpu.Reg[reg] <<= 1
		if msb {
			cpu.Reg[reg] |= 1
		}
		cpu.Flags.Carry = msb
	}
	return 3
}

func (cpu *Cpu) opRor() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		lsb := (cpu.Reg[reg] & 0x0001) != 0
		cpu.Reg[reg] >>= 1
		if lsb {
			cpu.Reg[reg] |= 0x8000
		}
		cpu.Flags.Carry = lsb
	}
	return 3
}

func (cpu *Cpu) opRcl() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		carry := cpu.Flags.Carry
		cpu.Flags.Carry = (cpu.Reg[reg] & 0x8000) != 0
		cpu.Reg[reg] <<= 1
		if carry {
			cpu.Reg[reg] |= 1
		}
	}
	return 3
}

func (cpu *Cpu) opRcr() (cycles int) {
	reg, count := cpu.shiftCount()
	for range count {
		carry := cpu.Flags.Carry
		cpu.Flags.Carry = (cpu.Reg[reg] & 0x0001) != 0
		cpu.Reg[reg] >>= 1
		if carry {
			cpu.Reg[reg] |= 0x8000
		}
	}
	return 3
}
