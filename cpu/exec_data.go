package cpu

func (cpu *Cpu) opMovRR() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst] = cpu.Reg[src]
	return 2
}

func (cpu *Cpu) opMovRI() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = cpu.fetchWord()
	return 3
}

func (cpu *Cpu) opXchg() (cycles int) {
	dst, src := cpu.fetchRegPair()
	cpu.Reg[dst], cpu.Reg[src] = cpu.Reg[src], cpu.Reg[dst]
	return 3
}

// MOV Seg, Rs: segment selector in the high nibble, register in the low.
func (cpu *Cpu) opMovSR() (cycles int) {
	sel := cpu.fetchByte()
	seg := int((sel >> 4) & 0x03)
	reg := int(sel & 0x07)
	cpu.Seg[seg] = cpu.Reg[reg]
	return 2
}

// MOV Rd, Seg: register selector in the high nibble, segment in the low.
func (cpu *Cpu) opMovRS() (cycles int) {
	sel := cpu.fetchByte()
	reg := int((sel >> 4) & 0x07)
	seg := int(sel & 0x03)
	cpu.Reg[reg] = cpu.Seg[seg]
	return 2
}

func (cpu *Cpu) opMovRSp() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = cpu.SP
	return 2
}

func (cpu *Cpu) opMovSpR() (cycles int) {
	reg := cpu.fetchReg()
	cpu.SP = cpu.Reg[reg]
	return 2
}

// ADD SP, #imm16 adjusts the stack pointer without touching flags, like
// any other silent register wrap.
func (cpu *Cpu) opAddSpI() (cycles int) {
	cpu.SP += cpu.fetchWord()
	return 3
}

func (cpu *Cpu) opSubSpI() (cycles int) {
	cpu.SP -= cpu.fetchWord()
	return 3
}

func (cpu *Cpu) opLd() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	cpu.Reg[reg] = cpu.readWord(cpu.Seg[SEG_DS], addr)
	return 4
}

func (cpu *Cpu) opSt() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	cpu.writeWord(cpu.Seg[SEG_DS], addr, cpu.Reg[reg])
	return 4
}

// LDB zero-extends the loaded byte.
func (cpu *Cpu) opLdb() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	cpu.Reg[reg] = uint16(cpu.readByte(cpu.Seg[SEG_DS], addr))
	return 4
}

func (cpu *Cpu) opStb() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	cpu.writeByte(cpu.Seg[SEG_DS], addr, uint8(cpu.Reg[reg]&0xFF))
	return 4
}

// LD Rd, [Rs + disp]: signed 16-bit displacement off a base register,
// through the data segment.
func (cpu *Cpu) opLdIdx() (cycles int) {
	dst, base := cpu.fetchRegPair()
	disp := int16(cpu.fetchWord())
	addr := cpu.Reg[base] + uint16(disp)
	cpu.Reg[dst] = cpu.readWord(cpu.Seg[SEG_DS], addr)
	return 5
}

// ST [Rd + disp], Rs: base register in the high nibble, source in the low.
func (cpu *Cpu) opStIdx() (cycles int) {
	base, src := cpu.fetchRegPair()
	disp := int16(cpu.fetchWord())
	addr := cpu.Reg[base] + uint16(disp)
	cpu.writeWord(cpu.Seg[SEG_DS], addr, cpu.Reg[src])
	return 5
}

// LEA computes the offset only; no memory access, no flags.
func (cpu *Cpu) opLea() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = cpu.fetchWord()
	return 3
}

// LDS loads a far pointer into DS:Rd. Both words are read through the data
// segment in effect before the load; the segment register is assigned last.
func (cpu *Cpu) opLds() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	ds := cpu.Seg[SEG_DS]
	cpu.Reg[reg] = cpu.readWord(ds, addr)
	cpu.Seg[SEG_DS] = cpu.readWord(ds, addr+2)
	return 6
}

// LES loads a far pointer into ES:Rd, read through the data segment.
func (cpu *Cpu) opLes() (cycles int) {
	reg := cpu.fetchReg()
	addr := cpu.fetchWord()
	ds := cpu.Seg[SEG_DS]
	cpu.Reg[reg] = cpu.readWord(ds, addr)
	cpu.Seg[SEG_ES] = cpu.readWord(ds, addr+2)
	return 6
}

// LD Rd, [SP + disp]: SP-relative access goes through the stack segment.
func (cpu *Cpu) opLdIdxSp() (cycles int) {
	reg := cpu.fetchReg()
	disp := int16(cpu.fetchWord())
	addr := cpu.SP + uint16(disp)
	cpu.Reg[reg] = cpu.readWord(cpu.Seg[SEG_SS], addr)
	return 5
}

func (cpu *Cpu) opStIdxSp() (cycles int) {
	reg := cpu.fetchReg()
	disp := int16(cpu.fetchWord())
	addr := cpu.SP + uint16(disp)
	cpu.writeWord(cpu.Seg[SEG_SS], addr, cpu.Reg[reg])
	return 5
}
