package cpu

// jumpIf fetches the absolute target and takes the jump when the condition
// holds. Untaken branches consume the same cycles as taken ones.
func (cpu *Cpu) jumpIf(take bool) (cycles int) {
	target := cpu.fetchWord()
	if take {
		cpu.PC = target
	}
	return 3
}

func (cpu *Cpu) opJmp() (cycles int) {
	cpu.PC = cpu.fetchWord()
	return 3
}

// JMP seg:offset encodes the offset word first, matching the vector table
// layout.
func (cpu *Cpu) opJmpFar() (cycles int) {
	offset := cpu.fetchWord()
	segment := cpu.fetchWord()
	cpu.Seg[SEG_CS] = segment
	cpu.PC = offset
	return 4
}

func (cpu *Cpu) opJmpR() (cycles int) {
	reg := cpu.fetchReg()
	cpu.PC = cpu.Reg[reg]
	return 2
}

// JR adds a signed 8-bit displacement to the PC after the operand fetch.
func (cpu *Cpu) opJr() (cycles int) {
	disp := int8(cpu.fetchByte())
	cpu.PC += uint16(int16(disp))
	return 2
}

func (cpu *Cpu) opJz() (cycles int)  { return cpu.jumpIf(cpu.Flags.Zero) }
func (cpu *Cpu) opJnz() (cycles int) { return cpu.jumpIf(!cpu.Flags.Zero) }
func (cpu *Cpu) opJc() (cycles int)  { return cpu.jumpIf(cpu.Flags.Carry) }
func (cpu *Cpu) opJnc() (cycles int) { return cpu.jumpIf(!cpu.Flags.Carry) }
func (cpu *Cpu) opJs() (cycles int)  { return cpu.jumpIf(cpu.Flags.Sign) }
func (cpu *Cpu) opJns() (cycles int) { return cpu.jumpIf(!cpu.Flags.Sign) }
func (cpu *Cpu) opJo() (cycles int)  { return cpu.jumpIf(cpu.Flags.Overflow) }
func (cpu *Cpu) opJno() (cycles int) { return cpu.jumpIf(!cpu.Flags.Overflow) }

// Signed comparisons combine Sign and Overflow the usual way.
func (cpu *Cpu) opJl() (cycles int) {
	return cpu.jumpIf(cpu.Flags.Sign != cpu.Flags.Overflow)
}

func (cpu *Cpu) opJge() (cycles int) {
	return cpu.jumpIf(cpu.Flags.Sign == cpu.Flags.Overflow)
}

func (cpu *Cpu) opJle() (cycles int) {
	return cpu.jumpIf(cpu.Flags.Zero || cpu.Flags.Sign != cpu.Flags.Overflow)
}

func (cpu *Cpu) opJg() (cycles int) {
	return cpu.jumpIf(!cpu.Flags.Zero && cpu.Flags.Sign == cpu.Flags.Overflow)
}

// Unsigned comparisons use Carry as the below indicator.
func (cpu *Cpu) opJa() (cycles int) {
	return cpu.jumpIf(!cpu.Flags.Carry && !cpu.Flags.Zero)
}

func (cpu *Cpu) opJbe() (cycles int) {
	return cpu.jumpIf(cpu.Flags.Carry || cpu.Flags.Zero)
}

func (cpu *Cpu) opCall() (cycles int) {
	target := cpu.fetchWord()
	cpu.push(cpu.PC)
	cpu.PC = target
	return 4
}

// CALL seg:offset pushes CS before PC so RETF can pop them in reverse.
func (cpu *Cpu) opCallFar() (cycles int) {
	offset := cpu.fetchWord()
	segment := cpu.fetchWord()
	cpu.push(cpu.Seg[SEG_CS])
	cpu.push(cpu.PC)
	cpu.Seg[SEG_CS] = segment
	cpu.PC = offset
	return 6
}

func (cpu *Cpu) opCallR() (cycles int) {
	reg := cpu.fetchReg()
	cpu.push(cpu.PC)
	cpu.PC = cpu.Reg[reg]
	return 3
}

func (cpu *Cpu) opRet() (cycles int) {
	cpu.PC = cpu.pop()
	return 3
}

func (cpu *Cpu) opRetFar() (cycles int) {
	cpu.PC = cpu.pop()
	cpu.Seg[SEG_CS] = cpu.pop()
	return 4
}

// RET imm16 pops the return address and then discards imm bytes of
// arguments.
func (cpu *Cpu) opRetI() (cycles int) {
	imm := cpu.fetchWord()
	cpu.PC = cpu.pop()
	cpu.SP += imm
	return 4
}

// loopIf decrements CX first and then branches when CX is non-zero and the
// extra condition holds.
func (cpu *Cpu) loopIf(cond bool) (cycles int) {
	disp := int8(cpu.fetchByte())
	cpu.Reg[REG_CX]--
	if cpu.Reg[REG_CX] != 0 && cond {
		cpu.PC += uint16(int16(disp))
	}
	return 2
}

func (cpu *Cpu) opLoop() (cycles int) {
	return cpu.loopIf(true)
}

func (cpu *Cpu) opLoopz() (cycles int) {
	return cpu.loopIf(cpu.Flags.Zero)
}

func (cpu *Cpu) opLoopnz() (cycles int) {
	return cpu.loopIf(!cpu.Flags.Zero)
}
