package cpu

func (cpu *Cpu) opNop() (cycles int) {
	return 1
}

func (cpu *Cpu) opHlt() (cycles int) {
	cpu.Halted = true
	return 1
}

func (cpu *Cpu) opWait() (cycles int) {
	cpu.Waiting = true
	return 1
}

// LOCK is a bus arbitration prefix; with a single bus master it has no
// effect beyond its cycle cost.
func (cpu *Cpu) opLock() (cycles int) {
	return 1
}

// INT services the requested vector unconditionally, regardless of the
// interrupt enable flag.
func (cpu *Cpu) opInt() (cycles int) {
	vector := cpu.fetchByte()
	cpu.serviceInterrupt(vector)
	return 5
}

// IRET pops PC, CS, and flags, the reverse of the interrupt entry sequence.
func (cpu *Cpu) opIret() (cycles int) {
	cpu.PC = cpu.pop()
	cpu.Seg[SEG_CS] = cpu.pop()
	cpu.Flags.SetWord(cpu.pop())
	return 5
}

func (cpu *Cpu) opCli() (cycles int) {
	cpu.Flags.Interrupt = false
	return 1
}

func (cpu *Cpu) opSti() (cycles int) {
	cpu.Flags.Interrupt = true
	return 1
}

func (cpu *Cpu) opClc() (cycles int) {
	cpu.Flags.Carry = false
	return 1
}

func (cpu *Cpu) opStc() (cycles int) {
	cpu.Flags.Carry = true
	return 1
}

func (cpu *Cpu) opCmc() (cycles int) {
	cpu.Flags.Carry = !cpu.Flags.Carry
	return 1
}

func (cpu *Cpu) opCld() (cycles int) {
	cpu.Flags.Direction = false
	return 1
}

func (cpu *Cpu) opStd() (cycles int) {
	cpu.Flags.Direction = true
	return 1
}

func (cpu *Cpu) opPushf() (cycles int) {
	cpu.push(cpu.Flags.Word())
	return 2
}

func (cpu *Cpu) opPopf() (cycles int) {
	cpu.Flags.SetWord(cpu.pop())
	return 2
}
