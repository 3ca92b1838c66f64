package cpu

func (cpu *Cpu) opPushR() (cycles int) {
	reg := cpu.fetchReg()
	cpu.push(cpu.Reg[reg])
	return 2
}

func (cpu *Cpu) opPopR() (cycles int) {
	reg := cpu.fetchReg()
	cpu.Reg[reg] = cpu.pop()
	return 2
}

func (cpu *Cpu) opPushS() (cycles int) {
	seg := int(cpu.fetchByte() & 0x03)
	cpu.push(cpu.Seg[seg])
	return 2
}

func (cpu *Cpu) opPopS() (cycles int) {
	seg := int(cpu.fetchByte() & 0x03)
	cpu.Seg[seg] = cpu.pop()
	return 2
}

// PUSHA pushes AX through R7 in register-index order.
func (cpu *Cpu) opPusha() (cycles int) {
	for n := range len(cpu.Reg) {
		cpu.push(cpu.Reg[n])
	}
	return 10
}

// POPA pops R7 back through AX, restoring every register to its value at
// PUSHA time.
func (cpu *Cpu) opPopa() (cycles int) {
	for n := len(cpu.Reg) - 1; n >= 0; n-- {
		cpu.Reg[n] = cpu.pop()
	}
	return 10
}

// ENTER size, level: push the caller's BP, establish a new frame pointer,
// copy the chain of outer frame pointers for nested lexical levels, and
// reserve size bytes of locals.
func (cpu *Cpu) opEnter() (cycles int) {
	size := cpu.fetchWord()
	level := cpu.fetchByte()

	cpu.push(cpu.Reg[REG_BP])
	frame := cpu.SP
	if level > 0 {
		for n := 1; n < int(level); n++ {
			cpu.Reg[REG_BP] -= 2
			cpu.push(cpu.readWord(cpu.Seg[SEG_SS], cpu.Reg[REG_BP]))
		}
		cpu.push(frame)
	}
	cpu.Reg[REG_BP] = frame
	cpu.SP -= size
	return 10
}

// LEAVE is the exact inverse of ENTER: collapse the frame and restore the
// caller's BP.
func (cpu *Cpu) opLeave() (cycles int) {
	cpu.SP = cpu.Reg[REG_BP]
	cpu.Reg[REG_BP] = cpu.pop()
	return 4
}
