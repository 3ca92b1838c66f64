package cpu

// String instructions read through DS:SI and write through ES:DI, advancing
// the index registers by the element width, downward when the direction
// flag is set. Each primitive below performs exactly one element; the
// repeat prefixes drive them in a loop counted by CX.

// strDelta is the signed index advance for one element.
func (cpu *Cpu) strDelta(width uint16) uint16 {
	if cpu.Flags.Direction {
		return -width
	}
	return width
}

func (cpu *Cpu) strMovs(width uint16) {
	if width == 1 {
		value := cpu.readByte(cpu.Seg[SEG_DS], cpu.Reg[REG_SI])
		cpu.writeByte(cpu.Seg[SEG_ES], cpu.Reg[REG_DI], value)
	} else {
		value := cpu.readWord(cpu.Seg[SEG_DS], cpu.Reg[REG_SI])
		cpu.writeWord(cpu.Seg[SEG_ES], cpu.Reg[REG_DI], value)
	}
	delta := cpu.strDelta(width)
	cpu.Reg[REG_SI] += delta
	cpu.Reg[REG_DI] += delta
}

// strCmps compares source against destination, deriving flags like CMP.
func (cpu *Cpu) strCmps(width uint16) {
	var a, b uint16
	if width == 1 {
		a = uint16(cpu.readByte(cpu.Seg[SEG_DS], cpu.Reg[REG_SI]))
		b = uint16(cpu.readByte(cpu.Seg[SEG_ES], cpu.Reg[REG_DI]))
	} else {
		a = cpu.readWord(cpu.Seg[SEG_DS], cpu.Reg[REG_SI])
		b = cpu.readWord(cpu.Seg[SEG_ES], cpu.Reg[REG_DI])
	}
	cpu.sub16(a, b, false)
	delta := cpu.strDelta(width)
	cpu.Reg[REG_SI] += delta
	cpu.Reg[REG_DI] += delta
}

func (cpu *Cpu) strStos(width uint16) {
	if width == 1 {
		cpu.writeByte(cpu.Seg[SEG_ES], cpu.Reg[REG_DI], uint8(cpu.Reg[REG_AX]&0xFF))
	} else {
		cpu.writeWord(cpu.Seg[SEG_ES], cpu.Reg[REG_DI], cpu.Reg[REG_AX])
	}
	cpu.Reg[REG_DI] += cpu.strDelta(width)
}

// strLods loads into AX. The byte form replaces only the low half of AX.
func (cpu *Cpu) strLods(width uint16) {
	if width == 1 {
		value := cpu.readByte(cpu.Seg[SEG_DS], cpu.Reg[REG_SI])
		cpu.Reg[REG_AX] = (cpu.Reg[REG_AX] & 0xFF00) | uint16(value)
	} else {
		cpu.Reg[REG_AX] = cpu.readWord(cpu.Seg[SEG_DS], cpu.Reg[REG_SI])
	}
	cpu.Reg[REG_SI] += cpu.strDelta(width)
}

func (cpu *Cpu) opMovsb() (cycles int) {
	cpu.strMovs(1)
	return 4
}

func (cpu *Cpu) opMovsw() (cycles int) {
	cpu.strMovs(2)
	return 4
}

func (cpu *Cpu) opCmpsb() (cycles int) {
	cpu.strCmps(1)
	return 4
}

func (cpu *Cpu) opCmpsw() (cycles int) {
	cpu.strCmps(2)
	return 4
}

func (cpu *Cpu) opStosb() (cycles int) {
	cpu.strStos(1)
	return 3
}

func (cpu *Cpu) opStosw() (cycles int) {
	cpu.strStos(2)
	return 3
}

func (cpu *Cpu) opLodsb() (cycles int) {
	cpu.strLods(1)
	return 3
}

func (cpu *Cpu) opLodsw() (cycles int) {
	cpu.strLods(2)
	return 3
}

// repeat drives one string primitive CX times. With CX already zero the
// prefix is a no-op and the sub-opcode byte is consumed unexamined. An
// unrepeatable sub-opcode latches a fault on the first iteration. After
// each element CX is decremented and stop, when non-nil, ends the loop
// early from the comparison flags.
func (cpu *Cpu) repeat(prefix Op, stop func() bool) (cycles int) {
	sub := Op(cpu.fetchByte())
	cycles = 2
	for cpu.Reg[REG_CX] != 0 {
		switch sub {
		case OP_MOVSB:
			cpu.strMovs(1)
		case OP_MOVSW:
			cpu.strMovs(2)
		case OP_CMPSB:
			cpu.strCmps(1)
		case OP_CMPSW:
			cpu.strCmps(2)
		case OP_STOSB:
			cpu.strStos(1)
		case OP_STOSW:
			cpu.strStos(2)
		case OP_LODSB:
			cpu.strLods(1)
		case OP_LODSW:
			cpu.strLods(2)
		default:
			cpu.fail(ErrRepeat{Prefix: uint8(prefix), Op: uint8(sub)})
			cpu.Halted = true
			return
		}
		cpu.Reg[REG_CX]--
		cycles += 2
		if stop != nil && stop() {
			break
		}
	}
	return
}

func (cpu *Cpu) opRep() (cycles int) {
	return cpu.repeat(OP_REP, nil)
}

func (cpu *Cpu) opRepz() (cycles int) {
	return cpu.repeat(OP_REPZ, func() bool { return !cpu.Flags.Zero })
}

func (cpu *Cpu) opRepnz() (cycles int) {
	return cpu.repeat(OP_REPNZ, func() bool { return cpu.Flags.Zero })
}
