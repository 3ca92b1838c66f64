package cpu

// Port I/O is memory mapped: port N is the physical byte at MMIO_BASE+N.
// Devices attach by watching or populating that window.

func (cpu *Cpu) opIn() (cycles int) {
	reg := cpu.fetchReg()
	port := cpu.fetchWord()
	cpu.Reg[reg] = cpu.readPhysWord(MMIO_BASE + uint32(port))
	return 4
}

func (cpu *Cpu) opOut() (cycles int) {
	reg := cpu.fetchReg()
	port := cpu.fetchWord()
	cpu.writePhysWord(MMIO_BASE+uint32(port), cpu.Reg[reg])
	return 4
}

func (cpu *Cpu) opInb() (cycles int) {
	reg := cpu.fetchReg()
	port := cpu.fetchWord()
	cpu.Reg[reg] = uint16(cpu.readPhysByte(MMIO_BASE + uint32(port)))
	return 4
}

func (cpu *Cpu) opOutb() (cycles int) {
	reg := cpu.fetchReg()
	port := cpu.fetchWord()
	cpu.writePhysByte(MMIO_BASE+uint32(port), uint8(cpu.Reg[reg]&0xFF))
	return 4
}
