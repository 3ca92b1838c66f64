package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// General purpose register indices.
const (
	REG_AX = 0 // Accumulator
	REG_BX = 1 // Base
	REG_CX = 2 // Counter (LOOP, repeat prefixes, shift counts)
	REG_DX = 3 // Data (high half of MUL/DIV operands)
	REG_SI = 4 // Source index (string ops)
	REG_DI = 5 // Destination index (string ops)
	REG_BP = 6 // Frame base pointer (ENTER/LEAVE)
	REG_R7 = 7 // General purpose
)

// Segment register indices.
const (
	SEG_CS = 0 // Code segment
	SEG_DS = 1 // Data segment
	SEG_SS = 2 // Stack segment
	SEG_ES = 3 // Extra segment
)

// Reset defaults.
const (
	DEFAULT_CS = uint16(0x0000)
	DEFAULT_DS = uint16(0x0000)
	DEFAULT_SS = uint16(0x0F00) // Stack segment at physical 0xF0000
	DEFAULT_ES = uint16(0x0000)
	DEFAULT_SP = uint16(0xFFFE) // Top of the stack segment
	DEFAULT_PC = uint16(0x0100) // Entry offset within the code segment
)

var _cpu_defines = map[string]string{
	"MEM_SIZE":     fmt.Sprintf("0x%X", MEM_SIZE),
	"SEGMENT_SIZE": fmt.Sprintf("0x%X", SEGMENT_SIZE),
	"IVT_BASE":     fmt.Sprintf("0x%X", IVT_BASE),
	"IVT_ENTRIES":  fmt.Sprintf("%d", IVT_ENTRIES),
	"MMIO_BASE":    fmt.Sprintf("0x%X", MMIO_BASE),
	"DEFAULT_CS":   fmt.Sprintf("0x%04X", DEFAULT_CS),
	"DEFAULT_DS":   fmt.Sprintf("0x%04X", DEFAULT_DS),
	"DEFAULT_SS":   fmt.Sprintf("0x%04X", DEFAULT_SS),
	"DEFAULT_ES":   fmt.Sprintf("0x%04X", DEFAULT_ES),
	"DEFAULT_SP":   fmt.Sprintf("0x%04X", DEFAULT_SP),
	"DEFAULT_PC":   fmt.Sprintf("0x%04X", DEFAULT_PC),
}

var regNames = [8]string{"AX", "BX", "CX", "DX", "SI", "DI", "BP", "R7"}
var segNames = [4]string{"CS", "DS", "SS", "ES"}

// RegName returns the architectural name of a general purpose register index.
func RegName(reg int) string {
	if reg < 0 || reg >= len(regNames) {
		return "??"
	}
	return regNames[reg]
}

// SegName returns the architectural name of a segment register index.
func SegName(seg int) string {
	if seg < 0 || seg >= len(segNames) {
		return "??"
	}
	return segNames[seg]
}

// Cpu is the complete state of one Micro16 processor and its memory.
// All register writes wrap modulo 2^16; that is hardware behavior, not an
// error.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Reg   [8]uint16 // General purpose registers AX..R7.
	Seg   [4]uint16 // Segment registers CS, DS, SS, ES.
	PC    uint16    // Program counter (offset within CS).
	SP    uint16    // Stack pointer (offset within SS).
	Flags Flags     // Condition codes.

	IntPending bool  // Hardware interrupt latched.
	IntVector  uint8 // Latched interrupt vector number.

	// Internal registers, exposed for debugging and visualization only.
	LastOp   uint8  // Last fetched opcode (instruction register).
	LastAddr uint32 // Last physical address touched (MAR).
	LastData uint16 // Last data moved to or from memory (MDR).

	Memory Memory // Physical memory.

	Halted  bool  // HLT executed.
	Waiting bool  // WAIT executed, idle until an enabled interrupt.
	Fault   error // Halting engine error, nil while healthy.

	Cycles       uint64 // Total clock cycles.
	Instructions uint64 // Instructions executed.
}

// NewCpu allocates a CPU with zeroed memory, reset to architecture defaults.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(),
	}
	cpu.Reset()
	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset restores registers, flags, PC, SP, and the halt/wait/fault state to
// architecture defaults. Memory contents are preserved.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Reg[:])

	cpu.Seg[SEG_CS] = DEFAULT_CS
	cpu.Seg[SEG_DS] = DEFAULT_DS
	cpu.Seg[SEG_SS] = DEFAULT_SS
	cpu.Seg[SEG_ES] = DEFAULT_ES

	cpu.PC = DEFAULT_PC
	cpu.SP = DEFAULT_SP
	cpu.Flags = Flags{}

	cpu.IntPending = false
	cpu.IntVector = 0

	cpu.LastOp = 0
	cpu.LastAddr = 0
	cpu.LastData = 0

	cpu.Halted = false
	cpu.Waiting = false
	cpu.Fault = nil

	cpu.Cycles = 0
	cpu.Instructions = 0
}

// Initialize zeroes all of memory and resets the CPU.
func (cpu *Cpu) Initialize() {
	clear(cpu.Memory.Data)
	cpu.Reset()
}

// ErrorMessage returns the halting fault text, empty while healthy.
func (cpu *Cpu) ErrorMessage() (text string) {
	if cpu.Fault != nil {
		text = cpu.Fault.Error()
	}
	return
}

// fail latches a halting engine error. The first fault is preserved until
// the next Reset or Initialize.
func (cpu *Cpu) fail(err error) {
	if cpu.Fault == nil {
		cpu.Fault = err
	}
	if cpu.Verbose {
		log.Printf("cpu: fault: %v", err)
	}
}

// LoadProgram copies a byte buffer verbatim into physical memory. Bytes
// beyond the end of memory are dropped.
func (cpu *Cpu) LoadProgram(program []byte, physAddr uint32) {
	for n := range program {
		addr := physAddr + uint32(n)
		if addr >= uint32(len(cpu.Memory.Data)) {
			break
		}
		cpu.Memory.Data[addr] = program[n]
	}
}

// readPhysByte reads physical memory, tracking the address and data
// registers, and latches a fault on an out-of-range address.
func (cpu *Cpu) readPhysByte(addr uint32) (value uint8) {
	value, err := cpu.Memory.ReadByte(addr)
	if err != nil {
		cpu.fail(err)
		return
	}
	cpu.LastAddr = addr
	cpu.LastData = uint16(value)
	return
}

func (cpu *Cpu) writePhysByte(addr uint32, value uint8) {
	err := cpu.Memory.WriteByte(addr, value)
	if err != nil {
		cpu.fail(err)
		return
	}
	cpu.LastAddr = addr
	cpu.LastData = uint16(value)
}

func (cpu *Cpu) readPhysWord(addr uint32) (value uint16) {
	low := cpu.readPhysByte(addr)
	high := cpu.readPhysByte(addr + 1)
	return uint16(low) | (uint16(high) << 8)
}

func (cpu *Cpu) writePhysWord(addr uint32, value uint16) {
	cpu.writePhysByte(addr, uint8(value&0xFF))
	cpu.writePhysByte(addr+1, uint8(value>>8))
}

func (cpu *Cpu) readByte(segment uint16, offset uint16) uint8 {
	return cpu.readPhysByte(PhysAddr(segment, offset))
}

func (cpu *Cpu) readWord(segment uint16, offset uint16) uint16 {
	return cpu.readPhysWord(PhysAddr(segment, offset))
}

func (cpu *Cpu) writeByte(segment uint16, offset uint16, value uint8) {
	cpu.writePhysByte(PhysAddr(segment, offset), value)
}

func (cpu *Cpu) writeWord(segment uint16, offset uint16, value uint16) {
	cpu.writePhysWord(PhysAddr(segment, offset), value)
}

// fetchByte reads the next instruction byte at CS:PC and advances PC.
func (cpu *Cpu) fetchByte() (value uint8) {
	value = cpu.readByte(cpu.Seg[SEG_CS], cpu.PC)
	cpu.PC++
	return
}

// fetchWord reads a little-endian instruction word and advances PC by two.
func (cpu *Cpu) fetchWord() (value uint16) {
	low := cpu.fetchByte()
	high := cpu.fetchByte()
	return uint16(low) | (uint16(high) << 8)
}

// fetchReg reads a register selector byte, register index in the low bits.
func (cpu *Cpu) fetchReg() (reg int) {
	return int(cpu.fetchByte() & 0x07)
}

// fetchRegPair reads a register selector byte, destination in the high
// nibble and source in the low nibble.
func (cpu *Cpu) fetchRegPair() (dst int, src int) {
	sel := cpu.fetchByte()
	dst = int((sel >> 4) & 0x07)
	src = int(sel & 0x07)
	return
}

// push stores one word at SS:SP after decrementing SP; the stack grows
// downward.
func (cpu *Cpu) push(value uint16) {
	cpu.SP -= 2
	cpu.writeWord(cpu.Seg[SEG_SS], cpu.SP, value)
}

// pop loads one word from SS:SP and then increments SP.
func (cpu *Cpu) pop() (value uint16) {
	value = cpu.readWord(cpu.Seg[SEG_SS], cpu.SP)
	cpu.SP += 2
	return
}

// dxax returns the DX:AX register pair as a 32-bit value.
func (cpu *Cpu) dxax() uint32 {
	return (uint32(cpu.Reg[REG_DX]) << 16) | uint32(cpu.Reg[REG_AX])
}

// setDxax splits a 32-bit value across the DX:AX register pair.
func (cpu *Cpu) setDxax(value uint32) {
	cpu.Reg[REG_AX] = uint16(value & 0xFFFF)
	cpu.Reg[REG_DX] = uint16(value >> 16)
}

// RequestInterrupt latches a hardware interrupt. It is serviced before the
// next instruction once the interrupt enable flag is set.
func (cpu *Cpu) RequestInterrupt(vector uint8) {
	cpu.IntPending = true
	cpu.IntVector = vector
}

// serviceInterrupt performs the interrupt entry sequence: push flags, CS,
// PC, clear the interrupt enable and trap flags, and load CS:PC from the
// vector table entry (offset word, then segment word).
func (cpu *Cpu) serviceInterrupt(vector uint8) {
	cpu.push(cpu.Flags.Word())
	cpu.push(cpu.Seg[SEG_CS])
	cpu.push(cpu.PC)

	cpu.Flags.Interrupt = false
	cpu.Flags.Trap = false

	entry := IVT_BASE + uint32(vector)*4
	cpu.PC = cpu.readPhysWord(entry)
	cpu.Seg[SEG_CS] = cpu.readPhysWord(entry + 2)

	if cpu.Verbose {
		log.Printf("cpu: interrupt %d -> %04X:%04X", vector, cpu.Seg[SEG_CS], cpu.PC)
	}
}

// checkInterrupt services a latched interrupt when interrupts are enabled.
func (cpu *Cpu) checkInterrupt() {
	if cpu.IntPending && cpu.Flags.Interrupt {
		cpu.IntPending = false
		cpu.serviceInterrupt(cpu.IntVector)
	}
}

// Step executes exactly one instruction and returns its cycle cost. A
// halted or faulted CPU returns 0 and performs nothing. A waiting CPU
// consumes one idle cycle per call until an enabled interrupt arrives.
func (cpu *Cpu) Step() (cycles int) {
	if cpu.Halted || cpu.Fault != nil {
		return 0
	}

	if cpu.Waiting {
		if cpu.IntPending && cpu.Flags.Interrupt {
			cpu.Waiting = false
		} else {
			cpu.Cycles++
			return 1
		}
	}

	cpu.checkInterrupt()

	cycles = 1 // Fetch cycle.

	opcode := cpu.fetchByte()
	cpu.LastOp = opcode

	info, ok := opcodes[Op(opcode)]
	if !ok {
		cpu.fail(ErrOpcode{Op: opcode, Segment: cpu.Seg[SEG_CS], Offset: cpu.PC - 1})
		cpu.Halted = true
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04X:%04X %v", cpu.Seg[SEG_CS], cpu.PC-1, info.Name)
	}

	cycles += info.Exec(cpu)

	cpu.Instructions++
	cpu.Cycles += uint64(cycles)

	return
}

// Run repeats Step until the CPU halts, faults, or the cycle budget is
// spent. A budget of zero or less runs without limit. Returns the cycles
// consumed by this call.
func (cpu *Cpu) Run(maxCycles int) (total int) {
	for !cpu.Halted && cpu.Fault == nil && (maxCycles <= 0 || total < maxCycles) {
		cycles := cpu.Step()
		if cycles == 0 {
			break
		}
		total += cycles
	}
	return
}

// String returns the current CPU state as a multi-line dump.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("CS:PC = %04X:%04X (phys %05X)    SS:SP = %04X:%04X (phys %05X)\n",
		cpu.Seg[SEG_CS], cpu.PC, PhysAddr(cpu.Seg[SEG_CS], cpu.PC),
		cpu.Seg[SEG_SS], cpu.SP, PhysAddr(cpu.Seg[SEG_SS], cpu.SP))
	text += fmt.Sprintf("DS    = %04X                     ES    = %04X\n",
		cpu.Seg[SEG_DS], cpu.Seg[SEG_ES])
	text += fmt.Sprintf("Flags: %v (0x%04X)\n", cpu.Flags, cpu.Flags.Word())
	text += fmt.Sprintf("AX=%04X  BX=%04X  CX=%04X  DX=%04X\n",
		cpu.Reg[REG_AX], cpu.Reg[REG_BX], cpu.Reg[REG_CX], cpu.Reg[REG_DX])
	text += fmt.Sprintf("SI=%04X  DI=%04X  BP=%04X  R7=%04X\n",
		cpu.Reg[REG_SI], cpu.Reg[REG_DI], cpu.Reg[REG_BP], cpu.Reg[REG_R7])
	text += fmt.Sprintf("IR: 0x%02X  MAR: 0x%05X  MDR: 0x%04X\n",
		cpu.LastOp, cpu.LastAddr, cpu.LastData)
	text += fmt.Sprintf("Halted: %v  Waiting: %v  Fault: %v\n",
		cpu.Halted, cpu.Waiting, cpu.Fault)
	text += fmt.Sprintf("Cycles: %d  Instructions: %d\n",
		cpu.Cycles, cpu.Instructions)
	return
}
