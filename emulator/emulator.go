package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"micro16/cpu"
	"micro16/internal"
)

const (
	DUMP_WIDTH = 16 // Bytes per memory dump line.
)

var _emulator_defines = map[string]string{
	"DUMP_WIDTH": fmt.Sprintf("%v", DUMP_WIDTH),
}

// Emulator wraps one CPU with program loading, vector setup, and the
// run loop used by frontends. CPU faults surface as located errors.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.
}

// NewEmulator creates a new emulator with a reset CPU and zeroed memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}
	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load copies a program image into physical memory. An image extending
// beyond the end of memory is rejected whole.
func (emu *Emulator) Load(program []byte, physAddr uint32) (err error) {
	end := physAddr + uint32(len(program))
	if end > cpu.MEM_SIZE || end < physAddr {
		err = ErrLoad{Addr: physAddr, Size: len(program)}
		return
	}

	if emu.Verbose {
		log.Printf("emulator: load %d bytes at 0x%05X", len(program), physAddr)
	}

	emu.Cpu.LoadProgram(program, physAddr)
	return
}

// SetVector installs an interrupt handler address in the vector table.
func (emu *Emulator) SetVector(vector uint8, segment uint16, offset uint16) {
	entry := cpu.IVT_BASE + uint32(vector)*4
	emu.Cpu.Memory.WriteWord(entry, offset)
	emu.Cpu.Memory.WriteWord(entry+2, segment)
}

// locate wraps a CPU fault with the code location it halted at.
func (emu *Emulator) locate(err error) error {
	if err == nil {
		return nil
	}
	return &ErrRuntime{
		Segment: emu.Cpu.Seg[cpu.SEG_CS],
		Offset:  emu.Cpu.PC,
		Err:     err,
	}
}

// Step executes one instruction, surfacing any CPU fault as a located
// runtime error.
func (emu *Emulator) Step() (cycles int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	cycles = emu.Cpu.Step()
	err = emu.locate(emu.Cpu.Fault)
	return
}

// Run executes until the CPU halts, faults, or the cycle budget is spent.
// A budget of zero or less runs without limit.
func (emu *Emulator) Run(maxCycles int) (total int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	total = emu.Cpu.Run(maxCycles)
	err = emu.locate(emu.Cpu.Fault)
	return
}

// DumpMemory renders a physical memory range as hex and ASCII lines. The
// range is clipped to the memory size and aligned to the dump width.
func (emu *Emulator) DumpMemory(start uint32, end uint32) (text string) {
	if end > cpu.MEM_SIZE {
		end = cpu.MEM_SIZE
	}

	data := emu.Cpu.Memory.Data
	var sb strings.Builder

	for line := start - (start % DUMP_WIDTH); line < end; line += DUMP_WIDTH {
		fmt.Fprintf(&sb, "%05X ", line)

		for n := uint32(0); n < DUMP_WIDTH; n++ {
			addr := line + n
			if addr < start || addr >= end {
				sb.WriteString("   ")
				continue
			}
			fmt.Fprintf(&sb, " %02X", data[addr])
		}

		sb.WriteString("  |")
		for n := uint32(0); n < DUMP_WIDTH; n++ {
			addr := line + n
			if addr < start || addr >= end {
				sb.WriteByte(' ')
				continue
			}
			ch := data[addr]
			if ch < 0x20 || ch > 0x7E {
				ch = '.'
			}
			sb.WriteByte(ch)
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}
