package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzStep feeds arbitrary byte streams to the engine and checks the
// invariants that hold for any input: execution terminates under a cycle
// budget, faults are latched coherently, and a faulted or halted engine
// refuses further steps.
func FuzzStep(f *testing.F) {
	for op := range 0x100 {
		f.Add([]byte{uint8(op), 0x10, 0x34, 0x12, 0x00})
	}
	f.Add([]byte{uint8(OP_REP), uint8(OP_MOVSB)})
	f.Add([]byte{uint8(OP_MOV_RI), 0x02, 0xFF, 0xFF, uint8(OP_REP), uint8(OP_STOSW)})
	f.Add([]byte{uint8(OP_ENTER), 0xFF, 0xFF, 0x0F})

	f.Fuzz(func(t *testing.T, program []byte) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.LoadProgram(program, PhysAddr(DEFAULT_CS, DEFAULT_PC))

		total := cpu.Run(100000)

		if cpu.Fault != nil {
			assert.NotEmpty(cpu.ErrorMessage())
			assert.Equal(0, cpu.Step())
		}
		if cpu.Halted {
			assert.Equal(0, cpu.Step())
		}
		assert.LessOrEqual(cpu.Instructions, cpu.Cycles)
		assert.GreaterOrEqual(total, 0)

		// The state dump renders for any machine state.
		assert.NotEmpty(cpu.String())
	})
}

// FuzzDisassemble checks that any byte stream decodes without panic and
// reports a plausible instruction length.
func FuzzDisassemble(f *testing.F) {
	for op := range 0x100 {
		f.Add([]byte{uint8(op), 0x10, 0x34, 0x12, 0x00})
	}

	f.Fuzz(func(t *testing.T, program []byte) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.LoadProgram(program, 0x1000)

		phys := uint32(0x1000)
		end := phys + uint32(len(program))
		for phys < end {
			text, length := cpu.Disassemble(phys)
			assert.NotEmpty(text)
			assert.GreaterOrEqual(length, 1)
			assert.LessOrEqual(length, 5)
			phys += uint32(length)
		}
	})
}
