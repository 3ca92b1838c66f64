package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// run loads a program at the reset entry point and runs it to completion.
func run(program []byte) (cpu *Cpu) {
	cpu = NewCpu()
	cpu.LoadProgram(program, PhysAddr(DEFAULT_CS, DEFAULT_PC))
	cpu.Run(0)
	return
}

func TestReset_Defaults(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.Equal(DEFAULT_CS, cpu.Seg[SEG_CS])
	assert.Equal(DEFAULT_DS, cpu.Seg[SEG_DS])
	assert.Equal(DEFAULT_SS, cpu.Seg[SEG_SS])
	assert.Equal(DEFAULT_ES, cpu.Seg[SEG_ES])
	assert.Equal(DEFAULT_PC, cpu.PC)
	assert.Equal(DEFAULT_SP, cpu.SP)
	assert.Equal(uint16(0), cpu.Flags.Word())
	assert.False(cpu.Halted)
	assert.False(cpu.Waiting)
	assert.NoError(cpu.Fault)
	assert.Equal(MEM_SIZE, len(cpu.Memory.Data))
}

func TestReset_PreservesMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory.Data[0x1234] = 0xAB
	cpu.Reset()
	assert.Equal(uint8(0xAB), cpu.Memory.Data[0x1234])

	cpu.Initialize()
	assert.Equal(uint8(0x00), cpu.Memory.Data[0x1234])
}

func TestStep_Halted(t *testing.T) {
	assert := assert.New(t)

	cpu := run([]byte{
		uint8(OP_HLT),
	})

	assert.True(cpu.Halted)
	assert.Equal(uint64(1), cpu.Instructions)

	cycles := cpu.Step()
	assert.Equal(0, cycles)
	assert.Equal(uint64(1), cpu.Instructions)
}

func TestStep_UnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := run([]byte{
		0xFF,
	})

	assert.True(cpu.Halted)
	assert.ErrorIs(cpu.Fault, ErrOpcode{})
	assert.Equal(uint64(0), cpu.Instructions)
	assert.NotEmpty(cpu.ErrorMessage())
}

func TestStep_FaultLatched(t *testing.T) {
	assert := assert.New(t)

	cpu := run([]byte{
		0xFF,
	})
	first := cpu.Fault

	// A faulted engine refuses to run and keeps the first fault.
	assert.Equal(0, cpu.Step())
	assert.Equal(first, cpu.Fault)

	cpu.Reset()
	assert.NoError(cpu.Fault)
	assert.False(cpu.Halted)
}

func TestStep_Counters(t *testing.T) {
	assert := assert.New(t)

	cpu := run([]byte{
		uint8(OP_NOP),              // 1 cycle
		uint8(OP_MOV_RI), 0x00,     // 3 cycles
		0x34, 0x12,
		uint8(OP_HLT),              // 1 cycle
	})

	assert.Equal(uint64(3), cpu.Instructions)
	assert.Equal(uint64(1+1+1+3+1+1), cpu.Cycles) // fetch + exec each
	assert.Equal(uint16(0x1234), cpu.Reg[REG_AX])
}

func TestRun_CycleBudget(t *testing.T) {
	assert := assert.New(t)

	// An endless loop stops when the budget runs out.
	cpu := NewCpu()
	cpu.LoadProgram([]byte{
		uint8(OP_JMP), 0x00, 0x01, // JMP 0x0100
	}, PhysAddr(DEFAULT_CS, DEFAULT_PC))

	total := cpu.Run(100)
	assert.GreaterOrEqual(total, 100)
	assert.False(cpu.Halted)
	assert.NoError(cpu.Fault)
}

func TestRun_Deterministic(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		uint8(OP_MOV_RI), 0x00, 0x0F, 0x00, // MOV AX, 15
		uint8(OP_MOV_RI), 0x01, 0x03, 0x00, // MOV BX, 3
		uint8(OP_MUL), 0x01, // MUL BX
		uint8(OP_ADD_RI), 0x00, 0x01, 0x00, // ADD AX, 1
		uint8(OP_HLT),
	}

	a := run(program)
	b := run(program)

	assert.Equal(a.Reg, b.Reg)
	assert.Equal(a.Flags, b.Flags)
	assert.Equal(a.Cycles, b.Cycles)
	assert.Equal(a.Instructions, b.Instructions)
	assert.Equal(uint16(46), a.Reg[REG_AX])
}

func TestLoadProgram_Clipped(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram([]byte{0x11, 0x22, 0x33, 0x44}, MEM_SIZE-2)

	assert.Equal(uint8(0x11), cpu.Memory.Data[MEM_SIZE-2])
	assert.Equal(uint8(0x22), cpu.Memory.Data[MEM_SIZE-1])
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	text := cpu.String()
	assert.Contains(text, "CS:PC = 0000:0100")
	assert.Contains(text, "SS:SP = 0F00:FFFE")
	assert.Contains(text, "AX=0000")
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("0x100000", defines["MEM_SIZE"])
	assert.Equal("0x0100", defines["DEFAULT_PC"])
}

func TestRegSegNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("AX", RegName(REG_AX))
	assert.Equal("R7", RegName(REG_R7))
	assert.Equal("??", RegName(8))
	assert.Equal("ES", SegName(SEG_ES))
	assert.Equal("??", SegName(-1))
}
