package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stringCpu loads source bytes at DS:SI=0x2000:0x0000 and points ES:DI at
// 0x3000:0x0000 for the program at the usual entry point.
func stringCpu(program []byte, source []byte) (cpu *Cpu) {
	cpu = NewCpu()
	cpu.Seg[SEG_DS] = 0x2000
	cpu.Seg[SEG_ES] = 0x3000
	cpu.LoadProgram(source, PhysAddr(0x2000, 0x0000))
	cpu.LoadProgram(program, PhysAddr(DEFAULT_CS, DEFAULT_PC))
	return
}

func TestMovsb_Single(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOVSB),
		uint8(OP_HLT),
	}, []byte{0xAB})
	cpu.Run(0)

	assert.Equal(uint8(0xAB), cpu.Memory.Data[PhysAddr(0x3000, 0x0000)])
	assert.Equal(uint16(1), cpu.Reg[REG_SI])
	assert.Equal(uint16(1), cpu.Reg[REG_DI])
}

func TestMovsw_Single(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOVSW),
		uint8(OP_HLT),
	}, []byte{0x34, 0x12})
	cpu.Run(0)

	assert.Equal(uint16(0x1234), cpu.Memory.peekWord(PhysAddr(0x3000, 0x0000)))
	assert.Equal(uint16(2), cpu.Reg[REG_SI])
	assert.Equal(uint16(2), cpu.Reg[REG_DI])
}

func TestRepMovsb_CopiesBlock(t *testing.T) {
	assert := assert.New(t)

	source := []byte("hello, world")
	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x02, uint8(len(source)), 0x00, // MOV CX, len
		uint8(OP_REP), uint8(OP_MOVSB),
		uint8(OP_HLT),
	}, source)
	cpu.Run(0)

	base := PhysAddr(0x3000, 0x0000)
	assert.Equal(source, cpu.Memory.Data[base:base+uint32(len(source))])
	assert.Equal(uint16(0), cpu.Reg[REG_CX])
	assert.Equal(uint16(len(source)), cpu.Reg[REG_SI])
	assert.Equal(uint16(len(source)), cpu.Reg[REG_DI])
}

func TestRepMovsb_Backward(t *testing.T) {
	assert := assert.New(t)

	// Direction flag set: indexes walk downward from the block end.
	cpu := NewCpu()
	cpu.Seg[SEG_DS] = 0x2000
	cpu.Seg[SEG_ES] = 0x3000
	cpu.LoadProgram([]byte{0x11, 0x22, 0x33}, PhysAddr(0x2000, 0x0010))
	cpu.Reg[REG_SI] = 0x0012
	cpu.Reg[REG_DI] = 0x0022
	cpu.LoadProgram([]byte{
		uint8(OP_STD),
		uint8(OP_MOV_RI), 0x02, 0x03, 0x00, // MOV CX, 3
		uint8(OP_REP), uint8(OP_MOVSB),
		uint8(OP_HLT),
	}, PhysAddr(DEFAULT_CS, DEFAULT_PC))
	cpu.Run(0)

	base := PhysAddr(0x3000, 0x0020)
	assert.Equal([]byte{0x11, 0x22, 0x33}, cpu.Memory.Data[base:base+3])
	assert.Equal(uint16(0x000F), cpu.Reg[REG_SI])
	assert.Equal(uint16(0x001F), cpu.Reg[REG_DI])
}

func TestRep_CountZero(t *testing.T) {
	assert := assert.New(t)

	// CX=0 makes the repeat a no-op; destination stays untouched.
	cpu := stringCpu([]byte{
		uint8(OP_REP), uint8(OP_MOVSB),
		uint8(OP_HLT),
	}, []byte{0xAB})
	cpu.Run(0)

	assert.Equal(uint8(0x00), cpu.Memory.Data[PhysAddr(0x3000, 0x0000)])
	assert.Equal(uint16(0), cpu.Reg[REG_SI])
	assert.NoError(cpu.Fault)
}

func TestRep_InvalidSubOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x02, 0x01, 0x00, // MOV CX, 1
		uint8(OP_REP), uint8(OP_NOP),
		uint8(OP_HLT),
	}, nil)
	cpu.Run(0)

	assert.ErrorIs(cpu.Fault, ErrRepeat{})
	assert.True(cpu.Halted)
}

func TestRepStosw_Fills(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x00, 0xAD, 0xDE, // MOV AX, 0xDEAD
		uint8(OP_MOV_RI), 0x02, 0x04, 0x00, // MOV CX, 4
		uint8(OP_REP), uint8(OP_STOSW),
		uint8(OP_HLT),
	}, nil)
	cpu.Run(0)

	for n := uint32(0); n < 4; n++ {
		assert.Equal(uint16(0xDEAD), cpu.Memory.peekWord(PhysAddr(0x3000, 0x0000)+n*2))
	}
	assert.Equal(uint16(8), cpu.Reg[REG_DI])
}

func TestLodsb_PreservesHighByte(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x00, 0x00, 0x12, // MOV AX, 0x1200
		uint8(OP_LODSB),
		uint8(OP_HLT),
	}, []byte{0x34})
	cpu.Run(0)

	assert.Equal(uint16(0x1234), cpu.Reg[REG_AX])
	assert.Equal(uint16(1), cpu.Reg[REG_SI])
}

func TestRepzCmpsb_EqualBlocks(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x02, 0x04, 0x00, // MOV CX, 4
		uint8(OP_REPZ), uint8(OP_CMPSB),
		uint8(OP_HLT),
	}, []byte{1, 2, 3, 4})
	cpu.LoadProgram([]byte{1, 2, 3, 4}, PhysAddr(0x3000, 0x0000))
	cpu.Run(0)

	assert.Equal(uint16(0), cpu.Reg[REG_CX])
	assert.True(cpu.Flags.Zero)
}

func TestRepzCmpsb_StopsAtMismatch(t *testing.T) {
	assert := assert.New(t)

	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x02, 0x04, 0x00, // MOV CX, 4
		uint8(OP_REPZ), uint8(OP_CMPSB),
		uint8(OP_HLT),
	}, []byte{1, 2, 3, 4})
	cpu.LoadProgram([]byte{1, 2, 9, 4}, PhysAddr(0x3000, 0x0000))
	cpu.Run(0)

	// Stops after the third element compares unequal.
	assert.Equal(uint16(1), cpu.Reg[REG_CX])
	assert.False(cpu.Flags.Zero)
	assert.Equal(uint16(3), cpu.Reg[REG_SI])
}

func TestRepnzCmpsb_FindsMatch(t *testing.T) {
	assert := assert.New(t)

	// Scan until the elements compare equal.
	cpu := stringCpu([]byte{
		uint8(OP_MOV_RI), 0x02, 0x04, 0x00, // MOV CX, 4
		uint8(OP_REPNZ), uint8(OP_CMPSB),
		uint8(OP_HLT),
	}, []byte{1, 2, 3, 4})
	cpu.LoadProgram([]byte{9, 9, 3, 9}, PhysAddr(0x3000, 0x0000))
	cpu.Run(0)

	assert.Equal(uint16(1), cpu.Reg[REG_CX])
	assert.True(cpu.Flags.Zero)
}
