package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhysAddr(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		segment uint16
		offset  uint16
		phys    uint32
	}){
		{0x0000, 0x0000, 0x00000},
		{0x0000, 0xFFFF, 0x0FFFF},
		{0x1234, 0x0010, 0x12350},
		{0xF000, 0xFFFF, 0xFFFFF},
		{0xFFFF, 0xFFFF, 0x10FFEF}, // beyond the last byte
	}

	for _, entry := range table {
		assert.Equal(entry.phys, PhysAddr(entry.segment, entry.offset))
	}
}

func TestMemory_ByteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	err := mem.WriteByte(0x12345, 0xAB)
	assert.NoError(err)

	value, err := mem.ReadByte(0x12345)
	assert.NoError(err)
	assert.Equal(uint8(0xAB), value)
}

func TestMemory_WordLittleEndian(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	err := mem.WriteWord(0x1000, 0x1234)
	assert.NoError(err)
	assert.Equal(uint8(0x34), mem.Data[0x1000])
	assert.Equal(uint8(0x12), mem.Data[0x1001])

	value, err := mem.ReadWord(0x1000)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), value)
}

func TestMemory_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	_, err := mem.ReadByte(MEM_SIZE)
	assert.ErrorIs(err, ErrAddress(0))

	err = mem.WriteByte(MEM_SIZE, 0xFF)
	assert.ErrorIs(err, ErrAddress(0))

	// A word read straddling the end of memory fails on the high byte.
	_, err = mem.ReadWord(MEM_SIZE - 1)
	assert.ErrorIs(err, ErrAddress(0))
}

func TestMemory_SegmentOverflowFaults(t *testing.T) {
	assert := assert.New(t)

	// 0xFFFF:0x0100 translates beyond physical memory and latches a fault.
	cpu := NewCpu()
	cpu.Seg[SEG_DS] = 0xFFFF
	cpu.LoadProgram([]byte{
		uint8(OP_LD), 0x00, 0x00, 0x01, // LD AX, [0x0100]
		uint8(OP_HLT),
	}, PhysAddr(DEFAULT_CS, DEFAULT_PC))
	cpu.Run(0)

	assert.ErrorIs(cpu.Fault, ErrAddress(0))
}

func TestMemory_Peek(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.Data[0x100] = 0x34
	mem.Data[0x101] = 0x12

	assert.Equal(uint16(0x1234), mem.peekWord(0x100))
	assert.Equal(uint8(0), mem.peek(MEM_SIZE)) // silently zero
}
