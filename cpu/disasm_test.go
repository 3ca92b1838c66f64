package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		bytes []byte
	}){
		{"NOP", []byte{0x00}},
		{"HLT", []byte{0x01}},
		{"INT 0x21", []byte{0x04, 0x21}},
		{"MOV BX, AX", []byte{0x10, 0x10}},
		{"MOV AX, 0x1234", []byte{0x11, 0x00, 0x34, 0x12}},
		{"XCHG AX, CX", []byte{0x12, 0x02}},
		{"MOV DS, AX", []byte{0x13, 0x10}},
		{"MOV AX, DS", []byte{0x14, 0x01}},
		{"MOV AX, SP", []byte{0x15, 0x00}},
		{"MOV SP, BX", []byte{0x16, 0x01}},
		{"ADD SP, 0x0010", []byte{0x17, 0x10, 0x00}},
		{"LD AX, [0x0100]", []byte{0x20, 0x00, 0x00, 0x01}},
		{"ST [0x0100], AX", []byte{0x21, 0x00, 0x00, 0x01}},
		{"LD CX, [BX + 0x0010]", []byte{0x24, 0x21, 0x10, 0x00}},
		{"ST [BX - 0x0010], AX", []byte{0x25, 0x10, 0xF0, 0xFF}},
		{"LEA AX, [0x1234]", []byte{0x26, 0x00, 0x34, 0x12}},
		{"LD AX, [SP + 0x0002]", []byte{0x29, 0x00, 0x02, 0x00}},
		{"PUSH AX", []byte{0x40, 0x00}},
		{"PUSH DS", []byte{0x42, 0x01}},
		{"ENTER 0x0010, 2", []byte{0x46, 0x10, 0x00, 0x02}},
		{"ADD BX, 0x0001", []byte{0x51, 0x01, 0x01, 0x00}},
		{"SHL AX, 4", []byte{0x80, 0x04}},
		{"SHL AX, CX", []byte{0x80, 0x00}},
		{"JMP 0x0100", []byte{0xA0, 0x00, 0x01}},
		{"JMP 0x2000:0x0100", []byte{0xA1, 0x00, 0x01, 0x00, 0x20}},
		{"JR +4", []byte{0xA3, 0x04}},
		{"JR -4", []byte{0xA3, 0xFC}},
		{"JNZ 0x0200", []byte{0xB1, 0x00, 0x02}},
		{"CALL 0x0300", []byte{0xC0, 0x00, 0x03}},
		{"RET", []byte{0xC3}},
		{"RET 0x0004", []byte{0xC5, 0x04, 0x00}},
		{"LOOP -4", []byte{0xD0, 0xFC}},
		{"MOVSB", []byte{0xE0}},
		{"REP MOVSB", []byte{0xE8, 0xE0}},
		{"REPZ CMPSB", []byte{0xE9, 0xE2}},
		{"REP 0x00", []byte{0xE8, 0x00}},
		{"IN AX, 0x00F0", []byte{0xF0, 0x00, 0xF0, 0x00}},
		{"OUT 0x00F0, AX", []byte{0xF1, 0x00, 0xF0, 0x00}},
		{"DB 0xFF", []byte{0xFF}},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.LoadProgram(entry.bytes, 0x1000)

		text, length := cpu.Disassemble(0x1000)
		assert.Equal(entry.text, text)
		assert.Equal(len(entry.bytes), length, entry.text)
	}
}

func TestDisassemble_Walk(t *testing.T) {
	assert := assert.New(t)

	// Walking a block by decoded lengths visits each instruction once.
	program := []byte{
		uint8(OP_MOV_RI), 0x02, 0x05, 0x00,
		uint8(OP_INC), 0x00,
		uint8(OP_LOOP), 0xFC,
		uint8(OP_HLT),
	}

	cpu := NewCpu()
	cpu.LoadProgram(program, PhysAddr(DEFAULT_CS, DEFAULT_PC))

	var listing []string
	phys := PhysAddr(DEFAULT_CS, DEFAULT_PC)
	end := phys + uint32(len(program))
	for phys < end {
		text, length := cpu.Disassemble(phys)
		listing = append(listing, text)
		phys += uint32(length)
	}

	assert.Equal([]string{
		"MOV CX, 0x0005",
		"INC AX",
		"LOOP -4",
		"HLT",
	}, listing)
}

func TestDisassemble_DoesNotTouchState(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadProgram([]byte{uint8(OP_MOV_RI), 0x00, 0x34, 0x12}, 0x1000)

	before := *cpu
	cpu.Disassemble(0x1000)

	assert.Equal(before.PC, cpu.PC)
	assert.Equal(before.Reg, cpu.Reg)
	assert.Equal(before.LastAddr, cpu.LastAddr)
}
