package cpu

import (
	"fmt"
)

// indexOperand formats a base-indexed effective address with a signed
// displacement, like "[BX + 0x0010]" or "[SP - 0x0002]".
func indexOperand(base string, disp int16) string {
	if disp < 0 {
		return fmt.Sprintf("[%s - 0x%04X]", base, uint16(-disp))
	}
	return fmt.Sprintf("[%s + 0x%04X]", base, uint16(disp))
}

// Disassemble decodes one instruction at a physical address without touching
// CPU or memory state, returning its text and encoded length in bytes. A
// byte with no opcode entry decodes as data: "DB 0xNN", length one.
func (cpu *Cpu) Disassemble(phys uint32) (text string, length int) {
	mem := &cpu.Memory

	op := Op(mem.peek(phys))
	info, ok := opcodes[op]
	if !ok {
		return fmt.Sprintf("DB 0x%02X", uint8(op)), 1
	}

	length = info.Length
	sel := mem.peek(phys + 1)
	reg := RegName(int((sel >> 4) & 0x07))

	switch info.Format {
	case F_NONE:
		text = info.Name

	case F_VEC:
		text = fmt.Sprintf("%s 0x%02X", info.Name, sel)

	case F_REG:
		text = fmt.Sprintf("%s %s", info.Name, RegName(int(sel&0x07)))

	case F_REG_PAIR:
		text = fmt.Sprintf("%s %s, %s", info.Name, reg, RegName(int(sel&0x07)))

	case F_SEG:
		text = fmt.Sprintf("%s %s", info.Name, SegName(int(sel&0x03)))

	case F_SEG_REG:
		text = fmt.Sprintf("%s %s, %s", info.Name,
			SegName(int((sel>>4)&0x03)), RegName(int(sel&0x07)))

	case F_REG_SEG:
		text = fmt.Sprintf("%s %s, %s", info.Name, reg, SegName(int(sel&0x03)))

	case F_REG_IMM:
		text = fmt.Sprintf("%s %s, 0x%04X", info.Name,
			RegName(int(sel&0x07)), mem.peekWord(phys+2))

	case F_REG_MEM:
		text = fmt.Sprintf("%s %s, [0x%04X]", info.Name,
			RegName(int(sel&0x07)), mem.peekWord(phys+2))

	case F_MEM_REG:
		text = fmt.Sprintf("%s [0x%04X], %s", info.Name,
			mem.peekWord(phys+2), RegName(int(sel&0x07)))

	case F_REG_IDX:
		text = fmt.Sprintf("%s %s, %s", info.Name, reg,
			indexOperand(RegName(int(sel&0x07)), int16(mem.peekWord(phys+2))))

	case F_IDX_REG:
		text = fmt.Sprintf("%s %s, %s", info.Name,
			indexOperand(reg, int16(mem.peekWord(phys+2))),
			RegName(int(sel&0x07)))

	case F_REG_SP:
		text = fmt.Sprintf("%s %s, SP", info.Name, RegName(int(sel&0x07)))

	case F_SP_REG:
		text = fmt.Sprintf("%s SP, %s", info.Name, RegName(int(sel&0x07)))

	case F_SP_IMM:
		text = fmt.Sprintf("%s SP, 0x%04X", info.Name, mem.peekWord(phys+1))

	case F_REG_IDXSP:
		text = fmt.Sprintf("%s %s, %s", info.Name, RegName(int(sel&0x07)),
			indexOperand("SP", int16(mem.peekWord(phys+2))))

	case F_IDXSP_REG:
		text = fmt.Sprintf("%s %s, %s", info.Name,
			indexOperand("SP", int16(mem.peekWord(phys+2))),
			RegName(int(sel&0x07)))

	case F_ADDR:
		text = fmt.Sprintf("%s 0x%04X", info.Name, mem.peekWord(phys+1))

	case F_FAR:
		text = fmt.Sprintf("%s 0x%04X:0x%04X", info.Name,
			mem.peekWord(phys+3), mem.peekWord(phys+1))

	case F_REL8:
		text = fmt.Sprintf("%s %+d", info.Name, int8(sel))

	case F_IMM16:
		text = fmt.Sprintf("%s 0x%04X", info.Name, mem.peekWord(phys+1))

	case F_SHIFT:
		if sel&0x0F == 0 {
			text = fmt.Sprintf("%s %s, CX", info.Name, reg)
		} else {
			text = fmt.Sprintf("%s %s, %d", info.Name, reg, sel&0x0F)
		}

	case F_ENTER:
		text = fmt.Sprintf("%s 0x%04X, %d", info.Name,
			mem.peekWord(phys+1), mem.peek(phys+3))

	case F_STRING:
		sub, ok := opcodes[Op(sel)]
		if ok && sub.Format == F_NONE && Op(sel) >= OP_MOVSB && Op(sel) <= OP_LODSW {
			text = fmt.Sprintf("%s %s", info.Name, sub.Name)
		} else {
			text = fmt.Sprintf("%s 0x%02X", info.Name, sel)
		}

	case F_PORT_IN:
		text = fmt.Sprintf("%s %s, 0x%04X", info.Name,
			RegName(int(sel&0x07)), mem.peekWord(phys+2))

	case F_PORT_OUT:
		text = fmt.Sprintf("%s 0x%04X, %s", info.Name,
			mem.peekWord(phys+2), RegName(int(sel&0x07)))

	default:
		text = info.Name
	}

	return
}
