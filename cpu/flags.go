package cpu

// Flags register bit positions in the 16-bit wire format.
const (
	FLAG_C = uint16(0x0001) // Carry
	FLAG_Z = uint16(0x0002) // Zero
	FLAG_S = uint16(0x0004) // Sign (negative)
	FLAG_O = uint16(0x0008) // Overflow
	FLAG_D = uint16(0x0010) // Direction (string ops)
	FLAG_I = uint16(0x0020) // Interrupt enable
	FLAG_T = uint16(0x0040) // Trap (single step)
	FLAG_P = uint16(0x0080) // Parity
)

// Flags is the condition code register as named booleans. Word and SetWord
// project to and from the packed 16-bit format pushed by interrupts and
// PUSHF/POPF.
type Flags struct {
	Carry     bool
	Zero      bool
	Sign      bool
	Overflow  bool
	Direction bool
	Interrupt bool
	Trap      bool
	Parity    bool
}

// Word packs the flags into their 16-bit wire format.
func (fl Flags) Word() (word uint16) {
	pack := func(bit uint16, set bool) {
		if set {
			word |= bit
		}
	}
	pack(FLAG_C, fl.Carry)
	pack(FLAG_Z, fl.Zero)
	pack(FLAG_S, fl.Sign)
	pack(FLAG_O, fl.Overflow)
	pack(FLAG_D, fl.Direction)
	pack(FLAG_I, fl.Interrupt)
	pack(FLAG_T, fl.Trap)
	pack(FLAG_P, fl.Parity)
	return
}

// SetWord unpacks the 16-bit wire format into the flags.
func (fl *Flags) SetWord(word uint16) {
	fl.Carry = (word & FLAG_C) != 0
	fl.Zero = (word & FLAG_Z) != 0
	fl.Sign = (word & FLAG_S) != 0
	fl.Overflow = (word & FLAG_O) != 0
	fl.Direction = (word & FLAG_D) != 0
	fl.Interrupt = (word & FLAG_I) != 0
	fl.Trap = (word & FLAG_T) != 0
	fl.Parity = (word & FLAG_P) != 0
}

// String renders the flags in the state-dump order, set bits as letters.
func (fl Flags) String() (text string) {
	letters := []struct {
		ch  byte
		set bool
	}{
		{'S', fl.Sign},
		{'Z', fl.Zero},
		{'P', fl.Parity},
		{'O', fl.Overflow},
		{'C', fl.Carry},
		{'I', fl.Interrupt},
		{'D', fl.Direction},
		{'T', fl.Trap},
	}
	buf := make([]byte, len(letters))
	for n, l := range letters {
		buf[n] = '-'
		if l.set {
			buf[n] = l.ch
		}
	}
	return string(buf)
}
