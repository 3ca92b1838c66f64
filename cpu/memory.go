package cpu

// Memory geometry. The 20-bit address bus reaches 1MB of physical memory;
// each segment register selects a 64KB window within it.
const (
	MEM_SIZE     = 0x100000 // 1MB physical memory
	SEGMENT_SIZE = 0x10000  // 64KB per segment

	IVT_BASE    = uint32(0x00000) // Interrupt vector table base
	IVT_ENTRIES = 256             // 4 bytes per entry

	MMIO_BASE = uint32(0xF0000) // Memory-mapped I/O window (pass-through)
)

// PhysAddr translates a segment:offset pair to a 20-bit physical address.
func PhysAddr(segment uint16, offset uint16) uint32 {
	return (uint32(segment) << 4) + uint32(offset)
}

// Memory is the flat physical byte array. Word access is always two byte
// accesses, low byte at the lower address.
type Memory struct {
	Data []byte
}

// NewMemory allocates a zeroed physical memory array.
func NewMemory() (mem Memory) {
	mem.Data = make([]byte, MEM_SIZE)
	return
}

// ReadByte reads one byte at a physical address.
func (mem *Memory) ReadByte(addr uint32) (value uint8, err error) {
	if addr >= uint32(len(mem.Data)) {
		err = ErrAddress(addr)
		return
	}
	value = mem.Data[addr]
	return
}

// WriteByte writes one byte at a physical address.
func (mem *Memory) WriteByte(addr uint32, value uint8) (err error) {
	if addr >= uint32(len(mem.Data)) {
		err = ErrAddress(addr)
		return
	}
	mem.Data[addr] = value
	return
}

// ReadWord reads a little-endian word as two byte reads.
func (mem *Memory) ReadWord(addr uint32) (value uint16, err error) {
	low, err := mem.ReadByte(addr)
	if err != nil {
		return
	}
	high, err := mem.ReadByte(addr + 1)
	if err != nil {
		return
	}
	value = uint16(low) | (uint16(high) << 8)
	return
}

// WriteWord writes a little-endian word as two byte writes.
func (mem *Memory) WriteWord(addr uint32, value uint16) (err error) {
	err = mem.WriteByte(addr, uint8(value&0xFF))
	if err != nil {
		return
	}
	err = mem.WriteByte(addr+1, uint8(value>>8))
	return
}

// peek reads a byte without error reporting, for non-mutating inspection.
func (mem *Memory) peek(addr uint32) (value uint8) {
	if addr < uint32(len(mem.Data)) {
		value = mem.Data[addr]
	}
	return
}

// peekWord reads a little-endian word without error reporting.
func (mem *Memory) peekWord(addr uint32) (value uint16) {
	return uint16(mem.peek(addr)) | (uint16(mem.peek(addr+1)) << 8)
}
