package cpu

// Op is an opcode byte.
type Op uint8

// System instructions (0x00-0x0E).
const (
	OP_NOP   = Op(0x00) // No operation
	OP_HLT   = Op(0x01) // Halt CPU
	OP_WAIT  = Op(0x02) // Wait for interrupt
	OP_LOCK  = Op(0x03) // Bus lock prefix
	OP_INT   = Op(0x04) // Software interrupt
	OP_IRET  = Op(0x05) // Return from interrupt
	OP_CLI   = Op(0x06) // Clear interrupt flag
	OP_STI   = Op(0x07) // Set interrupt flag
	OP_CLC   = Op(0x08) // Clear carry flag
	OP_STC   = Op(0x09) // Set carry flag
	OP_CMC   = Op(0x0A) // Complement carry flag
	OP_CLD   = Op(0x0B) // Clear direction flag
	OP_STD   = Op(0x0C) // Set direction flag
	OP_PUSHF = Op(0x0D) // Push flags
	OP_POPF  = Op(0x0E) // Pop flags
)

// Data transfer, register (0x10-0x18).
const (
	OP_MOV_RR   = Op(0x10) // MOV Rd, Rs
	OP_MOV_RI   = Op(0x11) // MOV Rd, #imm16
	OP_XCHG     = Op(0x12) // XCHG Rd, Rs
	OP_MOV_SR   = Op(0x13) // MOV Seg, Rs
	OP_MOV_RS   = Op(0x14) // MOV Rd, Seg
	OP_MOV_R_SP = Op(0x15) // MOV Rd, SP
	OP_MOV_SP_R = Op(0x16) // MOV SP, Rs
	OP_ADD_SP_I = Op(0x17) // ADD SP, #imm16
	OP_SUB_SP_I = Op(0x18) // SUB SP, #imm16
)

// Data transfer, memory (0x20-0x2A).
const (
	OP_LD        = Op(0x20) // LD Rd, [addr]
	OP_ST        = Op(0x21) // ST [addr], Rs
	OP_LDB       = Op(0x22) // LDB Rd, [addr] (byte, zero-extend)
	OP_STB       = Op(0x23) // STB [addr], Rs (low byte)
	OP_LD_IDX    = Op(0x24) // LD Rd, [Rs + disp]
	OP_ST_IDX    = Op(0x25) // ST [Rd + disp], Rs
	OP_LEA       = Op(0x26) // LEA Rd, [addr]
	OP_LDS       = Op(0x27) // LDS Rd, [addr] (far pointer into DS:Rd)
	OP_LES       = Op(0x28) // LES Rd, [addr] (far pointer into ES:Rd)
	OP_LD_IDX_SP = Op(0x29) // LD Rd, [SP + disp]
	OP_ST_IDX_SP = Op(0x2A) // ST [SP + disp], Rs
)

// Stack operations (0x40-0x47).
const (
	OP_PUSH_R = Op(0x40) // PUSH Rd
	OP_POP_R  = Op(0x41) // POP Rd
	OP_PUSH_S = Op(0x42) // PUSH Seg
	OP_POP_S  = Op(0x43) // POP Seg
	OP_PUSHA  = Op(0x44) // Push all general registers
	OP_POPA   = Op(0x45) // Pop all general registers
	OP_ENTER  = Op(0x46) // Create stack frame
	OP_LEAVE  = Op(0x47) // Destroy stack frame
)

// Arithmetic operations (0x50-0x63).
const (
	OP_ADD_RR = Op(0x50) // ADD Rd, Rs
	OP_ADD_RI = Op(0x51) // ADD Rd, #imm16
	OP_ADC_RR = Op(0x52) // ADC Rd, Rs (with carry)
	OP_ADC_RI = Op(0x53) // ADC Rd, #imm16
	OP_SUB_RR = Op(0x54) // SUB Rd, Rs
	OP_SUB_RI = Op(0x55) // SUB Rd, #imm16
	OP_SBC_RR = Op(0x56) // SBC Rd, Rs (with borrow)
	OP_SBC_RI = Op(0x57) // SBC Rd, #imm16
	OP_CMP_RR = Op(0x58) // CMP Rd, Rs
	OP_CMP_RI = Op(0x59) // CMP Rd, #imm16
	OP_NEG    = Op(0x5A) // NEG Rd (two's complement)
	OP_INC    = Op(0x5B) // INC Rd (carry preserved)
	OP_DEC    = Op(0x5C) // DEC Rd (carry preserved)
	OP_MUL    = Op(0x60) // MUL Rs (DX:AX = AX * Rs, unsigned)
	OP_IMUL   = Op(0x61) // IMUL Rs (DX:AX = AX * Rs, signed)
	OP_DIV    = Op(0x62) // DIV Rs (AX = DX:AX / Rs, DX = remainder)
	OP_IDIV   = Op(0x63) // IDIV Rs (signed divide)
)

// Logic operations (0x70-0x78).
const (
	OP_AND_RR  = Op(0x70) // AND Rd, Rs
	OP_AND_RI  = Op(0x71) // AND Rd, #imm16
	OP_OR_RR   = Op(0x72) // OR Rd, Rs
	OP_OR_RI   = Op(0x73) // OR Rd, #imm16
	OP_XOR_RR  = Op(0x74) // XOR Rd, Rs
	OP_XOR_RI  = Op(0x75) // XOR Rd, #imm16
	OP_NOT     = Op(0x76) // NOT Rd (no flags)
	OP_TEST_RR = Op(0x77) // TEST Rd, Rs (AND without storing)
	OP_TEST_RI = Op(0x78) // TEST Rd, #imm16
)

// Shift and rotate operations (0x80-0x86).
const (
	OP_SHL = Op(0x80) // SHL Rd, count
	OP_SHR = Op(0x81) // SHR Rd, count (logical)
	OP_SAR = Op(0x82) // SAR Rd, count (arithmetic)
	OP_ROL = Op(0x83) // ROL Rd, count
	OP_ROR = Op(0x84) // ROR Rd, count
	OP_RCL = Op(0x85) // RCL Rd, count (through carry)
	OP_RCR = Op(0x86) // RCR Rd, count (through carry)
)

// Unconditional jumps (0xA0-0xA3).
const (
	OP_JMP     = Op(0xA0) // JMP addr (absolute)
	OP_JMP_FAR = Op(0xA1) // JMP seg:offset (far)
	OP_JMP_R   = Op(0xA2) // JMP Rd (indirect)
	OP_JR      = Op(0xA3) // JR offset (relative short)
)

// Conditional jumps (0xB0-0xBD).
const (
	OP_JZ  = Op(0xB0) // JZ/JE addr
	OP_JNZ = Op(0xB1) // JNZ/JNE addr
	OP_JC  = Op(0xB2) // JC/JB addr
	OP_JNC = Op(0xB3) // JNC/JAE addr
	OP_JS  = Op(0xB4) // JS addr
	OP_JNS = Op(0xB5) // JNS addr
	OP_JO  = Op(0xB6) // JO addr
	OP_JNO = Op(0xB7) // JNO addr
	OP_JL  = Op(0xB8) // JL addr (signed less)
	OP_JGE = Op(0xB9) // JGE addr (signed greater/equal)
	OP_JLE = Op(0xBA) // JLE addr (signed less/equal)
	OP_JG  = Op(0xBB) // JG addr (signed greater)
	OP_JA  = Op(0xBC) // JA addr (unsigned above)
	OP_JBE = Op(0xBD) // JBE addr (unsigned below/equal)
)

// Calls and returns (0xC0-0xC5).
const (
	OP_CALL     = Op(0xC0) // CALL addr (near)
	OP_CALL_FAR = Op(0xC1) // CALL seg:offset (far)
	OP_CALL_R   = Op(0xC2) // CALL Rd (indirect)
	OP_RET      = Op(0xC3) // RET (near)
	OP_RET_FAR  = Op(0xC4) // RETF (far)
	OP_RET_I    = Op(0xC5) // RET imm16 (return and discard)
)

// Loop instructions (0xD0-0xD2).
const (
	OP_LOOP   = Op(0xD0) // LOOP offset (decrement CX, jump if not zero)
	OP_LOOPZ  = Op(0xD1) // LOOPZ offset (loop while zero)
	OP_LOOPNZ = Op(0xD2) // LOOPNZ offset (loop while not zero)
)

// String operations (0xE0-0xEA).
const (
	OP_MOVSB = Op(0xE0) // Move string byte
	OP_MOVSW = Op(0xE1) // Move string word
	OP_CMPSB = Op(0xE2) // Compare string byte
	OP_CMPSW = Op(0xE3) // Compare string word
	OP_STOSB = Op(0xE4) // Store string byte
	OP_STOSW = Op(0xE5) // Store string word
	OP_LODSB = Op(0xE6) // Load string byte
	OP_LODSW = Op(0xE7) // Load string word
	OP_REP   = Op(0xE8) // Repeat prefix
	OP_REPZ  = Op(0xE9) // Repeat while zero prefix
	OP_REPNZ = Op(0xEA) // Repeat while not zero prefix
)

// I/O operations (0xF0-0xF3).
const (
	OP_IN   = Op(0xF0) // IN Rd, port (word)
	OP_OUT  = Op(0xF1) // OUT port, Rs (word)
	OP_INB  = Op(0xF2) // INB Rd, port (byte)
	OP_OUTB = Op(0xF3) // OUTB port, Rs (byte)
)

// OpFormat is the operand encoding of an opcode, used by the disassembler.
type OpFormat int

const (
	F_NONE     = OpFormat(iota) // no operands
	F_VEC                       // interrupt vector byte
	F_REG                       // single register selector
	F_REG_PAIR                  // destination and source registers
	F_SEG                       // single segment selector
	F_SEG_REG                   // segment destination, register source
	F_REG_SEG                   // register destination, segment source
	F_REG_IMM                   // register and 16-bit immediate
	F_REG_MEM                   // register and direct memory address
	F_MEM_REG                   // direct memory address and register
	F_REG_IDX                   // register and base-indexed address
	F_IDX_REG                   // base-indexed address and register
	F_REG_SP                    // register destination, SP source
	F_SP_REG                    // SP destination, register source
	F_SP_IMM                    // SP and 16-bit immediate
	F_REG_IDXSP                 // register and SP-indexed address
	F_IDXSP_REG                 // SP-indexed address and register
	F_ADDR                      // absolute 16-bit address
	F_FAR                       // segment:offset far pointer
	F_REL8                      // signed 8-bit relative offset
	F_IMM16                     // 16-bit immediate
	F_SHIFT                     // register and shift count nibble
	F_ENTER                     // frame size word and nesting level byte
	F_STRING                    // repeat prefix and string sub-opcode
	F_PORT_IN                   // register destination and port
	F_PORT_OUT                  // port destination and register
)

// opInfo binds one opcode to its mnemonic, encoded length in bytes, operand
// format, and execute handler. Each handler fetches its own operand bytes
// and returns its cycle cost beyond the fetch cycle.
type opInfo struct {
	Name   string
	Length int
	Format OpFormat
	Exec   func(cpu *Cpu) (cycles int)
}

// opcodes is the decode/dispatch table, keyed by opcode byte. A byte with
// no entry is an unknown opcode and a halting fault.
var opcodes = map[Op]opInfo{
	OP_NOP:   {"NOP", 1, F_NONE, (*Cpu).opNop},
	OP_HLT:   {"HLT", 1, F_NONE, (*Cpu).opHlt},
	OP_WAIT:  {"WAIT", 1, F_NONE, (*Cpu).opWait},
	OP_LOCK:  {"LOCK", 1, F_NONE, (*Cpu).opLock},
	OP_INT:   {"INT", 2, F_VEC, (*Cpu).opInt},
	OP_IRET:  {"IRET", 1, F_NONE, (*Cpu).opIret},
	OP_CLI:   {"CLI", 1, F_NONE, (*Cpu).opCli},
	OP_STI:   {"STI", 1, F_NONE, (*Cpu).opSti},
	OP_CLC:   {"CLC", 1, F_NONE, (*Cpu).opClc},
	OP_STC:   {"STC", 1, F_NONE, (*Cpu).opStc},
	OP_CMC:   {"CMC", 1, F_NONE, (*Cpu).opCmc},
	OP_CLD:   {"CLD", 1, F_NONE, (*Cpu).opCld},
	OP_STD:   {"STD", 1, F_NONE, (*Cpu).opStd},
	OP_PUSHF: {"PUSHF", 1, F_NONE, (*Cpu).opPushf},
	OP_POPF:  {"POPF", 1, F_NONE, (*Cpu).opPopf},

	OP_MOV_RR:   {"MOV", 2, F_REG_PAIR, (*Cpu).opMovRR},
	OP_MOV_RI:   {"MOV", 4, F_REG_IMM, (*Cpu).opMovRI},
	OP_XCHG:     {"XCHG", 2, F_REG_PAIR, (*Cpu).opXchg},
	OP_MOV_SR:   {"MOV", 2, F_SEG_REG, (*Cpu).opMovSR},
	OP_MOV_RS:   {"MOV", 2, F_REG_SEG, (*Cpu).opMovRS},
	OP_MOV_R_SP: {"MOV", 2, F_REG_SP, (*Cpu).opMovRSp},
	OP_MOV_SP_R: {"MOV", 2, F_SP_REG, (*Cpu).opMovSpR},
	OP_ADD_SP_I: {"ADD", 3, F_SP_IMM, (*Cpu).opAddSpI},
	OP_SUB_SP_I: {"SUB", 3, F_SP_IMM, (*Cpu).opSubSpI},

	OP_LD:        {"LD", 4, F_REG_MEM, (*Cpu).opLd},
	OP_ST:        {"ST", 4, F_MEM_REG, (*Cpu).opSt},
	OP_LDB:       {"LDB", 4, F_REG_MEM, (*Cpu).opLdb},
	OP_STB:       {"STB", 4, F_MEM_REG, (*Cpu).opStb},
	OP_LD_IDX:    {"LD", 4, F_REG_IDX, (*Cpu).opLdIdx},
	OP_ST_IDX:    {"ST", 4, F_IDX_REG, (*Cpu).opStIdx},
	OP_LEA:       {"LEA", 4, F_REG_MEM, (*Cpu).opLea},
	OP_LDS:       {"LDS", 4, F_REG_MEM, (*Cpu).opLds},
	OP_LES:       {"LES", 4, F_REG_MEM, (*Cpu).opLes},
	OP_LD_IDX_SP: {"LD", 4, F_REG_IDXSP, (*Cpu).opLdIdxSp},
	OP_ST_IDX_SP: {"ST", 4, F_IDXSP_REG, (*Cpu).opStIdxSp},

	OP_PUSH_R: {"PUSH", 2, F_REG, (*Cpu).opPushR},
	OP_POP_R:  {"POP", 2, F_REG, (*Cpu).opPopR},
	OP_PUSH_S: {"PUSH", 2, F_SEG, (*Cpu).opPushS},
	OP_POP_S:  {"POP", 2, F_SEG, (*Cpu).opPopS},
	OP_PUSHA:  {"PUSHA", 1, F_NONE, (*Cpu).opPusha},
	OP_POPA:   {"POPA", 1, F_NONE, (*Cpu).opPopa},
	OP_ENTER:  {"ENTER", 4, F_ENTER, (*Cpu).opEnter},
	OP_LEAVE:  {"LEAVE", 1, F_NONE, (*Cpu).opLeave},

	OP_ADD_RR: {"ADD", 2, F_REG_PAIR, (*Cpu).opAddRR},
	OP_ADD_RI: {"ADD", 4, F_REG_IMM, (*Cpu).opAddRI},
	OP_ADC_RR: {"ADC", 2, F_REG_PAIR, (*Cpu).opAdcRR},
	OP_ADC_RI: {"ADC", 4, F_REG_IMM, (*Cpu).opAdcRI},
	OP_SUB_RR: {"SUB", 2, F_REG_PAIR, (*Cpu).opSubRR},
	OP_SUB_RI: {"SUB", 4, F_REG_IMM, (*Cpu).opSubRI},
	OP_SBC_RR: {"SBC", 2, F_REG_PAIR, (*Cpu).opSbcRR},
	OP_SBC_RI: {"SBC", 4, F_REG_IMM, (*Cpu).opSbcRI},
	OP_CMP_RR: {"CMP", 2, F_REG_PAIR, (*Cpu).opCmpRR},
	OP_CMP_RI: {"CMP", 4, F_REG_IMM, (*Cpu).opCmpRI},
	OP_NEG:    {"NEG", 2, F_REG, (*Cpu).opNeg},
	OP_INC:    {"INC", 2, F_REG, (*Cpu).opInc},
	OP_DEC:    {"DEC", 2, F_REG, (*Cpu).opDec},
	OP_MUL:    {"MUL", 2, F_REG, (*Cpu).opMul},
	OP_IMUL:   {"IMUL", 2, F_REG, (*Cpu).opImul},
	OP_DIV:    {"DIV", 2, F_REG, (*Cpu).opDiv},
	OP_IDIV:   {"IDIV", 2, F_REG, (*Cpu).opIdiv},

	OP_AND_RR:  {"AND", 2, F_REG_PAIR, (*Cpu).opAndRR},
	OP_AND_RI:  {"AND", 4, F_REG_IMM, (*Cpu).opAndRI},
	OP_OR_RR:   {"OR", 2, F_REG_PAIR, (*Cpu).opOrRR},
	OP_OR_RI:   {"OR", 4, F_REG_IMM, (*Cpu).opOrRI},
	OP_XOR_RR:  {"XOR", 2, F_REG_PAIR, (*Cpu).opXorRR},
	OP_XOR_RI:  {"XOR", 4, F_REG_IMM, (*Cpu).opXorRI},
	OP_NOT:     {"NOT", 2, F_REG, (*Cpu).opNot},
	OP_TEST_RR: {"TEST", 2, F_REG_PAIR, (*Cpu).opTestRR},
	OP_TEST_RI: {"TEST", 4, F_REG_IMM, (*Cpu).opTestRI},

	OP_SHL: {"SHL", 2, F_SHIFT, (*Cpu).opShl},
	OP_SHR: {"SHR", 2, F_SHIFT, (*Cpu).opShr},
	OP_SAR: {"SAR", 2, F_SHIFT, (*Cpu).opSar},
	OP_ROL: {"ROL", 2, F_SHIFT, (*Cpu).opRol},
	OP_ROR: {"ROR", 2, F_SHIFT, (*Cpu).opRor},
	OP_RCL: {"RCL", 2, F_SHIFT, (*Cpu).opRcl},
	OP_RCR: {"RCR", 2, F_SHIFT, (*Cpu).opRcr},

	OP_JMP:     {"JMP", 3, F_ADDR, (*Cpu).opJmp},
	OP_JMP_FAR: {"JMP", 5, F_FAR, (*Cpu).opJmpFar},
	OP_JMP_R:   {"JMP", 2, F_REG, (*Cpu).opJmpR},
	OP_JR:      {"JR", 2, F_REL8, (*Cpu).opJr},

	OP_JZ:  {"JZ", 3, F_ADDR, (*Cpu).opJz},
	OP_JNZ: {"JNZ", 3, F_ADDR, (*Cpu).opJnz},
	OP_JC:  {"JC", 3, F_ADDR, (*Cpu).opJc},
	OP_JNC: {"JNC", 3, F_ADDR, (*Cpu).opJnc},
	OP_JS:  {"JS", 3, F_ADDR, (*Cpu).opJs},
	OP_JNS: {"JNS", 3, F_ADDR, (*Cpu).opJns},
	OP_JO:  {"JO", 3, F_ADDR, (*Cpu).opJo},
	OP_JNO: {"JNO", 3, F_ADDR, (*Cpu).opJno},
	OP_JL:  {"JL", 3, F_ADDR, (*Cpu).opJl},
	OP_JGE: {"JGE", 3, F_ADDR, (*Cpu).opJge},
	OP_JLE: {"JLE", 3, F_ADDR, (*Cpu).opJle},
	OP_JG:  {"JG", 3, F_ADDR, (*Cpu).opJg},
	OP_JA:  {"JA", 3, F_ADDR, (*Cpu).opJa},
	OP_JBE: {"JBE", 3, F_ADDR, (*Cpu).opJbe},

	OP_CALL:     {"CALL", 3, F_ADDR, (*Cpu).opCall},
	OP_CALL_FAR: {"CALL", 5, F_FAR, (*Cpu).opCallFar},
	OP_CALL_R:   {"CALL", 2, F_REG, (*Cpu).opCallR},
	OP_RET:      {"RET", 1, F_NONE, (*Cpu).opRet},
	OP_RET_FAR:  {"RETF", 1, F_NONE, (*Cpu).opRetFar},
	OP_RET_I:    {"RET", 3, F_IMM16, (*Cpu).opRetI},

	OP_LOOP:   {"LOOP", 2, F_REL8, (*Cpu).opLoop},
	OP_LOOPZ:  {"LOOPZ", 2, F_REL8, (*Cpu).opLoopz},
	OP_LOOPNZ: {"LOOPNZ", 2, F_REL8, (*Cpu).opLoopnz},

	OP_MOVSB: {"MOVSB", 1, F_NONE, (*Cpu).opMovsb},
	OP_MOVSW: {"MOVSW", 1, F_NONE, (*Cpu).opMovsw},
	OP_CMPSB: {"CMPSB", 1, F_NONE, (*Cpu).opCmpsb},
	OP_CMPSW: {"CMPSW", 1, F_NONE, (*Cpu).opCmpsw},
	OP_STOSB: {"STOSB", 1, F_NONE, (*Cpu).opStosb},
	OP_STOSW: {"STOSW", 1, F_NONE, (*Cpu).opStosw},
	OP_LODSB: {"LODSB", 1, F_NONE, (*Cpu).opLodsb},
	OP_LODSW: {"LODSW", 1, F_NONE, (*Cpu).opLodsw},
	OP_REP:   {"REP", 2, F_STRING, (*Cpu).opRep},
	OP_REPZ:  {"REPZ", 2, F_STRING, (*Cpu).opRepz},
	OP_REPNZ: {"REPNZ", 2, F_STRING, (*Cpu).opRepnz},

	OP_IN:   {"IN", 4, F_PORT_IN, (*Cpu).opIn},
	OP_OUT:  {"OUT", 4, F_PORT_OUT, (*Cpu).opOut},
	OP_INB:  {"INB", 4, F_PORT_IN, (*Cpu).opInb},
	OP_OUTB: {"OUTB", 4, F_PORT_OUT, (*Cpu).opOutb},
}
