// Package cpu implements the Micro16 instruction-set emulator.
//
// The Micro16 is a 16-bit real-mode machine: eight general purpose registers
// (AX, BX, CX, DX, SI, DI, BP, R7), four segment registers (CS, DS, SS, ES),
// and a 20-bit physical address space reached through segment<<4+offset
// translation. Roughly 120 opcodes cover data transfer, arithmetic with full
// flag semantics, string operations with repeat prefixes, stack frames, and
// a vectored interrupt system.
//
// A Cpu value owns its registers and memory outright; independent instances
// share no state. Execution is synchronous and deterministic: Step executes
// one instruction and returns its cycle cost, Run repeats Step until halt,
// fault, or a cycle budget is exhausted.
package cpu
