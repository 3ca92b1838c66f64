// Package monitor provides a machine-level debugger for the CPU: location
// breakpoints with optional condition expressions, watch expressions, and
// a run loop that stops when a breakpoint fires.
//
// Conditions and watches are Starlark expressions evaluated against a
// snapshot of the CPU state. Registers appear by their lowercase
// architectural names (ax, bx, .. r7, cs, ds, ss, es, pc, sp), flags as
// booleans (carry, zero, sign, overflow, direction, interrupt, trap,
// parity), and the counters as cycles and instructions.
package monitor

import (
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"micro16/cpu"
)

const (
	MAX_BREAKPOINTS = 32 // Breakpoint slots per monitor.
)

// Breakpoint stops execution at a code location. An empty Condition always
// fires; otherwise the expression must evaluate truthy.
type Breakpoint struct {
	Segment   uint16
	Offset    uint16
	Condition string
	Enabled   bool
	Hits      int
}

// Watch is a named expression re-evaluated on demand.
type Watch struct {
	Name string
	Expr string
}

// Monitor drives one CPU under debugger control.
type Monitor struct {
	Verbose bool // If set, enables verbose logging.

	Cpu *cpu.Cpu

	Breakpoints []*Breakpoint
	Watches     []*Watch
}

// NewMonitor attaches a monitor to a CPU.
func NewMonitor(c *cpu.Cpu) (mon *Monitor) {
	mon = &Monitor{
		Cpu: c,
	}
	return
}

// env snapshots the CPU state as the predeclared environment for condition
// and watch expressions.
func (mon *Monitor) env() starlark.StringDict {
	c := mon.Cpu

	pred := starlark.StringDict{}
	for reg, value := range c.Reg {
		name := cpu.RegName(reg)
		pred[lower(name)] = starlark.MakeInt(int(value))
	}
	for seg, value := range c.Seg {
		name := cpu.SegName(seg)
		pred[lower(name)] = starlark.MakeInt(int(value))
	}
	pred["pc"] = starlark.MakeInt(int(c.PC))
	pred["sp"] = starlark.MakeInt(int(c.SP))

	pred["carry"] = starlark.Bool(c.Flags.Carry)
	pred["zero"] = starlark.Bool(c.Flags.Zero)
	pred["sign"] = starlark.Bool(c.Flags.Sign)
	pred["overflow"] = starlark.Bool(c.Flags.Overflow)
	pred["direction"] = starlark.Bool(c.Flags.Direction)
	pred["interrupt"] = starlark.Bool(c.Flags.Interrupt)
	pred["trap"] = starlark.Bool(c.Flags.Trap)
	pred["parity"] = starlark.Bool(c.Flags.Parity)

	pred["cycles"] = starlark.MakeInt64(int64(c.Cycles))
	pred["instructions"] = starlark.MakeInt64(int64(c.Instructions))

	return pred
}

func lower(name string) string {
	buf := []byte(name)
	for n := range buf {
		if buf[n] >= 'A' && buf[n] <= 'Z' {
			buf[n] += 'a' - 'A'
		}
	}
	return string(buf)
}

// Eval evaluates one expression against the current CPU state.
func (mon *Monitor) Eval(expr string) (value starlark.Value, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, mon.env())
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = &ErrExpression{Expr: expr}
		return
	}
	return
}

// EvalBool evaluates an expression as a condition.
func (mon *Monitor) EvalBool(expr string) (result bool, err error) {
	value, err := mon.Eval(expr)
	if err != nil {
		return
	}
	result = bool(value.Truth())
	return
}

// AddBreakpoint installs a breakpoint at a code location. A non-empty
// condition is validated against the current state before installation.
func (mon *Monitor) AddBreakpoint(segment uint16, offset uint16, condition string) (bp *Breakpoint, err error) {
	if len(mon.Breakpoints) >= MAX_BREAKPOINTS {
		err = ErrBreakpointLimit(MAX_BREAKPOINTS)
		return
	}

	if condition != "" {
		_, err = mon.EvalBool(condition)
		if err != nil {
			return
		}
	}

	bp = &Breakpoint{
		Segment:   segment,
		Offset:    offset,
		Condition: condition,
		Enabled:   true,
	}
	mon.Breakpoints = append(mon.Breakpoints, bp)

	if mon.Verbose {
		log.Printf("monitor: breakpoint at %04X:%04X %q", segment, offset, condition)
	}
	return
}

// ClearBreakpoint removes all breakpoints at a code location and reports
// whether any were removed.
func (mon *Monitor) ClearBreakpoint(segment uint16, offset uint16) (removed bool) {
	kept := mon.Breakpoints[:0]
	for _, bp := range mon.Breakpoints {
		if bp.Segment == segment && bp.Offset == offset {
			removed = true
			continue
		}
		kept = append(kept, bp)
	}
	mon.Breakpoints = kept
	return
}

// AddWatch installs a named watch expression, validated against the
// current state.
func (mon *Monitor) AddWatch(name string, expr string) (err error) {
	_, err = mon.Eval(expr)
	if err != nil {
		return
	}
	mon.Watches = append(mon.Watches, &Watch{Name: name, Expr: expr})
	return
}

// WatchValues evaluates every watch, returning "name = value" lines.
func (mon *Monitor) WatchValues() (lines []string, err error) {
	for _, watch := range mon.Watches {
		var value starlark.Value
		value, err = mon.Eval(watch.Expr)
		if err != nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%s = %v", watch.Name, value))
	}
	return
}

// breakpointAt finds the first enabled, matching breakpoint whose
// condition holds at the current CS:PC.
func (mon *Monitor) breakpointAt() (bp *Breakpoint, err error) {
	for _, candidate := range mon.Breakpoints {
		if !candidate.Enabled {
			continue
		}
		if candidate.Segment != mon.Cpu.Seg[cpu.SEG_CS] || candidate.Offset != mon.Cpu.PC {
			continue
		}
		if candidate.Condition != "" {
			var hold bool
			hold, err = mon.EvalBool(candidate.Condition)
			if err != nil {
				return
			}
			if !hold {
				continue
			}
		}
		candidate.Hits++
		bp = candidate
		return
	}
	return
}

// Run steps the CPU until it halts, faults, hits a breakpoint, or spends
// the cycle budget. A budget of zero or less runs without limit. The hit
// breakpoint, if any, is returned with the cycles consumed.
func (mon *Monitor) Run(maxCycles int) (bp *Breakpoint, total int, err error) {
	for !mon.Cpu.Halted && mon.Cpu.Fault == nil && (maxCycles <= 0 || total < maxCycles) {
		cycles := mon.Cpu.Step()
		if cycles == 0 {
			break
		}
		total += cycles

		bp, err = mon.breakpointAt()
		if err != nil || bp != nil {
			if mon.Verbose && bp != nil {
				log.Printf("monitor: break at %04X:%04X (%d hits)",
					bp.Segment, bp.Offset, bp.Hits)
			}
			return
		}
	}
	return
}
