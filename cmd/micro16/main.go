package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"micro16/cpu"
	"micro16/emulator"
	"micro16/monitor"
)

// parseLocation parses a "segment:offset" pair, both hex.
func parseLocation(text string) (segment uint16, offset uint16, err error) {
	seg_str, off_str, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("%v: expected segment:offset", text)
		return
	}
	seg64, err := strconv.ParseUint(seg_str, 16, 16)
	if err != nil {
		return
	}
	off64, err := strconv.ParseUint(off_str, 16, 16)
	if err != nil {
		return
	}
	segment = uint16(seg64)
	offset = uint16(off64)
	return
}

func main() {
	var image string
	var load_addr uint64
	var entry string
	var max_cycles int
	var disassemble bool
	var dump string
	var breaks string
	var verbose bool

	flag.StringVar(&image, "f", "", "binary image file to load")
	flag.Uint64Var(&load_addr, "l", 0x00100, "physical load address")
	flag.StringVar(&entry, "e", "0000:0100", "entry point (segment:offset, hex)")
	flag.IntVar(&max_cycles, "m", 0, "cycle budget, 0 for unlimited")
	flag.BoolVar(&disassemble, "D", false, "disassemble the image, do not execute")
	flag.StringVar(&dump, "d", "", "memory range to dump after the run (start-end, hex)")
	flag.StringVar(&breaks, "b", "", "comma-separated breakpoints (segment:offset[?condition])")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}
	if len(image) == 0 {
		log.Fatalf("%v: no image file given", os.Args[0])
	}

	program, err := os.ReadFile(image)
	if err != nil {
		log.Fatalf("%v: %v", image, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err = emu.Load(program, uint32(load_addr))
	if err != nil {
		log.Fatalf("%v: %v", image, err)
	}

	segment, offset, err := parseLocation(entry)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Seg[cpu.SEG_CS] = segment
	emu.PC = offset

	if disassemble {
		phys := uint32(load_addr)
		end := phys + uint32(len(program))
		for phys < end {
			text, length := emu.Disassemble(phys)
			fmt.Printf("%05X  %s\n", phys, text)
			phys += uint32(length)
		}
		return
	}

	mon := monitor.NewMonitor(emu.Cpu)
	if len(breaks) != 0 {
		for _, spec := range strings.Split(breaks, ",") {
			location, condition, _ := strings.Cut(spec, "?")
			segment, offset, err := parseLocation(location)
			if err != nil {
				log.Fatalf("%v: %v", os.Args[0], err)
			}
			_, err = mon.AddBreakpoint(segment, offset, condition)
			if err != nil {
				log.Fatalf("%v: %v", os.Args[0], err)
			}
		}
	}

	for {
		bp, _, err := mon.Run(max_cycles)
		if err != nil {
			log.Fatal(err)
		}
		if bp == nil {
			break
		}
		fmt.Printf("break at %04X:%04X (%d hits)\n", bp.Segment, bp.Offset, bp.Hits)
		fmt.Print(emu.String())
	}

	if emu.Fault != nil {
		log.Fatalf("%v: %v", image, emu.ErrorMessage())
	}

	fmt.Print(emu.String())

	if len(dump) != 0 {
		start_str, end_str, ok := strings.Cut(dump, "-")
		if !ok {
			log.Fatalf("%v: expected start-end", dump)
		}
		start, err := strconv.ParseUint(start_str, 16, 32)
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
		end, err := strconv.ParseUint(end_str, 16, 32)
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
		fmt.Print(emu.DumpMemory(uint32(start), uint32(end)))
	}
}
