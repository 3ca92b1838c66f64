package emulator

import (
	"micro16/translate"
)

var f = translate.From

// ErrRuntime indicates the code location of a halting CPU fault.
type ErrRuntime struct {
	Segment uint16
	Offset  uint16
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("at %04X:%04X: %v", err.Segment, err.Offset, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrLoad is a program image that does not fit in physical memory.
type ErrLoad struct {
	Addr uint32
	Size int
}

func (el ErrLoad) Error() string {
	return f("program of %d bytes does not fit at 0x%05X", el.Size, el.Addr)
}

func (el ErrLoad) Is(err error) (ok bool) {
	_, ok = err.(ErrLoad)
	return
}
