package monitor

import (
	"micro16/translate"
)

var f = translate.From

// ErrBreakpointLimit is an attempt to install more breakpoints than the
// monitor has slots for.
type ErrBreakpointLimit int

func (eb ErrBreakpointLimit) Error() string {
	return f("breakpoint limit of %d reached", int(eb))
}

func (eb ErrBreakpointLimit) Is(err error) (ok bool) {
	_, ok = err.(ErrBreakpointLimit)
	return
}

// ErrExpression is a condition or watch expression that failed to parse
// or evaluate.
type ErrExpression struct {
	Expr string
	Err  error
}

func (ee *ErrExpression) Error() string {
	if ee.Err != nil {
		return f("expression %q: %v", ee.Expr, ee.Err)
	}
	return f("expression %q did not produce a value", ee.Expr)
}

func (ee *ErrExpression) Unwrap() error {
	return ee.Err
}

func (ee *ErrExpression) Is(err error) (ok bool) {
	_, ok = err.(*ErrExpression)
	return
}
