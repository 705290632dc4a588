package emulator

import (
	"errors"

	"github.com/ezrec/lmc/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   int // Address of the faulting cell.
	LineNo int // Source line of the faulting cell, or zero if unknown.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %02d %v", err.Addr, err.Err)
	}
	return f("address %02d line %d %v", err.Addr, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
