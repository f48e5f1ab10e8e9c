package emulator

import (
	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Source line of the failing instruction, or 0 if unknown.
	PC     uint16 // Address of the failing instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc 0x%04x %v", err.LineNo, err.PC, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
