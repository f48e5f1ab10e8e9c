package cpu

import (
	"errors"

	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrUnsupportedInstruction = errors.New(f("instruction not supported"))
	ErrFetch                  = errors.New(f("opcode fetch"))
	ErrOperand                = errors.New(f("operand"))
	ErrStack                  = errors.New(f("stack"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgOverlap         = errors.New(f(".org overlaps previous code"))
	ErrDataMissing        = errors.New(f("data missing"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrModeInvalid        = errors.New(f("addressing mode invalid"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrImageOverflow      = errors.New(f("image past end of memory"))
)

// ErrOpcode is the diagnostic for an opcode the decoder does not handle.
type ErrOpcode struct {
	Opcode  uint8  // Opcode value fetched.
	Address uint16 // Address the opcode was fetched from.
}

func (eo ErrOpcode) Error() string {
	return f("instruction not supported: 0x%02x at 0x%04x", eo.Opcode, eo.Address)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

func (eo ErrOpcode) Unwrap() error {
	return ErrUnsupportedInstruction
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
