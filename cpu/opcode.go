package cpu

import (
	"fmt"
)

// Mnemonic is an instruction name.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MNEMONIC_JSR = Mnemonic(0) // jsr
	MNEMONIC_LDA = Mnemonic(1) // lda
	MNEMONIC_NOP = Mnemonic(2) // nop
	MNEMONIC_RTS = Mnemonic(3) // rts
)

// AddressMode determines how an instruction locates its operand.
type AddressMode int

//go:generate go tool stringer -linecomment -type=AddressMode
const (
	MODE_IMPLIED     = AddressMode(0) // implied
	MODE_IMMEDIATE   = AddressMode(1) // immediate
	MODE_ZERO_PAGE   = AddressMode(2) // zero-page
	MODE_ZERO_PAGE_X = AddressMode(3) // zero-page,x
	MODE_ABSOLUTE    = AddressMode(4) // absolute
)

// OperandSize returns the number of operand bytes following the opcode.
func (mode AddressMode) OperandSize() int {
	switch mode {
	case MODE_IMMEDIATE, MODE_ZERO_PAGE, MODE_ZERO_PAGE_X:
		return 1
	case MODE_ABSOLUTE:
		return 2
	default:
		return 0
	}
}

// Opcode is the first byte of an instruction.
type Opcode uint8

// Implemented opcodes.
const (
	OP_JSR     = Opcode(0x20) // jsr abs
	OP_RTS     = Opcode(0x60) // rts
	OP_LDA_ZP  = Opcode(0xa5) // lda zp
	OP_LDA_IMM = Opcode(0xa9) // lda #imm
	OP_LDA_ZPX = Opcode(0xb5) // lda zp,x
	OP_NOP     = Opcode(0xea) // nop
)

// Instruction describes a decoded opcode.
type Instruction struct {
	Mnemonic Mnemonic    // Instruction name.
	Mode     AddressMode // Operand addressing mode.
	Cycles   int         // Cycles consumed, including the opcode fetch.
}

// Size returns the instruction length in bytes, opcode included.
func (ins Instruction) Size() int {
	return 1 + ins.Mode.OperandSize()
}

func (ins Instruction) String() string {
	return fmt.Sprintf("%v %v", ins.Mnemonic, ins.Mode)
}

// Opcodes is the decode table of the implemented instruction subset.
var Opcodes = map[Opcode]Instruction{
	OP_JSR:     {MNEMONIC_JSR, MODE_ABSOLUTE, 6},
	OP_RTS:     {MNEMONIC_RTS, MODE_IMPLIED, 6},
	OP_LDA_ZP:  {MNEMONIC_LDA, MODE_ZERO_PAGE, 3},
	OP_LDA_IMM: {MNEMONIC_LDA, MODE_IMMEDIATE, 2},
	OP_LDA_ZPX: {MNEMONIC_LDA, MODE_ZERO_PAGE_X, 4},
	OP_NOP:     {MNEMONIC_NOP, MODE_IMPLIED, 2},
}

// encoding is the reverse of Opcodes, used by the assembler.
type encoding struct {
	Mnemonic Mnemonic
	Mode     AddressMode
}

var _encode = func() map[encoding]Opcode {
	enc := make(map[encoding]Opcode, len(Opcodes))
	for op, ins := range Opcodes {
		enc[encoding{ins.Mnemonic, ins.Mode}] = op
	}
	return enc
}()

// Encode finds the opcode for a mnemonic in an addressing mode.
func Encode(mnemonic Mnemonic, mode AddressMode) (op Opcode, ok bool) {
	op, ok = _encode[encoding{mnemonic, mode}]
	return
}

// Decode returns the instruction for an opcode.
func (op Opcode) Decode() (ins Instruction, ok bool) {
	ins, ok = Opcodes[op]
	return
}

// String returns the assembly form of the opcode, or its value if unknown.
func (op Opcode) String() string {
	ins, ok := op.Decode()
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}

	return ins.String()
}
