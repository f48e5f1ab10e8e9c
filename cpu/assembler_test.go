package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/memory"
)

func assemble(t *testing.T, asm *Assembler, program []string) (prog *Program) {
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ FOO 3",
		".org 0xfffc",
		"start: jsr sub ; call",
		".org $4242",
		"sub: lda #$84",
		"     lda 0x80, x",
		"     LDA zp",
		"     rts",
		".org 0x10",
		"zp: .byte 0x7f 'A' $(FOO * 2)",
		".word start",
	}

	prog := assemble(t, asm, program)

	expected := []Statement{
		{3, 0xfffc, []string{"jsr", "sub"}, []byte{0x20, 0x42, 0x42}, []Link{{1, 2, "sub"}}},
		{5, 0x4242, []string{"lda", "#$84"}, []byte{0xa9, 0x84}, nil},
		{6, 0x4244, []string{"lda", "0x80,", "x"}, []byte{0xb5, 0x80}, nil},
		{7, 0x4246, []string{"LDA", "zp"}, []byte{0xa5, 0x10}, []Link{{1, 1, "zp"}}},
		{8, 0x4248, []string{"rts"}, []byte{0x60}, nil},
		{10, 0x0010, []string{".byte", "0x7f", "65", "6"}, []byte{0x7f, 0x41, 0x06}, nil},
		{11, 0x0013, []string{".word", "start"}, []byte{0xfc, 0xff}, nil},
	}

	assert.Equal(len(expected), len(prog.Statements))
	if len(expected) == len(prog.Statements) {
		for n := range len(expected) {
			assert.Equal(expected[n], prog.Statements[n])
		}
	}

	assert.Equal(0xfffc, asm.Label["start"])
	assert.Equal(0x4242, asm.Label["sub"])
	assert.Equal(0x0010, asm.Label["zp"])
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("CODE", "0x0200")
	asm.Predefine("DATA", "0x20")

	program := []string{
		".org CODE",
		"lda DATA",
		"lda #LINENO",
		"lda #$(DATA + LINENO)",
		"lda #-1",
	}

	prog := assemble(t, asm, program)

	assert.Equal(4, len(prog.Statements))
	assert.Equal([]byte{0xa5, 0x20}, prog.Statements[0].Bytes)
	assert.Equal([]byte{0xa9, 0x03}, prog.Statements[1].Bytes)
	assert.Equal([]byte{0xa9, 0x24}, prog.Statements[2].Bytes)
	assert.Equal([]byte{0xa9, 0xff}, prog.Statements[3].Bytes)
	assert.Equal(0x0200, prog.Statements[0].Address)
	assert.Equal(0x0206, prog.Statements[3].Address)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"mode_missing", []string{"lda"}, ErrModeInvalid, 1},
		{"opcode", []string{"nop", "foo 1"}, ErrOpcodeInvalid, 2},
		{"extra", []string{"nop 1"}, ErrOpcodeExtraArgs, 1},
		{"jsr_imm", []string{"jsr #1"}, ErrModeInvalid, 1},
		{"imm_empty", []string{"lda #"}, ErrOpcodeValueMissing, 1},
		{"zp_range", []string{"lda 0x100"}, ErrOperandRange, 1},
		{"imm_range", []string{"lda #0x100"}, ErrOperandRange, 1},
		{"link_range", []string{"lda far", ".org 0x300", "far: nop"}, ErrOperandRange, 1},
		{"label_missing", []string{"nop", "jsr missing"}, ErrLabelMissing("missing"), 2},
		{"equ_dup", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate, 2},
		{"equ_syntax", []string{".equ A"}, ErrEquateSyntax, 1},
		{"label_dup", []string{"a: nop", "a: nop"}, ErrLabelDuplicate, 2},
		{"org_syntax", []string{".org"}, ErrOrgSyntax, 1},
		{"org_range", []string{".org 0x10000"}, ErrOrgSyntax, 1},
		{"org_overlap", []string{"nop", ".org 0"}, ErrOrgOverlap, 2},
		{"org_overlap_tail", []string{".org 0x12", "nop", ".org 0x10", "jsr 0x4242"}, ErrOrgOverlap, 4},
		{"org_overlap_data", []string{".org 0x20", ".byte 1", ".org 0x1f", ".word 0x1234"}, ErrOrgOverlap, 4},
		{"overflow", []string{".org 0xffff", "jsr 0x1234"}, ErrImageOverflow, 2},
		{"data", []string{".byte"}, ErrDataMissing, 1},
		{"number", []string{"lda #zz!"}, ErrParseNumber("zz!"), 1},
		{"expression", []string{"lda #$(\"str\")"}, ErrParseExpression("\"str\""), 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("lda #$(1 +)"))
	assert.Error(err)
}

func TestAssemblerRun(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".org 0xfffc",
		"jsr $4242",
		".org 0x4242",
		"lda #$84",
	}

	prog := assemble(t, asm, program)

	mem := memory.New()
	for addr, data := range prog.Segments() {
		assert.NoError(mem.Load(int(addr), data))
	}

	cpu := NewCpu()
	cycles := 8
	assert.NoError(cpu.Execute(mem, &cycles))
	assert.Equal(0, cycles)
	assert.Equal(uint8(0x84), cpu.A)
	assert.True(cpu.P.Has(FLAG_N))
	assert.Equal(uint16(0x4244), cpu.PC)
}
