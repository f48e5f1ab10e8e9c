// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mos6502/memory"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// mnemonicMap maps instruction names to mnemonics.
var mnemonicMap = map[string]Mnemonic{
	MNEMONIC_JSR.String(): MNEMONIC_JSR,
	MNEMONIC_LDA.String(): MNEMONIC_LDA,
	MNEMONIC_NOP.String(): MNEMONIC_NOP,
	MNEMONIC_RTS.String(): MNEMONIC_RTS,
}

// Assembler is a single pass assembler for the supported 6502 subset.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	org int // Address of the next generated byte.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word, or the label it refers to
// if that label is not yet known.
func (asm *Assembler) valueOf(word string) (value int, label string, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	if addr, ok := asm.Label[word]; ok {
		value = addr
		return
	}

	number := word
	if strings.HasPrefix(number, "$") {
		number = "0x" + number[1:]
	}

	v64, perr := strconv.ParseInt(number, 0, 32)
	if perr == nil {
		value = int(v64)
		return
	}

	if reIdentifier.MatchString(word) {
		label = word
		return
	}

	err = ErrParseNumber(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		v, label, verr := asm.valueOf(key)
		if verr != nil || len(label) != 0 {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands character literals, expressions, equates and
// labels, returning the remaining words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reIdentifier.MatchString(label) {
			err = ErrParseNumber(label)
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.org
		words = words[1:]
	}

	return
}

// operand resolves a value to bytes, or records a link to resolve later.
func (asm *Assembler) operand(st *Statement, word string, size int) (err error) {
	value, label, err := asm.valueOf(word)
	if err != nil {
		return
	}

	offset := len(st.Bytes)
	if len(label) != 0 {
		st.Links = append(st.Links, Link{Offset: offset, Size: size, Label: label})
		value = 0
	}

	return putValue(st, offset, size, value)
}

// putValue stores a little-endian value of size bytes at offset,
// extending the statement as needed.
func putValue(st *Statement, offset int, size int, value int) (err error) {
	limit := 1 << (8 * size)
	if value < -(limit/2) || value >= limit {
		err = ErrOperandRange
		return
	}

	for len(st.Bytes) < offset+size {
		st.Bytes = append(st.Bytes, 0)
	}
	for n := range size {
		st.Bytes[offset+n] = uint8(value >> (8 * n))
	}

	return
}

// parseMode determines the addressing mode and operand word.
func (asm *Assembler) parseMode(mnemonic Mnemonic, args []string) (mode AddressMode, word string, err error) {
	text := strings.Join(args, "")

	switch {
	case len(text) == 0:
		mode = MODE_IMPLIED
	case strings.HasPrefix(text, "#"):
		mode = MODE_IMMEDIATE
		word = text[1:]
	case strings.HasSuffix(strings.ToLower(text), ",x"):
		mode = MODE_ZERO_PAGE_X
		word = text[:len(text)-2]
	default:
		word = text
		_, has_zp := Encode(mnemonic, MODE_ZERO_PAGE)
		_, has_abs := Encode(mnemonic, MODE_ABSOLUTE)
		mode = MODE_ZERO_PAGE
		if has_abs {
			value, label, verr := asm.valueOf(word)
			if !has_zp || (verr == nil && len(label) == 0 && value > 0xff) {
				mode = MODE_ABSOLUTE
			}
		}
	}

	if len(word) == 0 && mode != MODE_IMPLIED {
		err = ErrOpcodeValueMissing
	}

	return
}

// emit appends a statement at the current address.
func (asm *Assembler) emit(st Statement) (err error) {
	if asm.org+len(st.Bytes) > memory.MEMORY_SIZE {
		err = ErrImageOverflow
		return
	}

	if asm.overlaps(asm.org, len(st.Bytes)) {
		err = ErrOrgOverlap
		return
	}

	asm.org += len(st.Bytes)
	asm.Statement = append(asm.Statement, st)

	return
}

// overlaps returns true if [addr, addr+size) intersects an already
// generated statement.
func (asm *Assembler) overlaps(addr int, size int) bool {
	for _, st := range asm.Statement {
		if addr < st.Address+len(st.Bytes) && st.Address < addr+size {
			return true
		}
	}
	return false
}

// parseWords generates a statement from the words of a line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	st := Statement{
		LineNo:  lineno,
		Address: asm.org,
		Words:   words,
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value int
		var label string
		value, label, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if len(label) != 0 || value < 0 || value >= memory.MEMORY_SIZE {
			err = ErrOrgSyntax
			return
		}
		if asm.overlaps(value, 1) {
			err = ErrOrgOverlap
			return
		}
		asm.org = value
		return
	case ".byte", ".word":
		size := 1
		if words[0] == ".word" {
			size = 2
		}
		if len(words) < 2 {
			err = ErrDataMissing
			return
		}
		for _, word := range words[1:] {
			err = asm.operand(&st, word, size)
			if err != nil {
				return
			}
		}
		return asm.emit(st)
	}

	mnemonic, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if _, implied := Encode(mnemonic, MODE_IMPLIED); implied && len(words) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	mode, word, err := asm.parseMode(mnemonic, words[1:])
	if err != nil {
		return
	}

	op, ok := Encode(mnemonic, mode)
	if !ok {
		err = ErrModeInvalid
		return
	}

	st.Bytes = append(st.Bytes, uint8(op))
	if size := mode.OperandSize(); size > 0 {
		err = asm.operand(&st, word, size)
		if err != nil {
			return
		}
	}

	return asm.emit(st)
}

// link resolves the label references of every statement.
func (asm *Assembler) link() (err error) {
	for n := range asm.Statement {
		st := &asm.Statement[n]
		for _, link := range st.Links {
			addr, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
			} else {
				err = putValue(st, link.Offset, link.Size, addr)
			}
			if err != nil {
				err = &ErrSyntax{LineNo: st.LineNo, Line: strings.Join(st.Words, " "), Err: err}
				return
			}
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	asm.Label = make(map[string]int, 16)
	asm.Statement = asm.Statement[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.org = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}
