package cpu

import (
	"cmp"
	"iter"
	"slices"
)

// Link is an operand that refers to a label resolved after parsing.
type Link struct {
	Offset int    // Byte offset of the operand within the statement.
	Size   int    // Operand width in bytes, 1 or 2.
	Label  string // Label to resolve.
}

// Statement is a line of assembled code with its source location and
// generated bytes.
type Statement struct {
	LineNo  int
	Address int
	Words   []string
	Bytes   []byte
	Links   []Link
}

// Program is an assembled memory image.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if int(addr) >= st.Address && int(addr) < st.Address+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr) - st.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the image.
func (prog *Program) Size() (size int) {
	for _, st := range prog.Statements {
		size += len(st.Bytes)
	}
	return
}

// Segments returns the image as runs of contiguous bytes, in address order.
func (prog *Program) Segments() iter.Seq2[uint16, []byte] {
	return func(yield func(addr uint16, data []byte) bool) {
		sts := slices.Clone(prog.Statements)
		slices.SortStableFunc(sts, func(a, b Statement) int {
			return cmp.Compare(a.Address, b.Address)
		})

		var base int
		var data []byte
		for _, st := range sts {
			if len(st.Bytes) == 0 {
				continue
			}
			if len(data) > 0 && base+len(data) != st.Address {
				if !yield(uint16(base), data) {
					return
				}
				data = nil
			}
			if len(data) == 0 {
				base = st.Address
			}
			data = append(data, st.Bytes...)
		}

		if len(data) > 0 {
			yield(uint16(base), data)
		}
	}
}
