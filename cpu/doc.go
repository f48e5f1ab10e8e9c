// Package cpu implements the processor and assembler for a MOS 6502 family
// execution core.
//
// The processor holds the program counter, stack pointer, accumulator, the
// X and Y index registers and the status flags. It borrows a Memory for
// every operation and charges each bus access and internal step against a
// caller supplied cycle budget. Execute drains the budget one instruction at
// a time; an instruction that starts with budget left always completes, so
// the budget may end negative.
//
// The assembler builds program images for the supported instruction subset,
// supporting labels, equates, data directives, and compile-time expression
// evaluation.
package cpu
