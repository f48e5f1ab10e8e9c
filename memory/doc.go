// Package memory implements the flat 64 KiB address space observed by
// the 6502 processor.
//
// Memory owns no behavior beyond indexed reads and writes. Cycle costs
// for an access are charged by the processor, not here.
package memory
