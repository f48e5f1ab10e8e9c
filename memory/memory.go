// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 0x10000 // Total addressable bytes.
	ZERO_PAGE   = 0x0000  // Base of the zero page.
	STACK_PAGE  = 0x0100  // Base of the hardware stack page.
	PAGE_SIZE   = 0x100   // Size of a single page.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"ZERO_PAGE":   fmt.Sprintf("0x%x", ZERO_PAGE),
	"STACK_PAGE":  fmt.Sprintf("0x%x", STACK_PAGE),
}

// Memory is the entire addressable memory of the processor.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// New creates a zero filled address space.
func New() *Memory {
	return &Memory{}
}

// Defines for the memory layout.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// check verifies that [addr, addr+size) lies within the address space.
func check(addr int, size int) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		return ErrAddress(addr)
	}
	if end := addr + size - 1; end >= MEMORY_SIZE {
		return ErrAddress(end)
	}
	return
}

// Reset zero fills the address space.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr int) (value uint8, err error) {
	err = check(addr, 1)
	if err != nil {
		return
	}

	value = mem.Data[addr]
	return
}

// Write stores a byte at addr.
func (mem *Memory) Write(addr int, value uint8) (err error) {
	err = check(addr, 1)
	if err != nil {
		return
	}

	mem.Data[addr] = value
	return
}

// ReadWord returns the little-endian word at addr.
func (mem *Memory) ReadWord(addr int) (value uint16, err error) {
	err = check(addr, 2)
	if err != nil {
		return
	}

	value = uint16(mem.Data[addr]) | (uint16(mem.Data[addr+1]) << 8)
	return
}

// WriteWord stores a little-endian word, low byte at addr.
// Nothing is written if either byte falls outside of the address space.
func (mem *Memory) WriteWord(addr int, value uint16) (err error) {
	err = check(addr, 2)
	if err != nil {
		return
	}

	mem.Data[addr] = uint8(value & 0xff)
	mem.Data[addr+1] = uint8(value >> 8)
	return
}

// Load copies an image into memory starting at addr.
func (mem *Memory) Load(addr int, data []byte) (err error) {
	if len(data) == 0 {
		return check(addr, 1)
	}

	err = check(addr, len(data))
	if err != nil {
		return
	}

	copy(mem.Data[addr:], data)
	return
}
