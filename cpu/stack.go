package cpu

import (
	"github.com/ezrec/mos6502/memory"
)

const (
	STACK_BASE  = uint16(memory.STACK_PAGE) // Stack page base address.
	STACK_RESET = uint8(0xff)               // Stack pointer after reset.
)

// stackAddress returns the absolute address of a stack pointer offset.
func stackAddress(sp uint8) uint16 {
	return STACK_BASE | uint16(sp)
}

// push stores a byte at the stack pointer, then moves it down.
func (cpu *Cpu) push(mem Memory, value uint8, cycles *int) (err error) {
	err = cpu.WriteByte(mem, stackAddress(cpu.SP), value, cycles)
	if err != nil {
		return
	}
	cpu.SP--
	return
}

// pull moves the stack pointer up, then loads the byte it addresses.
func (cpu *Cpu) pull(mem Memory, cycles *int) (value uint8, err error) {
	sp := cpu.SP + 1
	value, err = cpu.ReadByte(mem, stackAddress(sp), cycles)
	if err != nil {
		return
	}
	cpu.SP = sp
	return
}

// pushWord pushes the high byte first, leaving the word little-endian in
// memory just above the stack pointer.
func (cpu *Cpu) pushWord(mem Memory, value uint16, cycles *int) (err error) {
	err = cpu.push(mem, uint8(value>>8), cycles)
	if err != nil {
		return
	}
	err = cpu.push(mem, uint8(value&0xff), cycles)
	return
}

// pullWord reverses pushWord.
func (cpu *Cpu) pullWord(mem Memory, cycles *int) (value uint16, err error) {
	lo, err := cpu.pull(mem, cycles)
	if err != nil {
		return
	}
	hi, err := cpu.pull(mem, cycles)
	if err != nil {
		return
	}
	value = (uint16(hi) << 8) | uint16(lo)
	return
}

// StackDepth returns the number of bytes pushed since reset.
func (cpu *Cpu) StackDepth() int {
	return int(STACK_RESET - cpu.SP)
}

// Peek returns the byte on top of the stack without charging any cycles.
func (cpu *Cpu) Peek(mem Memory) (value uint8, ok bool) {
	if cpu.StackDepth() == 0 {
		return
	}

	value, err := mem.Read(int(stackAddress(cpu.SP + 1)))
	ok = err == nil
	return
}
