package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mos6502/memory"
)

// Memory is the address space as observed by the CPU.
type Memory interface {
	Read(addr int) (value uint8, err error)
	Write(addr int, value uint8) (err error)
}

var _ Memory = (*memory.Memory)(nil)

const (
	RESET_VECTOR = uint16(0xfffc) // Program counter after reset.
)

var _cpu_defines = map[string]string{
	"RESET_VECTOR": fmt.Sprintf("0x%x", RESET_VECTOR),
	"STACK_BASE":   fmt.Sprintf("0x%x", STACK_BASE),
	"STACK_RESET":  fmt.Sprintf("0x%x", STACK_RESET),
}

// Cpu is the simulation context for a 6502 family processor.
type Cpu struct {
	Verbose     bool            // Set to enable verbose logging.
	Strict      bool            // Set to halt on unsupported instructions.
	LegacyFlags bool            // Set to only ever set, never clear, Z and N on loads.
	Diagnostic  func(err error) // Receives non-fatal diagnostics; logs if nil.

	PC uint16 // Program counter.
	IP uint16 // Address of the instruction most recently started.
	SP uint8  // Stack pointer, offset into the stack page.
	A  uint8  // Accumulator.
	X  uint8  // X index register.
	Y  uint8  // Y index register.
	P  Status // Processor status flags.

	Ticks        int // Cycles charged since reset.
	Instructions int // Instructions started since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "sp", "a", "x", "y", "p", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.PC)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.SP)
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X", cpu.Y)
		case "p":
			strval = fmt.Sprintf("%02X %v", uint8(cpu.P), cpu.P)
		case "ticks":
			strval = fmt.Sprintf("%v", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Zeros A, X, Y and the status flags.
// - Sets the stack pointer to the top of the stack page.
// - Sets the program counter to the reset vector.
// - Zeros statistics counters.
//
// Memory is not touched; see memory.Memory.Reset.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.P = 0
	cpu.SP = STACK_RESET
	cpu.PC = RESET_VECTOR
	cpu.IP = RESET_VECTOR

	cpu.Ticks = 0
	cpu.Instructions = 0
}

// tick charges n cycles against the budget.
func (cpu *Cpu) tick(cycles *int, n int) {
	*cycles -= n
	cpu.Ticks += n
}

// FetchByte reads the byte at the program counter and advances it.
func (cpu *Cpu) FetchByte(mem Memory, cycles *int) (value uint8, err error) {
	value, err = mem.Read(int(cpu.PC))
	if err != nil {
		return
	}

	cpu.PC++
	cpu.tick(cycles, 1)
	return
}

// FetchWord reads the little-endian word at the program counter and
// advances past it.
func (cpu *Cpu) FetchWord(mem Memory, cycles *int) (value uint16, err error) {
	lo, err := cpu.FetchByte(mem, cycles)
	if err != nil {
		return
	}
	hi, err := cpu.FetchByte(mem, cycles)
	if err != nil {
		return
	}

	value = (uint16(hi) << 8) | uint16(lo)
	return
}

// ReadByte reads a data byte from an arbitrary address.
func (cpu *Cpu) ReadByte(mem Memory, addr uint16, cycles *int) (value uint8, err error) {
	value, err = mem.Read(int(addr))
	if err != nil {
		return
	}

	cpu.tick(cycles, 1)
	return
}

// WriteByte writes a data byte to an arbitrary address.
func (cpu *Cpu) WriteByte(mem Memory, addr uint16, value uint8, cycles *int) (err error) {
	err = mem.Write(int(addr), value)
	if err != nil {
		return
	}

	cpu.tick(cycles, 1)
	return
}

// setZN updates the Zero and Negative flags from a loaded value.
func (cpu *Cpu) setZN(value uint8) {
	if cpu.LegacyFlags {
		if value == 0 {
			cpu.P |= FLAG_Z
		}
		if (value & 0x80) != 0 {
			cpu.P |= FLAG_N
		}
		return
	}

	cpu.P.Set(FLAG_Z, value == 0)
	cpu.P.Set(FLAG_N, (value&0x80) != 0)
}

// diagnose reports a non-fatal condition.
func (cpu *Cpu) diagnose(err error) {
	if cpu.Diagnostic != nil {
		cpu.Diagnostic(err)
		return
	}

	log.Printf("cpu: %v", err)
}

// Execute fetches and executes instructions until the cycle budget is
// zero or negative. The budget is only checked between instructions.
func (cpu *Cpu) Execute(mem Memory, cycles *int) (err error) {
	for *cycles > 0 {
		err = cpu.Step(mem, cycles)
		if err != nil {
			return
		}
	}

	return
}

// Step fetches and executes a single instruction, charging its cycles.
func (cpu *Cpu) Step(mem Memory, cycles *int) (err error) {
	ip := cpu.PC
	cpu.IP = ip

	value, err := cpu.FetchByte(mem, cycles)
	if err != nil {
		err = errors.Join(ErrFetch, err)
		return
	}

	op := Opcode(value)
	cpu.Instructions++

	if cpu.Verbose {
		log.Printf("cpu: %04x: %v", ip, op)
	}

	switch op {
	case OP_LDA_IMM:
		value, err = cpu.FetchByte(mem, cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		cpu.A = value
		cpu.setZN(cpu.A)
	case OP_LDA_ZP:
		var zp uint8
		zp, err = cpu.FetchByte(mem, cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		value, err = cpu.ReadByte(mem, uint16(zp), cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		cpu.A = value
		cpu.setZN(cpu.A)
	case OP_LDA_ZPX:
		var zp uint8
		zp, err = cpu.FetchByte(mem, cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		// Index addition stays in page zero.
		zp += cpu.X
		cpu.tick(cycles, 1)
		value, err = cpu.ReadByte(mem, uint16(zp), cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		cpu.A = value
		cpu.setZN(cpu.A)
	case OP_JSR:
		var target uint16
		target, err = cpu.FetchWord(mem, cycles)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		err = cpu.pushWord(mem, cpu.PC-1, cycles)
		if err != nil {
			err = errors.Join(ErrStack, err)
			return
		}
		cpu.PC = target
		cpu.tick(cycles, 1)
	case OP_RTS:
		var ret uint16
		ret, err = cpu.pullWord(mem, cycles)
		if err != nil {
			err = errors.Join(ErrStack, err)
			return
		}
		cpu.PC = ret + 1
		// Dummy read, stack pointer increment, program counter increment.
		cpu.tick(cycles, 3)
	case OP_NOP:
		cpu.tick(cycles, 1)
	default:
		err = ErrOpcode{Opcode: value, Address: ip}
		if cpu.Strict {
			return
		}
		cpu.diagnose(err)
		err = nil
	}

	return
}
