// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/mos6502/cpu"
	"github.com/ezrec/mos6502/internal"
	"github.com/ezrec/mos6502/memory"
)

const (
	CLOCK_HZ = 1_000_000 // Typical MOS 6502 clock frequency.
)

var _emulator_defines = map[string]string{
	"CLOCK_HZ": fmt.Sprintf("%v", CLOCK_HZ),
}

// Emulator state. CPU + memory + the program image loaded on reset.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Address space borrowed by the CPU.
	Program  *cpu.Program   // Reference to the currently loaded program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Memory:  memory.New(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
	)
}

// Assemble parses a program with the emulator defines available as
// equates, and makes it the program loaded on reset.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	emu.Program = &cpu.Program{}

	return
}

// Reset zero fills memory, loads the program image, then resets the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Memory.Reset()

	for addr, data := range emu.Program.Segments() {
		if emu.Verbose {
			log.Printf("emulator: load %d bytes at 0x%04x", len(data), addr)
		}
		err = emu.Memory.Load(int(addr), data)
		if err != nil {
			return
		}
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Elapsed returns the wall-clock time the ticks since reset would take
// on real hardware.
func (emu *Emulator) Elapsed() time.Duration {
	return time.Duration(emu.Cpu.Ticks) * (time.Second / CLOCK_HZ)
}

// LineNo returns the source line number for the instruction at the
// program counter.
func (emu *Emulator) LineNo() int {
	return emu.lineAt(emu.Cpu.PC)
}

// Statement returns the source statement at the program counter, if any.
func (emu *Emulator) Statement() *cpu.Statement {
	return emu.Program.Debug(emu.Cpu.PC).Statement
}

func (emu *Emulator) lineAt(pc uint16) int {
	dbg := emu.Program.Debug(pc)
	if dbg.Statement == nil {
		return 0
	}
	return dbg.LineNo
}

// Step executes a single instruction, returning the cycles it spent.
func (emu *Emulator) Step() (spent int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	var cycles int
	err = emu.Cpu.Step(emu.Memory, &cycles)
	spent = -cycles
	if err != nil {
		err = emu.runtimeError(err)
	}

	return
}

// Run executes instructions until the cycle budget is exhausted,
// returning what is left of it. A started instruction always completes,
// so remaining may be negative.
func (emu *Emulator) Run(budget int) (remaining int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	remaining = budget
	err = emu.Cpu.Execute(emu.Memory, &remaining)
	if err != nil {
		err = emu.runtimeError(err)
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d cycles run, %d remaining", budget-remaining, remaining)
	}

	return
}

// runtimeError locates err at the instruction that raised it.
func (emu *Emulator) runtimeError(err error) error {
	ip := emu.Cpu.IP
	return &ErrRuntime{LineNo: emu.lineAt(ip), PC: ip, Err: err}
}
