package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/memory"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	cpu := NewCpu()

	cycles := 0
	assert.NoError(cpu.push(mem, 0x12, &cycles))
	assert.Equal(-1, cycles)
	assert.Equal(uint8(0xfe), cpu.SP)
	assert.Equal(uint8(0x12), mem.Data[0x01ff])
	assert.Equal(1, cpu.StackDepth())
}

func TestStack_Pull(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	cpu := NewCpu()

	cycles := 0
	assert.NoError(cpu.push(mem, 0x12, &cycles))
	assert.NoError(cpu.push(mem, 0x34, &cycles))

	val, err := cpu.pull(mem, &cycles)
	assert.NoError(err)
	assert.Equal(uint8(0x34), val)

	val, err = cpu.pull(mem, &cycles)
	assert.NoError(err)
	assert.Equal(uint8(0x12), val)
	assert.Equal(-4, cycles)
	assert.Equal(0, cpu.StackDepth())
}

func TestStack_Word(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	cpu := NewCpu()

	cycles := 0
	assert.NoError(cpu.pushWord(mem, 0xabcd, &cycles))
	assert.Equal(-2, cycles)

	word, err := mem.ReadWord(0x01fe)
	assert.NoError(err)
	assert.Equal(uint16(0xabcd), word)

	word, err = cpu.pullWord(mem, &cycles)
	assert.NoError(err)
	assert.Equal(uint16(0xabcd), word)
	assert.Equal(-4, cycles)
	assert.Equal(STACK_RESET, cpu.SP)
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	cpu := NewCpu()
	cpu.SP = 0x00

	cycles := 0
	assert.NoError(cpu.pushWord(mem, 0x1234, &cycles))
	assert.Equal(uint8(0xfe), cpu.SP)
	assert.Equal(uint8(0x12), mem.Data[0x0100])
	assert.Equal(uint8(0x34), mem.Data[0x01ff])
	assert.Equal(uint8(0), mem.Data[0x0200])

	word, err := cpu.pullWord(mem, &cycles)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), word)
	assert.Equal(uint8(0x00), cpu.SP)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	cpu := NewCpu()

	val, ok := cpu.Peek(mem)
	assert.False(ok)
	assert.Equal(uint8(0), val)

	cycles := 0
	assert.NoError(cpu.push(mem, 0x77, &cycles))

	val, ok = cpu.Peek(mem)
	assert.True(ok)
	assert.Equal(uint8(0x77), val)
	assert.Equal(1, cpu.StackDepth())
	assert.Equal(-1, cycles)
}
