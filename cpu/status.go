package cpu

import (
	"strings"
)

// Status is the processor status register.
type Status uint8

// Processor status flags.
const (
	FLAG_C = Status(1 << iota) // Carry
	FLAG_Z                     // Zero result
	FLAG_I                     // IRQ disable
	FLAG_D                     // Decimal mode
	FLAG_B                     // BRK command
	FLAG_U                     // Unused
	FLAG_V                     // Overflow
	FLAG_N                     // Negative result
)

const _status_names = "NV-BDIZC"

// Has returns true if every bit of flag is set.
func (p Status) Has(flag Status) bool {
	return (p & flag) == flag
}

// Set sets or clears flag.
func (p *Status) Set(flag Status, on bool) {
	if on {
		*p |= flag
	} else {
		*p &^= flag
	}
}

// String returns the flags as "NV-BDIZC", lower case when clear.
func (p Status) String() string {
	var sb strings.Builder
	for n, c := range _status_names {
		flag := Status(0x80 >> n)
		switch {
		case c == '-':
			sb.WriteRune(c)
		case p.Has(flag):
			sb.WriteRune(c)
		default:
			sb.WriteRune(c + ('a' - 'A'))
		}
	}
	return sb.String()
}
