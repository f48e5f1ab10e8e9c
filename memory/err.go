package memory

import (
	"errors"

	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrBounds = errors.New(f("address out of bounds"))
)

// ErrAddress reports an access outside of the address space.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%04x out of bounds", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	if err == ErrBounds {
		return true
	}
	_, ok = err.(ErrAddress)
	return
}

func (ea ErrAddress) Unwrap() error {
	return ErrBounds
}
