package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(printer)

	assert.Equal("opcode 0x20", From("opcode 0x%02x", 0x20))
	assert.Equal("plain text", From("plain text"))
}
