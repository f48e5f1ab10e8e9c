package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert := assert.New(t)

	var p Status
	assert.Equal("nv-bdizc", p.String())

	p.Set(FLAG_N, true)
	p.Set(FLAG_Z, true)
	assert.Equal(Status(0x82), p)
	assert.True(p.Has(FLAG_N))
	assert.True(p.Has(FLAG_Z))
	assert.False(p.Has(FLAG_C))
	assert.False(p.Has(FLAG_N | FLAG_C))
	assert.Equal("Nv-bdiZc", p.String())

	p.Set(FLAG_Z, false)
	assert.Equal(FLAG_N, p)

	p = 0xff
	assert.Equal("NV-BDIZC", p.String())
}
