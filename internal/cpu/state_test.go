package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairAccessors(t *testing.T) {
	var r Registers
	r.SetBC(0x1234)
	assert.Equal(t, uint8(0x12), r.B)
	assert.Equal(t, uint8(0x34), r.C)
	assert.Equal(t, uint16(0x1234), r.BC())
}

func TestExchangeAF(t *testing.T) {
	var s State
	s.Main.A, s.Main.F = 0x11, 0x22
	s.Shadow.A, s.Shadow.F = 0x33, 0x44
	s.ExchangeAF()
	assert.Equal(t, uint8(0x33), s.Main.A)
	assert.Equal(t, uint8(0x44), s.Main.F)
	assert.Equal(t, uint8(0x11), s.Shadow.A)
	assert.Equal(t, uint8(0x22), s.Shadow.F)
}

func TestExchangeX(t *testing.T) {
	var s State
	s.Main.SetBC(0x1111)
	s.Main.SetDE(0x2222)
	s.Main.SetHL(0x3333)
	s.Shadow.SetBC(0xAAAA)
	s.Shadow.SetDE(0xBBBB)
	s.Shadow.SetHL(0xCCCC)
	s.ExchangeX()
	assert.Equal(t, uint16(0xAAAA), s.Main.BC())
	assert.Equal(t, uint16(0xBBBB), s.Main.DE())
	assert.Equal(t, uint16(0xCCCC), s.Main.HL())
	assert.Equal(t, uint16(0x1111), s.Shadow.BC())
}

func TestExchangeDEHL(t *testing.T) {
	var s State
	s.Main.SetDE(0x1234)
	s.Main.SetHL(0x5678)
	s.ExchangeDEHL()
	assert.Equal(t, uint16(0x5678), s.Main.DE())
	assert.Equal(t, uint16(0x1234), s.Main.HL())
}

func TestHaltUnhalt(t *testing.T) {
	var s State
	assert.False(t, s.Halted())
	s.Halt()
	assert.True(t, s.Halted())
	s.Unhalt()
	assert.False(t, s.Halted())
}
