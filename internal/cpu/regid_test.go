package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead8Write8AllRegIDs(t *testing.T) {
	var s State
	cases := []struct {
		id  RegID
		set func(v uint8)
		get func() uint8
	}{
		{RegA, func(v uint8) { s.Main.A = v }, func() uint8 { return s.Main.A }},
		{RegF, func(v uint8) { s.Main.F = v }, func() uint8 { return s.Main.F }},
		{RegB, func(v uint8) { s.Main.B = v }, func() uint8 { return s.Main.B }},
		{RegC, func(v uint8) { s.Main.C = v }, func() uint8 { return s.Main.C }},
		{RegD, func(v uint8) { s.Main.D = v }, func() uint8 { return s.Main.D }},
		{RegE, func(v uint8) { s.Main.E = v }, func() uint8 { return s.Main.E }},
		{RegH, func(v uint8) { s.Main.H = v }, func() uint8 { return s.Main.H }},
		{RegL, func(v uint8) { s.Main.L = v }, func() uint8 { return s.Main.L }},
	}
	for _, tc := range cases {
		s.Write8(tc.id, 0x5A)
		assert.Equal(t, uint8(0x5A), tc.get(), "RegID %d", tc.id)
		tc.set(0xA5)
		assert.Equal(t, uint8(0xA5), s.Read8(tc.id), "RegID %d", tc.id)
	}
}

func TestRead8Write8PanicsOnInvalidRegID(t *testing.T) {
	var s State
	assert.Panics(t, func() { s.Read8(RegID(99)) })
	assert.Panics(t, func() { s.Write8(RegID(99), 0) })
}

func TestRead16Write16AllPairIDs(t *testing.T) {
	var s State
	pairs := []PairID{PairAF, PairBC, PairDE, PairHL, PairSP, PairPC}
	for i, id := range pairs {
		want := uint16(0x1000 + i)
		s.Write16(id, want)
		got := s.Read16(id)
		if id == PairAF {
			// F is stored as a plain byte, and SetAF/AF() themselves are
			// exercised elsewhere; here we only check the high (A) byte is
			// preserved exactly.
			assert.Equal(t, uint8(want>>8), uint8(got>>8), "PairID %d high byte", id)
			continue
		}
		assert.Equal(t, want, got, "PairID %d", id)
	}
}

func TestRead16Write16PanicsOnInvalidPairID(t *testing.T) {
	var s State
	assert.Panics(t, func() { s.Read16(PairID(99)) })
	assert.Panics(t, func() { s.Write16(PairID(99), 0) })
}
