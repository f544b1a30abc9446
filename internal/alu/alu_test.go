package alu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOctetsWrapsModulo256(t *testing.T) {
	for a := 0; a < 256; a++ {
		r := AddOctets(uint8(a), 1)
		assert.Equal(t, uint8((a+1)%256), r.Value8())
		assert.Equal(t, a == 0xFF, r.Carry)
		assert.Equal(t, a&0x0F == 0x0F, r.HalfCarry)
		assert.Equal(t, a == 0x7F, r.Overflow)
	}
}

func TestAddWordsWrapsModulo65536(t *testing.T) {
	boundaries := []struct {
		a                            uint16
		wantCarry, wantHalf, wantOvf bool
	}{
		{0xFFFF, true, true, false},
		{0x0FFF, false, true, false},
		{0x7FFF, false, true, true},
		{0x0000, false, false, false},
	}
	for _, tc := range boundaries {
		r := AddWords(tc.a, 1)
		assert.Equal(t, uint16((uint32(tc.a)+1)%65536), r.Value)
		assert.Equal(t, tc.wantCarry, r.Carry, "carry for %04X+1", tc.a)
		assert.Equal(t, tc.wantHalf, r.HalfCarry, "half-carry for %04X+1", tc.a)
		assert.Equal(t, tc.wantOvf, r.Overflow, "overflow for %04X+1", tc.a)
	}
}

func TestAddOctetsCommutativeSum(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for b := 0; b < 256; b += 23 {
			r := AddOctets(uint8(a), uint8(b))
			assert.Equal(t, uint8((a+b)%256), r.Value8())
		}
	}
}

func TestParityMatchesPopcountParity(t *testing.T) {
	for v := 0; v < 256; v++ {
		popcount := 0
		for b := uint8(v); b != 0; b &= b - 1 {
			popcount++
		}
		assert.Equal(t, popcount%2 == 0, Parity(uint8(v)), "value %02X", v)
	}
}

func TestGetOctetsGetWordRoundTrip(t *testing.T) {
	for h := 0; h < 256; h += 7 {
		for l := 0; l < 256; l += 11 {
			word := GetWord(uint8(h), uint8(l))
			gotH, gotL := GetOctets(word)
			assert.Equal(t, uint8(h), gotH)
			assert.Equal(t, uint8(l), gotL)
		}
	}
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, uint16(0x007F), SignExtend(0x7F))
	assert.Equal(t, uint16(0xFF80), SignExtend(0x80))
	assert.Equal(t, uint16(0xFFFF), SignExtend(0xFF))
}

func TestNegate(t *testing.T) {
	assert.Equal(t, uint8(0), Negate(0))
	assert.Equal(t, uint8(0xFF), Negate(1))
	assert.Equal(t, uint8(1), Negate(0xFF))
}

func TestAddOctetsCarryMatchesAddOctetsWhenCarryInClear(t *testing.T) {
	for a := 0; a < 256; a += 3 {
		for b := 0; b < 256; b += 5 {
			want := AddOctets(uint8(a), uint8(b))
			got := AddOctetsCarry(uint8(a), uint8(b), false)
			assert.Equal(t, want, got, "a=%02X b=%02X", a, b)
		}
	}
}

// TestAddOctetsCarryOverflowIsNotTwoChainedAddsOrdTogether documents why ADC
// needs its own primitive instead of composing two AddOctets calls. 0x81
// (-127) and 0xFE (-2) are both negative; their sum alone is -129, already
// out of signed 8-bit range, but the extra +1 carry-in brings the true
// three-term sum back to -128, which fits. Two chained AddOctets calls
// (first a+b, then +carry) would OR their Overflow bits together and report
// a false positive, since the first call alone already overflowed; folding
// the carry-in into a single pass settles it correctly.
func TestAddOctetsCarryOverflowIsNotTwoChainedAddsOrdTogether(t *testing.T) {
	r := AddOctetsCarry(0x81, 0xFE, true)
	assert.Equal(t, uint8(0x80), r.Value8())
	assert.True(t, r.Carry)
	assert.False(t, r.Overflow, "signed sum -129+1=-128 is back in range")
}

func TestAddWordsCarryMatchesAddWordsWhenCarryInClear(t *testing.T) {
	probe := []uint16{0x0000, 0x0001, 0x00FF, 0x0FFF, 0x7FFF, 0x8000, 0xFFFE, 0xFFFF}
	for _, a := range probe {
		for _, b := range probe {
			want := AddWords(a, b)
			got := AddWordsCarry(a, b, false)
			assert.Equal(t, want, got, "a=%04X b=%04X", a, b)
		}
	}
}

func TestAddOctetsCarryPropagatesIntoHalfCarryAndCarry(t *testing.T) {
	// 0x0F + 0x00 + carry-in=1 must ripple the carry-in through the low
	// nibble into half-carry, the same way a real ADC does.
	r := AddOctetsCarry(0x0F, 0x00, true)
	assert.Equal(t, uint8(0x10), r.Value8())
	assert.True(t, r.HalfCarry)
	assert.False(t, r.Carry)

	r = AddOctetsCarry(0xFF, 0x00, true)
	assert.Equal(t, uint8(0x00), r.Value8())
	assert.True(t, r.HalfCarry)
	assert.True(t, r.Carry)
}
