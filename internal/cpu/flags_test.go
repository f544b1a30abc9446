package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSZ53TableZeroAndSign(t *testing.T) {
	assert.NotZero(t, sz53Table[0]&FlagZ)
	assert.NotZero(t, sz53Table[0x80]&FlagS)
	assert.Zero(t, sz53Table[0x01]&FlagZ)
}

func TestParityTableMatchesEvenPopcount(t *testing.T) {
	assert.NotZero(t, parityTable[0x00]&FlagP) // 0 set bits: even
	assert.Zero(t, parityTable[0x01]&FlagP)    // 1 set bit: odd
	assert.NotZero(t, parityTable[0xFF]&FlagP) // 8 set bits: even
	assert.NotZero(t, parityTable[0x03]&FlagP) // 2 set bits: even
}

func TestSetAndGet(t *testing.T) {
	f := uint8(0)
	f = Set(f, FC, true)
	assert.True(t, Get(f, FC))
	assert.False(t, Get(f, FZ))
	f = Set(f, FC, false)
	assert.False(t, Get(f, FC))
}

func TestGetBit(t *testing.T) {
	assert.Equal(t, uint8(1), GetBit(FlagZ, FZ))
	assert.Equal(t, uint8(0), GetBit(0, FZ))
}

func TestApplySetRestrictedToAllowed(t *testing.T) {
	f := uint8(FlagC | FlagH)
	allowed := []Flag{FZ, FS}
	f = ApplySet(f, allowed, map[Flag]bool{FZ: true, FN: true})
	assert.True(t, Get(f, FZ))
	assert.True(t, Get(f, FC)) // untouched
	assert.True(t, Get(f, FH)) // untouched
	assert.False(t, Get(f, FN)) // not in allowed set, so never applied
}
