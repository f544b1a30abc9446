package cpu

// Flag bit positions within the F register.
const (
	FlagC uint8 = 0x01 // Carry
	FlagN uint8 = 0x02 // Add/Subtract
	FlagP uint8 = 0x04 // Parity (bitwise ops) / Overflow (arithmetic ops) — same bit
	FlagV       = FlagP
	FlagX uint8 = 0x08 // unused-1 (bit 3)
	FlagH uint8 = 0x10 // Half-carry
	FlagY uint8 = 0x20 // unused-2 (bit 5)
	FlagZ uint8 = 0x40 // Zero
	FlagS uint8 = 0x80 // Sign
)

// Precomputed flag tables, the standard trick every Z80 core (including the
// one this was ported from) uses to avoid recomputing S/Z/5/3/parity per op.
var (
	// sz53Table holds the S, Z, 5, 3 bits for each possible byte result.
	sz53Table [256]uint8
	// sz53pTable is sz53Table with the parity bit folded in.
	sz53pTable [256]uint8
	// parityTable holds the parity flag for each possible byte value.
	parityTable [256]uint8

	// halfcarrySubTable/overflowSubTable are indexed by a 3-bit lookup built
	// from one bit of each of the two operands and the result: bit 3 (or bit
	// 11, for 16-bit ops) for the half-carry table, bit 7 (or bit 15) for the
	// overflow table. The addition family computes the same bits via internal/alu
	// instead (see arith.go); subtraction keeps the table, since composing
	// it from alu's two's-complement-addition primitives has a proven
	// overflow-flag bug at operand 0x80 (see DESIGN.md).
	halfcarrySubTable = [8]uint8{0, 0, FlagH, 0, FlagH, 0, FlagH, FlagH}
	overflowSubTable  = [8]uint8{0, FlagV, 0, 0, 0, 0, FlagV, 0}
)

func init() {
	for i := 0; i < 256; i++ {
		sz53Table[i] = uint8(i) & (FlagX | FlagY | FlagS)

		v := uint8(i)
		parity := uint8(0)
		for b := 0; b < 8; b++ {
			parity ^= v & 1
			v >>= 1
		}
		if parity == 0 {
			parityTable[i] = FlagP
		}
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= FlagZ
	sz53pTable[0] |= FlagZ
}

// Flag identifies one named bit of the F register, for Get/Set/GetBit and
// the generic allowed-set application helper ApplySet. The instruction
// handlers do not call these; they write F directly.
type Flag uint8

const (
	FC Flag = Flag(FlagC)
	FN Flag = Flag(FlagN)
	FP Flag = Flag(FlagP)
	FH Flag = Flag(FlagH)
	FZ Flag = Flag(FlagZ)
	FS Flag = Flag(FlagS)
)

// Get reports whether flag is set in f.
func Get(f uint8, flag Flag) bool {
	return f&uint8(flag) != 0
}

// GetBit returns 1 if flag is set in f, else 0.
func GetBit(f uint8, flag Flag) uint8 {
	if f&uint8(flag) != 0 {
		return 1
	}
	return 0
}

// Set returns f with flag set to value.
func Set(f uint8, flag Flag, value bool) uint8 {
	if value {
		return f | uint8(flag)
	}
	return f &^ uint8(flag)
}

// ApplySet applies values restricted to the allowed set to f, leaving every
// other bit of f unchanged. This is the Go shape of the spec's "partial
// mapping {flag -> bool} restricted to a caller-supplied allowed set".
func ApplySet(f uint8, allowed []Flag, values map[Flag]bool) uint8 {
	for _, flag := range allowed {
		if v, ok := values[flag]; ok {
			f = Set(f, flag, v)
		}
	}
	return f
}
