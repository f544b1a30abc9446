package opcode

// Prefix identifies which decode table a leading byte selects.
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixCB
	PrefixED
	PrefixDD
	PrefixFD
)

var (
	unprefixedTable [256]OpCode
	cbTable         [256]OpCode
	edTable         [256]OpCode
)

func init() {
	for i := range unprefixedTable {
		unprefixedTable[i] = UNKNOWN
	}
	for i := range cbTable {
		cbTable[i] = UNKNOWN
	}
	for i := range edTable {
		edTable[i] = UNKNOWN
	}
	for op := OpCode(0); op < OpCodeCount; op++ {
		if op == UNKNOWN {
			// UNKNOWN is a synthetic fallback mnemonic, not a real decode
			// target: every table slot already defaults to it above, and
			// its placeholder byte (0x00) collides with NOP's real encoding.
			continue
		}
		info := Catalog[op]
		switch len(info.Bytes) {
		case 1:
			unprefixedTable[info.Bytes[0]] = op
		case 2:
			switch info.Bytes[0] {
			case 0xCB:
				cbTable[info.Bytes[1]] = op
			case 0xED:
				edTable[info.Bytes[1]] = op
			}
		}
	}
}

// LeadByte classifies the first byte of an instruction: either a prefix
// byte (CB, ED, DD, FD) to be followed by a second decode step, or the
// opcode itself.
func LeadByte(b uint8) (prefix Prefix, op OpCode) {
	switch b {
	case 0xCB:
		return PrefixCB, UNKNOWN
	case 0xED:
		return PrefixED, UNKNOWN
	case 0xDD:
		return PrefixDD, UNKNOWN
	case 0xFD:
		return PrefixFD, UNKNOWN
	}
	return PrefixNone, unprefixedTable[b]
}

// DecodeCB resolves the byte following a CB prefix.
func DecodeCB(b uint8) OpCode { return cbTable[b] }

// DecodeED resolves the byte following an ED prefix. Any byte this core
// does not implement decodes to UNKNOWN, executed as a 2-byte NOP — real
// silicon has a handful of genuine ED NOPs too (ED 00-3F, 80-9F, A4-FF
// outside the defined block group instructions), so this is a coarsening,
// not a fabrication.
func DecodeED(b uint8) OpCode { return edTable[b] }
