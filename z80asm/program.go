// Package z80asm is a minimal byte-level assembler for building Z80
// programs to feed into package z80. Callers name an opcode; its encoding
// bytes come from internal/opcode's Catalog, and this package only
// concerns itself with correctly laying out the result in memory order.
package z80asm

import "github.com/retrocore/z80vm/internal/opcode"

// Program accumulates a flat byte image in emission order.
type Program struct {
	bin []byte
}

// New returns an empty Program.
func New() *Program {
	return &Program{}
}

// Raw returns the accumulated byte image. The returned slice aliases the
// Program's internal buffer; callers must not mutate it.
func (p *Program) Raw() []byte {
	return p.bin
}

// Len reports the number of bytes emitted so far.
func (p *Program) Len() int {
	return len(p.bin)
}

// Add appends op's encoding (one byte, or two for a CB/ED-prefixed
// opcode), for a no-operand instruction such as NOP or HALT.
func (p *Program) Add(op opcode.OpCode) *Program {
	p.bin = append(p.bin, opcode.Catalog[op].Bytes...)
	return p
}

// AddParam appends op's encoding followed by a single immediate byte, for
// instructions like LD A, n or the 8-bit ALU-immediate family.
func (p *Program) AddParam(op opcode.OpCode, param uint8) *Program {
	p.bin = append(p.bin, opcode.Catalog[op].Bytes...)
	p.bin = append(p.bin, param)
	return p
}

// AddParamWord appends op's encoding followed by a little-endian 16-bit
// immediate, for instructions like LD HL, nn or JP nn.
func (p *Program) AddParamWord(op opcode.OpCode, param uint16) *Program {
	p.bin = append(p.bin, opcode.Catalog[op].Bytes...)
	p.bin = append(p.bin, uint8(param), uint8(param>>8))
	return p
}

// AddParams appends op's encoding followed by two raw immediate bytes, for
// multi-byte-prefixed forms where the second byte is itself an operand
// rather than part of the opcode's own encoding.
func (p *Program) AddParams(op opcode.OpCode, param1, param2 uint8) *Program {
	p.bin = append(p.bin, opcode.Catalog[op].Bytes...)
	p.bin = append(p.bin, param1, param2)
	return p
}

// AddVector appends a raw byte slice verbatim, for embedding precomputed
// encodings or data tables directly into the image.
func (p *Program) AddVector(bytes []byte) *Program {
	p.bin = append(p.bin, bytes...)
	return p
}
