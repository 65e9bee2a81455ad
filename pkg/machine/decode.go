// Copyright (C) 2026  Stanislav Pankrashin

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/encoding"
)

// Instruction is one machine word with every operand field extracted.
// Decoding happens once, before dispatch, so execution reads named
// fields instead of re-slicing the raw word. Offsets are stored
// already sign extended to 16 bits; only the fields the opcode
// defines are meaningful.
type Instruction struct {
	Opcode uint16

	// DR is bits [11:9]: the destination register, except for the
	// store family where the same field names the source register.
	DR uint16

	// SR1 is bits [8:6]: first source or base register
	SR1 uint16

	// SR2 is bits [2:0]: second source register when Immediate is
	// unset
	SR2 uint16

	// Immediate selects the imm5 form of ADD/AND (bit [5])
	Immediate bool
	Imm5      uint16

	// Relative selects the PCoffset11 form of JSR (bit [11])
	Relative bool

	Offset6    uint16
	PCoffset9  uint16
	PCoffset11 uint16

	// NZP is bits [11:9] interpreted as a branch condition mask
	NZP uint16

	// Vector is the zero-extended trap vector, bits [7:0]
	Vector uint16
}

// Decode extracts every operand field of word. Fields not used by
// the word's opcode carry whatever the overlapping bits happen to
// hold and must be ignored.
func Decode(word uint16) Instruction {
	return Instruction{
		Opcode:     word >> 12,
		DR:         (word >> 9) & 0x7,
		SR1:        (word >> 6) & 0x7,
		SR2:        word & 0x7,
		Immediate:  (word>>5)&0x1 == 1,
		Imm5:       encoding.SignExtend(word&0x1F, 5),
		Relative:   (word>>11)&0x1 == 1,
		Offset6:    encoding.SignExtend(word&0x3F, 6),
		PCoffset9:  encoding.SignExtend(word&0x1FF, 9),
		PCoffset11: encoding.SignExtend(word&0x7FF, 11),
		NZP:        (word >> 9) & 0x7,
		Vector:     encoding.ZeroExtend(word, 8),
	}
}
