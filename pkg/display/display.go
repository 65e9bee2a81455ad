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

package display

import (
	"fmt"
	"io"

	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/machine"
)

// Render writes the snapshot in the simulator's register panel
// layout: R0-R3 and R4-R7 side by side, then PC, IR and CC. Every
// 16-bit value appears in hexadecimal and signed decimal.
func Render(w io.Writer, snap *machine.Snapshot) {
	for i := 0; i < 4; i++ {
		fmt.Fprintf(
			w,
			"R%d 0x%04X %6d    R%d 0x%04X %6d\n",
			i,
			snap.Registers[i],
			int16(snap.Registers[i]),
			i+4,
			snap.Registers[i+4],
			int16(snap.Registers[i+4]),
		)
	}

	fmt.Fprintf(
		w,
		"PC 0x%04X %6d\n",
		snap.Program,
		int16(snap.Program),
	)

	fmt.Fprintf(
		w,
		"IR 0x%04X %6d    %s\n",
		snap.Instruction,
		int16(snap.Instruction),
		Disassemble(snap.Instruction),
	)

	fmt.Fprintf(w, "CC %c\n", snap.ConditionTag())
}

// Disassemble renders one machine word as assembly text for the
// trace view. Words whose opcode has no operation disassemble to a
// placeholder rather than failing.
func Disassemble(word uint16) string {
	inst := machine.Decode(word)

	switch inst.Opcode {
	case machine.OP_ADD:
		if inst.Immediate {
			return fmt.Sprintf(
				"ADD R%d, R%d, #%d", inst.DR, inst.SR1, int16(inst.Imm5),
			)
		}

		return fmt.Sprintf("ADD R%d, R%d, R%d", inst.DR, inst.SR1, inst.SR2)

	case machine.OP_AND:
		if inst.Immediate {
			return fmt.Sprintf(
				"AND R%d, R%d, #%d", inst.DR, inst.SR1, int16(inst.Imm5),
			)
		}

		return fmt.Sprintf("AND R%d, R%d, R%d", inst.DR, inst.SR1, inst.SR2)

	case machine.OP_NOT:
		return fmt.Sprintf("NOT R%d, R%d", inst.DR, inst.SR1)

	case machine.OP_BR:
		if inst.NZP == 0 {
			return "NOP"
		}

		mnemonic := "BR"

		if inst.NZP&machine.FLAG_NEG != 0 {
			mnemonic += "n"
		}

		if inst.NZP&machine.FLAG_ZERO != 0 {
			mnemonic += "z"
		}

		if inst.NZP&machine.FLAG_POS != 0 {
			mnemonic += "p"
		}

		return fmt.Sprintf("%s #%d", mnemonic, int16(inst.PCoffset9))

	case machine.OP_JMP:
		if inst.SR1 == 7 {
			return "RET"
		}

		return fmt.Sprintf("JMP R%d", inst.SR1)

	case machine.OP_JSR:
		if inst.Relative {
			return fmt.Sprintf("JSR #%d", int16(inst.PCoffset11))
		}

		return fmt.Sprintf("JSRR R%d", inst.SR1)

	case machine.OP_LD:
		return fmt.Sprintf("LD R%d, #%d", inst.DR, int16(inst.PCoffset9))

	case machine.OP_LDI:
		return fmt.Sprintf("LDI R%d, #%d", inst.DR, int16(inst.PCoffset9))

	case machine.OP_LDR:
		return fmt.Sprintf(
			"LDR R%d, R%d, #%d", inst.DR, inst.SR1, int16(inst.Offset6),
		)

	case machine.OP_LEA:
		return fmt.Sprintf("LEA R%d, #%d", inst.DR, int16(inst.PCoffset9))

	case machine.OP_ST:
		return fmt.Sprintf("ST R%d, #%d", inst.DR, int16(inst.PCoffset9))

	case machine.OP_STI:
		return fmt.Sprintf("STI R%d, #%d", inst.DR, int16(inst.PCoffset9))

	case machine.OP_STR:
		return fmt.Sprintf(
			"STR R%d, R%d, #%d", inst.DR, inst.SR1, int16(inst.Offset6),
		)

	case machine.OP_TRAP:
		switch inst.Vector {
		case machine.TRAP_GETC:
			return "GETC"
		case machine.TRAP_OUT:
			return "OUT"
		case machine.TRAP_PUTS:
			return "PUTS"
		case machine.TRAP_IN:
			return "IN"
		case machine.TRAP_PUTSP:
			return "PUTSP"
		case machine.TRAP_HALT:
			return "HALT"
		}

		return fmt.Sprintf("TRAP x%02X", inst.Vector)

	case machine.OP_RTI:
		return "RTI"

	default:
		return fmt.Sprintf(".FILL x%04X", word)
	}
}
