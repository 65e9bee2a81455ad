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

package display_test

import (
	"bytes"
	"testing"

	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/display"
	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/machine"
)

func TestRender(t *testing.T) {
	snap := machine.Snapshot{
		Registers: [8]uint16{
			0xCAFE, 0x0001, 0x0002, 0x8000,
			0x0004, 0x0005, 0x0006, 0xFFFF,
		},
		Program:     0x3000,
		Instruction: 0x103F,
		Condition:   machine.FLAG_NEG,
	}

	var buf bytes.Buffer
	display.Render(&buf, &snap)

	want := "R0 0xCAFE -13570    R4 0x0004      4\n" +
		"R1 0x0001      1    R5 0x0005      5\n" +
		"R2 0x0002      2    R6 0x0006      6\n" +
		"R3 0x8000 -32768    R7 0xFFFF     -1\n" +
		"PC 0x3000  12288\n" +
		"IR 0x103F   4159    ADD R0, R0, #-1\n" +
		"CC N\n"

	if have := buf.String(); have != want {
		t.Errorf("Render mismatch\nwant:\n%s\nhave:\n%s", want, have)
	}
}

func TestConditionTags(t *testing.T) {
	tags := map[uint16]byte{
		machine.FLAG_NEG:  'N',
		machine.FLAG_ZERO: 'Z',
		machine.FLAG_POS:  'P',
	}

	for condition, want := range tags {
		snap := machine.Snapshot{Condition: condition}

		if have := snap.ConditionTag(); have != want {
			t.Errorf("Condition tag mismatch\nwant:%c\nhave:%c", want, have)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		Name string
		Word uint16
		Want string
	}{
		{"ADD Register", 0b0001_000_001_000_010, "ADD R0, R1, R2"},
		{"ADD Immediate", 0b0001_000_000_1_11111, "ADD R0, R0, #-1"},
		{"AND Register", 0b0101_011_011_000_011, "AND R3, R3, R3"},
		{"AND Immediate", 0b0101_000_001_1_00000, "AND R0, R1, #0"},
		{"NOT", 0b1001_010_011_111111, "NOT R2, R3"},
		{"BR Masked", 0b0000_110_000000100, "BRnz #4"},
		{"BR Backward", 0b0000_001_111111110, "BRp #-2"},
		{"BR Empty Mask", 0b0000_000_000000100, "NOP"},
		{"JMP", 0b1100_000_001_000000, "JMP R1"},
		{"RET", 0b1100_000_111_000000, "RET"},
		{"JSR", 0b0100_1_11111111110, "JSR #-2"},
		{"JSRR", 0b0100_0_00_001_000000, "JSRR R1"},
		{"LD", 0b0010_001_000000010, "LD R1, #2"},
		{"LDI", 0b1010_000_000000000, "LDI R0, #0"},
		{"LDR", 0b0110_000_001_111111, "LDR R0, R1, #-1"},
		{"LEA", 0b1110_001_111111110, "LEA R1, #-2"},
		{"ST", 0b0011_000_000000010, "ST R0, #2"},
		{"STI", 0b1011_000_000000000, "STI R0, #0"},
		{"STR", 0b0111_000_001_000010, "STR R0, R1, #2"},
		{"TRAP Named", 0xF025, "HALT"},
		{"TRAP Numbered", 0xF030, "TRAP x30"},
		{"RTI", 0x8000, "RTI"},
		{"Reserved", 0xD123, ".FILL xD123"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if have := display.Disassemble(test.Word); have != test.Want {
				t.Errorf(
					"Disassembly mismatch\nwant:%s\nhave:%s",
					test.Want,
					have,
				)
			}
		})
	}
}
