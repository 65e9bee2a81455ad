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
	"bufio"
)

// DeviceHandler is the console attached to the memory-mapped device
// registers. Keyboard.ReadByte blocks until a character is available,
// which is the suspension the LDI keyboard path relies on.
type DeviceHandler struct {
	Keyboard *bufio.Reader
	Display  *bufio.Writer
}

// MachineState is the complete visible architectural state. It is
// mutated in place by Step and never allocated by the engine itself,
// so tests can construct arbitrary states directly.
type MachineState struct {
	Registers [8]uint16

	// Program counter: address of the next instruction to fetch
	Program uint16

	// Instruction register: the most recently fetched word
	Instruction uint16

	// Condition flag, exactly one of FLAG_NEG/FLAG_ZERO/FLAG_POS
	Condition uint16

	// Set by a store-indirect to DEV_MCR; never cleared by the
	// engine. The driver is expected to stop calling Step.
	Halted bool

	Memory [1 << 16]uint16
}

// MachineMonitor observes execution without taking part in it. Hooks
// fire on every memory access made by the engine and at the end of
// every step.
type MachineMonitor interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices *DeviceHandler
	State   MachineState
	Monitor MachineMonitor
}

// Snapshot is a read-only copy of the state a renderer needs, taken
// at a step boundary.
type Snapshot struct {
	Registers   [8]uint16
	Program     uint16
	Instruction uint16
	Condition   uint16
	Halted      bool
}

// ConditionTag returns the one-character display form of the
// condition flag.
func (s *Snapshot) ConditionTag() byte {
	switch s.Condition {
	case FLAG_NEG:
		return 'N'
	case FLAG_ZERO:
		return 'Z'
	default:
		return 'P'
	}
}
