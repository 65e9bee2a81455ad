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
	"encoding/binary"
	"errors"
	"io"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	mc.Program = MEMSPACE_USER
	mc.Instruction = 0x0000
	mc.Condition = FLAG_ZERO
	mc.Halted = false
}

// LoadBin fills memory from address 0 with big-endian words read
// until EOF. The program counter is left at the reset default.
func (mc *Machine) LoadBin(reader io.Reader) error {
	mc.State.Reset()

	scratch := make([]byte, 2)
	index := 0

	for index < (1<<16)-1 {
		n, err := reader.Read(scratch)

		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		} else if n != 2 {
			return errors.New("Error reading binary")
		}

		mc.State.Memory[index] = binary.BigEndian.Uint16(scratch)
		index++
	}

	return nil
}

// LoadObj reads an object image whose first big-endian word is the
// load origin, places the remaining words there, and points the
// program counter at the origin. Addresses wrap modulo 65536 like
// every other address in the machine.
func (mc *Machine) LoadObj(reader io.Reader) (uint16, error) {
	mc.State.Reset()

	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		return 0, errors.New("Error reading object origin")
	}

	origin := binary.BigEndian.Uint16(scratch)
	addr := origin

	for count := 0; count < (1<<16)-1; count++ {
		n, err := reader.Read(scratch)

		if err == io.EOF {
			break
		} else if err != nil {
			return 0, err
		} else if n != 2 {
			return 0, errors.New("Error reading object image")
		}

		mc.State.Memory[addr] = binary.BigEndian.Uint16(scratch)
		addr++
	}

	mc.State.Program = origin
	return origin, nil
}

func (mc *Machine) read(addr uint16) uint16 {
	if mc.Monitor != nil {
		mc.Monitor.Read(addr, mc)
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value

	if mc.Monitor != nil {
		mc.Monitor.Write(addr, mc)
	}
}

// setcc records the sign of the value an instruction just wrote. It
// takes the value itself rather than a register index so the flag
// can never be derived from stale register contents.
func (mc *Machine) setcc(value uint16) {
	if value == 0 {
		mc.State.Condition = FLAG_ZERO
	} else if int16(value) < 0 {
		mc.State.Condition = FLAG_NEG
	} else {
		mc.State.Condition = FLAG_POS
	}
}

// readKey blocks for one character from the console keyboard. A
// machine with no keyboard attached reads zeroes.
func (mc *Machine) readKey() uint16 {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return 0
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err != nil && err != io.EOF {
		panic(err)
	}

	return uint16(key)
}

// Snapshot copies the renderer-visible state at a step boundary.
func (mc *Machine) Snapshot() Snapshot {
	return Snapshot{
		Registers:   mc.State.Registers,
		Program:     mc.State.Program,
		Instruction: mc.State.Instruction,
		Condition:   mc.State.Condition,
		Halted:      mc.State.Halted,
	}
}

// Step executes exactly one instruction: fetch, decode, dispatch,
// then the memory-mapped I/O reconciliation. It never fails; an
// unrecognized opcode degrades to a no-op, and every address
// computation wraps modulo 65536.
func (mc *Machine) Step() {
	mc.State.Instruction = mc.read(mc.State.Program)
	mc.State.Program++

	inst := Decode(mc.State.Instruction)

	switch inst.Opcode {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		var result uint16

		if inst.Immediate {
			result = mc.State.Registers[inst.SR1] + inst.Imm5
		} else {
			result = mc.State.Registers[inst.SR1] +
				mc.State.Registers[inst.SR2]
		}

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		var result uint16

		if inst.Immediate {
			result = mc.State.Registers[inst.SR1] & inst.Imm5
		} else {
			result = mc.State.Registers[inst.SR1] &
				mc.State.Registers[inst.SR2]
		}

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		result := ^mc.State.Registers[inst.SR1]

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		result := mc.State.Program + inst.PCoffset9

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		result := mc.read(mc.State.Program + inst.PCoffset9)

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		result := mc.read(mc.State.Registers[inst.SR1] + inst.Offset6)

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		var result uint16

		effective := mc.read(mc.State.Program + inst.PCoffset9)

		// Console input is bound to the indirect load path only: an
		// indirection cell naming the keyboard data register blocks
		// for one character instead of reading memory. Direct loads
		// of the same address read plain memory, and the ready bit
		// is not consulted. This asymmetry is preserved on purpose.
		if effective == DEV_KBDR {
			result = mc.readKey()
		} else {
			result = mc.read(effective)
		}

		mc.State.Registers[inst.DR] = result
		mc.setcc(result)

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		mc.write(
			mc.State.Program+inst.PCoffset9,
			mc.State.Registers[inst.DR],
		)

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		mc.write(
			mc.State.Registers[inst.SR1]+inst.Offset6,
			mc.State.Registers[inst.DR],
		)

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		effective := mc.read(mc.State.Program + inst.PCoffset9)

		mc.write(effective, mc.State.Registers[inst.DR])

		// A store through the machine control register is the halt
		// signal; the flag stays set until the driver acts on it.
		if effective == DEV_MCR {
			mc.State.Halted = true
		}

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		// An empty condition mask never branches
		if inst.NZP&mc.State.Condition != 0 {
			mc.State.Program += inst.PCoffset9
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		mc.State.Program = mc.State.Registers[inst.SR1]

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		mc.State.Registers[7] = mc.State.Program

		if inst.Relative {
			mc.State.Program += inst.PCoffset11
		} else {
			mc.State.Program = mc.State.Registers[inst.SR1]
		}

	// TRAP |1111    |0000   |trapvect8       | Trap-table call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		mc.State.Registers[7] = mc.State.Program
		mc.State.Program = mc.read(inst.Vector)

	// RTI  |1000    |                        | Unimplemented
	// RES  |1101    |                        | Reserved
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	default:
		// No-op: the fetch and the reconciliation below still happen
	}

	// Memory-mapped I/O reconciliation. A pending display character
	// drains exactly once per step and both status registers are
	// forced back to ready; the simulated devices never stall.
	if value := mc.State.Memory[DEV_DDR]; value != 0 {
		if mc.Devices != nil && mc.Devices.Display != nil {
			if err := mc.Devices.Display.WriteByte(byte(value & 0xFF)); err != nil {
				panic(err)
			}

			if err := mc.Devices.Display.Flush(); err != nil {
				panic(err)
			}
		}

		mc.State.Memory[DEV_DDR] = 0x0000
	}

	mc.State.Memory[DEV_KBSR] = DEV_READY
	mc.State.Memory[DEV_DSR] = DEV_READY

	if mc.Monitor != nil {
		mc.Monitor.Step(mc)
	}
}
