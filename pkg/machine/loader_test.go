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

package machine_test

import (
	"bytes"
	"testing"

	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/machine"
)

func TestLoadBin(t *testing.T) {
	var mc machine.Machine

	image := []byte{0x12, 0x34, 0xAB, 0xCD}

	if err := mc.LoadBin(bytes.NewReader(image)); err != nil {
		t.Fatal(err)
	}

	if have := mc.State.Memory[0x0000]; have != 0x1234 {
		t.Errorf(
			"Memory value mismatch\nwant:%#04x\nhave:%#04x", 0x1234, have,
		)
	}

	if have := mc.State.Memory[0x0001]; have != 0xABCD {
		t.Errorf(
			"Memory value mismatch\nwant:%#04x\nhave:%#04x", 0xABCD, have,
		)
	}

	if have := mc.State.Program; have != machine.MEMSPACE_USER {
		t.Errorf(
			"Program register mismatch\nwant:%#04x\nhave:%#04x",
			machine.MEMSPACE_USER,
			have,
		)
	}
}

func TestLoadObj(t *testing.T) {
	var mc machine.Machine

	image := []byte{
		0x40, 0x00, // origin
		0x12, 0x34,
		0xAB, 0xCD,
	}

	origin, err := mc.LoadObj(bytes.NewReader(image))

	if err != nil {
		t.Fatal(err)
	}

	if origin != 0x4000 {
		t.Errorf("Origin mismatch\nwant:%#04x\nhave:%#04x", 0x4000, origin)
	}

	if have := mc.State.Memory[0x4000]; have != 0x1234 {
		t.Errorf(
			"Memory value mismatch\nwant:%#04x\nhave:%#04x", 0x1234, have,
		)
	}

	if have := mc.State.Memory[0x4001]; have != 0xABCD {
		t.Errorf(
			"Memory value mismatch\nwant:%#04x\nhave:%#04x", 0xABCD, have,
		)
	}

	if have := mc.State.Program; have != 0x4000 {
		t.Errorf(
			"Program register mismatch\nwant:%#04x\nhave:%#04x", 0x4000, have,
		)
	}
}

func TestLoadObjEmpty(t *testing.T) {
	var mc machine.Machine

	if _, err := mc.LoadObj(bytes.NewReader(nil)); err == nil {
		t.Error("Expected an error loading an empty object image")
	}
}

func TestLoadObjOddLength(t *testing.T) {
	var mc machine.Machine

	image := []byte{0x30, 0x00, 0x12}

	if _, err := mc.LoadObj(bytes.NewReader(image)); err == nil {
		t.Error("Expected an error loading a truncated object image")
	}
}
