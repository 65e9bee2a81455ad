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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/display"
	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/encoding"
	"github.com/Stanislav-Pankrashin/Ncurses-LC3-Simulator/pkg/machine"
)

var helpvar bool
var stepvar bool
var tracevar bool
var binvar bool
var pcvar string
var shouldexit bool

const usage = "lc3sim [-step] [-trace] [-bin] [-pc addr] filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&stepvar, "step", false, "Waits for a key between instructions")
	flag.BoolVar(&tracevar, "trace", false, "Prints machine state after every instruction")
	flag.BoolVar(&binvar, "bin", false, "Treats the file as a raw memory image")
	flag.StringVar(&pcvar, "pc", "", "Overrides the starting program counter")
	flag.Parse()
}

// parseAddr accepts the address formats the debug tooling has always
// used: hex as 0x3000/x3000, decimal as #12288/12288.
func parseAddr(s string) (uint16, error) {
	if addr, err := encoding.DecodeHex(s); err == nil {
		return addr, nil
	}

	value, err := encoding.DecodeInt(s)

	if err != nil {
		return 0, err
	}

	return uint16(value), nil
}

// crlfWriter rewrites bare newlines as CR-LF so the state panel stays
// aligned while the terminal is in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (cw *crlfWriter) Write(p []byte) (int, error) {
	for i, b := range p {
		if b == '\n' {
			if _, err := cw.w.Write([]byte("\r\n")); err != nil {
				return i, err
			}
		} else if _, err := cw.w.Write(p[i : i+1]); err != nil {
			return i, err
		}
	}

	return len(p), nil
}

// traceMonitor renders the machine state at every step boundary.
type traceMonitor struct {
	out io.Writer
}

func (tm *traceMonitor) Step(mc *machine.Machine) {
	snap := mc.Snapshot()
	display.Render(tm.out, &snap)
	fmt.Fprintln(tm.out)
}

func (tm *traceMonitor) Read(addr uint16, mc *machine.Machine)  {}
func (tm *traceMonitor) Write(addr uint16, mc *machine.Machine) {}

// stepPrompt waits for one key in single-step mode. Space or any
// unbound key executes the next instruction, 'c' resumes free
// running, 'q' or Ctrl-C leaves the simulator.
func stepPrompt(mc *machine.Machine) bool {
	key, err := mc.Devices.Keyboard.ReadByte()

	if err != nil {
		return false
	}

	switch key {
	case 'q', 0x03:
		return false
	case 'c':
		stepvar = false
	}

	return true
}

func lc3sim() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = bufio.NewReader(os.Stdin)
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	if binvar {
		err = mc.LoadBin(file)
	} else {
		_, err = mc.LoadObj(file)
	}

	if err != nil {
		log.Println(err)
		return 1
	}

	if pcvar != "" {
		addr, err := parseAddr(pcvar)

		if err != nil {
			log.Println(err)
			return 1
		}

		mc.State.Program = addr
	}

	if stepvar || tracevar {
		mc.Monitor = &traceMonitor{out: &crlfWriter{w: os.Stderr}}
	}

	c := make(chan os.Signal, 1)
	defer close(c)

	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			shouldexit = true
		}
	}()

	enterRawTerm()
	defer exitRawTerm()

	for !mc.State.Halted && !shouldexit {
		if stepvar && !stepPrompt(&mc) {
			break
		}

		mc.Step()
	}

	return 0
}

func main() {
	os.Exit(lc3sim())
}
