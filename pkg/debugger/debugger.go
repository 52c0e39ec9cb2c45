// Copyright (C) 2021  Antonio Lassandro

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

package debugger

import (
	"fmt"

	"github.com/lassandro/golc3vm/pkg/machine"
)

// Step is invoked after fetch and decode, before execution; pc is the
// address the instruction was fetched from.
func (dbg *Debugger) Step(
	pc uint16, instruction machine.Instruction, mc *machine.Machine,
) {
	if dbg.Trace != nil {
		dbg.Trace.Printf("%#04x  %s", pc, instruction)
	}

	if dbg.HandleBreak == nil {
		return
	}

	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if pc == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	if dbg.HandleRead == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	if dbg.HandleWrite == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// PrintCode disassembles count words starting at addr, marking the word the
// program counter points at. Undecodable words print as raw values.
func (dbg *Debugger) PrintCode(
	mc *machine.MachineState, addr, count uint16,
) {
	words, err := mc.Memory.Range(int(addr), int(count))

	if err != nil {
		fmt.Println(err)
		return
	}

	for i, word := range words {
		position := addr + uint16(i)

		if position == mc.Program {
			fmt.Printf("\033[1m[%#04x]>\033[0m ", position)
		} else {
			fmt.Printf("\033[1m[%#04x]\033[0m  ", position)
		}

		if instruction, err := machine.Decode(word); err == nil {
			fmt.Printf("%-24s ; %#04x\n", instruction, word)
		} else {
			fmt.Printf("%#04x\n", word)
		}
	}
}

// PrintMem dumps count memory words starting at addr without triggering
// device side effects.
func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	words, err := mc.Memory.Range(int(addr), int(count))

	if err != nil {
		fmt.Println(err)
		return
	}

	for i, result := range words {
		position := addr + uint16(i)

		if i == 0 {
			fmt.Printf("\033[1m[%#04x]\033[0m ", position)
		} else if i%4 == 0 {
			fmt.Println()
			fmt.Printf("\033[1m[%#04x]\033[0m ", position)
		}

		if result == 0 {
			fmt.Printf("\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Printf("%#04x ", result)
		}
	}

	fmt.Println()
}
