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

package machine

// Keyboard is the console input collaborator. TryReadByte is the
// non-blocking poll behind the KBSR memory mapping; ReadByte blocks until a
// byte is available and is used by the GETC/IN traps. Bytes must arrive
// unbuffered, without line editing or echo.
type Keyboard interface {
	TryReadByte() (byte, bool)
	ReadByte() (byte, error)
}

// Display is the console output collaborator. A *bufio.Writer satisfies it.
type Display interface {
	WriteByte(c byte) error
	Flush() error
}

type DeviceHandler struct {
	Keyboard Keyboard
	Display  Display
}

type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition Condition
	Memory    Memory
	Halted    bool
}

type MachineDebugger interface {
	Step(pc uint16, instruction Instruction, mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Debugger MachineDebugger
}
